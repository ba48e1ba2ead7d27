package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/pkg/ports"
)

const publishLockTTL = 30 * time.Second

// Publish stores the results of every model. Each model is published under
// its lock, after removing stored trials it no longer has a result for.
func Publish(ctx context.Context, batch *gaitcgm.Batch, store ports.ResultStore, locker ports.DistributedLocker) error {
	for _, m := range batch.Models() {
		if err := publishModel(ctx, m, store, locker); err != nil {
			return fmt.Errorf("publish %s: %w", m.Name, err)
		}
	}
	return nil
}

func publishModel(ctx context.Context, m *gaitcgm.Model, store ports.ResultStore, locker ports.DistributedLocker) (err error) {
	if locker != nil {
		unlock, lerr := locker.Lock(ctx, "model:"+m.Name, publishLockTTL)
		if lerr != nil {
			return lerr
		}
		defer func() {
			if uerr := unlock(context.WithoutCancel(ctx)); err == nil {
				err = uerr
			}
		}()
	}

	current := map[string]bool{}
	for _, res := range m.Results() {
		current[res.Trial] = true
		if err := store.Save(ctx, res); err != nil {
			return err
		}
	}
	stored, err := store.List(ctx, m.Name)
	if err != nil {
		return err
	}
	for _, trial := range stored {
		if !current[trial] {
			if err := store.Delete(ctx, m.Name, trial); err != nil {
				return err
			}
		}
	}
	return nil
}
