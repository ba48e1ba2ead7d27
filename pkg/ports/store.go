package ports

import (
	"context"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// ResultStore persists trial results so other processes can read them
// without re-running the pipeline.
type ResultStore interface {
	// Save stores res under its model and trial, replacing an earlier one.
	Save(ctx context.Context, res *domain.Result) error

	// Load retrieves the result of a trial.
	// Returns domain.ErrResultNotFound if there is none.
	Load(ctx context.Context, model, trial string) (*domain.Result, error)

	// List returns the stored trials of a model in sorted order.
	List(ctx context.Context, model string) ([]string, error)

	// Delete removes the result of a trial. Deleting a missing result is not an error.
	Delete(ctx context.Context, model, trial string) error
}

// ResultCodec converts results to and from the bytes a store keeps.
type ResultCodec interface {
	Encode(res *domain.Result) ([]byte, error)
	Decode(data []byte) (*domain.Result, error)
}
