/*
Package observability turns engine lifecycle events into Prometheus metrics
and structured log records.

Both are exposed as domain.LifecycleHooks so they can be passed to
gaitcgm.WithLifecycleHooks side by side:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	model, err := gaitcgm.New(data,
		gaitcgm.WithLifecycleHooks(metrics.Hooks()),
		gaitcgm.WithLifecycleHooks(observability.LogHooks(logger)),
	)
*/
package observability
