/*
Package metrics collects per-operation counts and durations for the mount's
filesystem callback surface, plus hit/miss counts for the archive cache, and
serves them as Prometheus metrics.

	collector, err := metrics.NewCollector(&metrics.Config{
		Enabled: true,
		Port:    9293,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := collector.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer collector.Stop(ctx)

	collector.RecordOperation("read", time.Since(start), err == nil)

A nil or disabled Config turns every recording call into a no-op, so callers
never need to guard on whether metrics are on.
*/
package metrics
