// Package health serves liveness, readiness and version endpoints for the
// long-running watch command.
//
// Liveness always answers 200 while the process runs. Readiness runs every
// registered check with a per-check timeout and answers 503 when any of
// them fails:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("storage", func(ctx context.Context) error {
//		_, err := store.Count(ctx, nil)
//		return err
//	})
//	health.Register(mux, checker, Version, GitCommit, BuildDate)
package health
