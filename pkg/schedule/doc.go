// Package schedule runs a job periodically inside a long-lived process.
//
// A Schedule computes the next run time; EveryMinute mirrors the cron
// expression "* * * * *" by firing at second zero of each minute. Runner
// drives a Job from a Schedule until the context is canceled:
//
//	r, err := schedule.NewRunner(schedule.EveryMinute(), func(ctx context.Context, at time.Time) error {
//		return printCode(ctx, at)
//	}, schedule.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return r.Run(ctx)
package schedule
