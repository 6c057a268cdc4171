package schedule

import (
	"fmt"
	"time"
)

// Schedule reports the first run strictly after from.
type Schedule interface {
	Next(from time.Time) time.Time
	String() string
}

type fixedDelay time.Duration

func (d fixedDelay) Next(from time.Time) time.Time { return from.Add(time.Duration(d)) }
func (d fixedDelay) String() string                { return fmt.Sprintf("every %v", time.Duration(d)) }

type boundary time.Duration

func (b boundary) Next(from time.Time) time.Time {
	step := time.Duration(b)
	next := from.Truncate(step)
	if !next.After(from) {
		next = next.Add(step)
	}
	return next
}

func (b boundary) String() string {
	return fmt.Sprintf("every %v on the boundary", time.Duration(b))
}

// EveryInterval waits d after each run, so runs drift by the job duration.
func EveryInterval(d time.Duration) Schedule { return fixedDelay(d) }

// Aligned fires when the wall clock is a whole multiple of step since the
// zero time, which for minute and second steps matches UTC boundaries.
func Aligned(step time.Duration) Schedule { return boundary(step) }

// EveryMinute is the "* * * * *" cron schedule.
func EveryMinute() Schedule { return boundary(time.Minute) }
