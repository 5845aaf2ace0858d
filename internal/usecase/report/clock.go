package report

import "time"

type clock struct {
	loc *time.Location
	now func() time.Time
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{loc: loc, now: time.Now}
}

func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}
