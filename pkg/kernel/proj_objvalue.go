package kernel

import "time"

type JobTitle string

type JobDescription string

type JobLocation string

type CompanyName string

// Clock supplies the current instant. Query shaping takes it explicitly so
// date-dependent predicates are reproducible.
type Clock func() time.Time

// SystemClock returns the wall clock in UTC
func SystemClock() time.Time { return time.Now().UTC() }

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
