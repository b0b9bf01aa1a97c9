package types

import (
	"fmt"
	"time"
)

// QuarterRange returns the first and last day of a fiscal quarter:
// Q1 is Jan 1 to Mar 31, Q2 Apr 1 to Jun 30, Q3 Jul 1 to Sep 30,
// Q4 Oct 1 to Dec 31 of the given calendar year.
func QuarterRange(year, quarter int) (from, to Date, err error) {
	if quarter < 1 || quarter > 4 {
		return Date{}, Date{}, fmt.Errorf("quarter must be between 1 and 4, got %d", quarter)
	}

	firstMonth := time.Month((quarter-1)*3 + 1)
	from = NewDate(year, firstMonth, 1)
	to = from.AddDate(0, 3, -1)
	return from, to, nil
}
