// Package businessdays counts Monday-Friday weekdays within the calendar
// month of a reference date. No holiday calendar is consulted.
package businessdays

import "time"

// Count returns the number of weekdays elapsed up to and including the
// reference day, and the total number of weekdays in the reference
// date's month. Weekends never count; a reference date falling on a
// weekend counts weekdays up to the latest preceding weekday.
func Count(ref time.Time) (elapsed, total int) {
	year, month, day := ref.Date()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, ref.Location()).Day()

	for d := 1; d <= lastDay; d++ {
		wd := time.Date(year, month, d, 0, 0, 0, 0, ref.Location()).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		total++
		if d <= day {
			elapsed++
		}
	}
	return elapsed, total
}

// ProRate scales a monthly goal by the fraction of elapsed weekdays in
// the month of the reference date. Returns 0 when the month has no
// weekdays or none have elapsed, so a zero result signals "no goal yet".
func ProRate(goal float64, ref time.Time) float64 {
	elapsed, total := Count(ref)
	if total == 0 || elapsed == 0 {
		return 0
	}
	return (goal / float64(total)) * float64(elapsed)
}
