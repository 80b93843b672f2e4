package scheduling

import "time"

// Overlaps reports whether the half-open windows [start1, end1) and
// [start2, end2) share any instant. Touching windows do not overlap, so
// back-to-back matches on the same pitch are legal.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
