package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.June, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 time.Time
		want                       bool
	}{
		{
			name:   "partial overlap",
			start1: at(14, 0), end1: at(15, 30),
			start2: at(14, 30), end2: at(16, 0),
			want: true,
		},
		{
			name:   "identical windows",
			start1: at(14, 0), end1: at(15, 0),
			start2: at(14, 0), end2: at(15, 0),
			want: true,
		},
		{
			name:   "first contains second",
			start1: at(10, 0), end1: at(18, 0),
			start2: at(12, 0), end2: at(13, 0),
			want: true,
		},
		{
			name:   "touching windows do not overlap",
			start1: at(10, 0), end1: at(11, 0),
			start2: at(11, 0), end2: at(12, 0),
			want: false,
		},
		{
			name:   "disjoint windows",
			start1: at(9, 0), end1: at(10, 0),
			start2: at(12, 0), end2: at(13, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start1, tt.end1, tt.start2, tt.end2))
			// Overlap is symmetric in its two windows.
			assert.Equal(t, tt.want, Overlaps(tt.start2, tt.end2, tt.start1, tt.end1))
		})
	}
}
