package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUTCTime(t *testing.T) {
	want := time.Date(2025, time.June, 14, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"with UTC marker", "2025-06-14T14:30:00Z"},
		{"without marker", "2025-06-14T14:30:00"},
		{"space separated", "2025-06-14 14:30:00"},
		{"with offset", "2025-06-14T16:30:00+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUTCTime(tt.value)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %v, want %v", got, want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseUTCTime("next tuesday")
		assert.Error(t, err)
	})
}
