package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompactDuration(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"plus days", "+7d", now.AddDate(0, 0, 7)},
		{"minus days bare", "-30", now.AddDate(0, 0, -30)},
		{"unsigned days default unit", "5", now.AddDate(0, 0, 5)},
		{"hours", "+24h", now.Add(24 * time.Hour)},
		{"weeks", "+2w", now.AddDate(0, 0, 14)},
		{"months", "-1m", now.AddDate(0, -1, 0)},
		{"years", "+1y", now.AddDate(1, 0, 0)},
		{"uppercase unit", "+3D", now.AddDate(0, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseCompactDurationErrors(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := ParseCompactDuration("", now)
	assert.Error(t, err)
	_, err = ParseCompactDuration("abc", now)
	assert.Error(t, err)
}

func TestIsCompactDuration(t *testing.T) {
	assert.True(t, IsCompactDuration("+7d"))
	assert.True(t, IsCompactDuration("-30"))
	assert.False(t, IsCompactDuration(""))
	assert.False(t, IsCompactDuration("abc"))
}

func TestLeapYearMonthArithmetic(t *testing.T) {
	leapDay := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	got, err := ParseCompactDuration("+1y", leapDay)
	require.NoError(t, err)
	// Go's AddDate normalizes Feb 29 + 1 year to Mar 1 in a non-leap year.
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
}
