package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	iso, ok := ParseFlexibleDate("2024-06-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), iso)

	us, ok := ParseFlexibleDate("06/01/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), us)

	_, ok = ParseFlexibleDate("not a date")
	assert.False(t, ok)
}
