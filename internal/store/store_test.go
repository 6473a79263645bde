package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastDays(t *testing.T) {
	end := time.Date(2025, 10, 28, 17, 30, 0, 0, time.UTC)
	r := LastDays(end, 7)

	assert.Equal(t, time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC), r.To)
	assert.True(t, r.Contains(time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange_OpenEnds(t *testing.T) {
	var r DateRange
	assert.True(t, r.Contains(time.Now()))

	r.From = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, r.Contains(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}
