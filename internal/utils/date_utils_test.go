package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
}

func TestSameMonth_UsesLocation(t *testing.T) {
	plus3 := time.FixedZone("EAT", 3*60*60)
	// 31 Jan 22:30 UTC is already 1 Feb in UTC+3
	a := time.Date(2024, 1, 31, 22, 30, 0, 0, time.UTC)
	b := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	assert.False(t, SameMonth(a, b, time.UTC))
	assert.True(t, SameMonth(a, b, plus3))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, plus3), StartOfMonth(a, plus3))
}
