package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelimeci/kelimeci/internal/srs"
)

func TestNextLevel_Correct(t *testing.T) {
	for _, level := range []int32{0, 1, 5, 7, 20} {
		assert.Equal(t, level+1, srs.NextLevel(level, true), "correct answer should move one level up")
	}
}

func TestNextLevel_Incorrect(t *testing.T) {
	assert.Equal(t, int32(0), srs.NextLevel(0, false), "level 0 should stay at 0")
	assert.Equal(t, int32(0), srs.NextLevel(1, false), "level 1 should clamp to 0")
	assert.Equal(t, int32(0), srs.NextLevel(2, false))
	assert.Equal(t, int32(3), srs.NextLevel(5, false), "miss should drop two levels")
	assert.Equal(t, int32(8), srs.NextLevel(10, false))
}

func TestIntervalDays_MonotonicAndClamped(t *testing.T) {
	prev := 0
	for level := int32(0); level < 12; level++ {
		days := srs.IntervalDays(level)
		require.GreaterOrEqual(t, days, prev, "intervals must not shrink as level grows")
		prev = days
	}
	assert.Equal(t, 365, srs.IntervalDays(7))
	assert.Equal(t, 365, srs.IntervalDays(8), "interval saturates past the table")
	assert.Equal(t, 365, srs.IntervalDays(100))
}

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, 1), srs.NextReviewAt(now, 0))
	assert.Equal(t, now.AddDate(0, 0, 14), srs.NextReviewAt(now, 3))
	assert.Equal(t, now.AddDate(0, 0, 365), srs.NextReviewAt(now, 50))
}
