// Package srs implements the spaced repetition scheduling policy: how a
// word's proficiency level evolves from review outcomes and when the word
// comes up for review next.
package srs

import "time"

// Intervals holds the review intervals in days, indexed by SRS level.
// Levels beyond the table saturate at the last entry.
var Intervals = []int{1, 3, 7, 14, 30, 90, 180, 365}

// NextReviewAt returns the next review timestamp for a word at the given
// level, relative to now.
func NextReviewAt(now time.Time, level int32) time.Time {
	return now.AddDate(0, 0, IntervalDays(level))
}

// IntervalDays returns the review interval for a level, clamped to the
// last table entry.
func IntervalDays(level int32) int {
	idx := int(level)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Intervals) {
		idx = len(Intervals) - 1
	}
	return Intervals[idx]
}

// NextLevel computes the level after a review. A correct answer moves one
// level up without bound; a miss drops two levels, floored at zero. The
// penalty is deliberately harsher than the reward so failed words come
// back sooner.
func NextLevel(level int32, correct bool) int32 {
	if correct {
		return level + 1
	}
	if level < 2 {
		return 0
	}
	return level - 2
}
