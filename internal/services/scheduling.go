package services

import (
	"strings"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// DefaultIntervals is the Leitner spacing table in days, indexed by
// box-1. Box count follows from its length.
var DefaultIntervals = []int{1, 3, 7, 14, 30}

// DateLayout formats due dates as local calendar dates whose
// lexicographic order equals their chronological order.
const DateLayout = "2006-01-02"

// PairDelimiter separates the two sides of a bilingual source line.
const PairDelimiter = "->"

// Today renders t as a local calendar date.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// NextBox computes the box a card moves to after a review. "again" drops
// to box 1 from anywhere; "good" and "easy" advance one and two boxes,
// saturating at the top of the table.
func NextBox(intervals []int, currentBox int, grade models.Grade) int {
	n := len(intervals)
	switch grade {
	case models.GradeGood:
		return min(n, currentBox+1)
	case models.GradeEasy:
		return min(n, currentBox+2)
	default:
		return 1
	}
}

// NextDueDate schedules the next review of a card in the given box,
// counted in local calendar days from now. Boxes beyond the table clamp
// to the last interval.
func NextDueDate(intervals []int, now time.Time, box int) string {
	idx := box - 1
	if idx >= len(intervals) {
		idx = len(intervals) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return Today(now.AddDate(0, 0, intervals[idx]))
}

// ParsePair splits a bilingual source line into (prompt, answer). When
// the answer side is missing, both sides collapse onto whichever is
// non-empty, so any line with content yields two non-empty sides.
func ParsePair(sourceLine string) (prompt, answer string) {
	left, right, _ := strings.Cut(sourceLine, PairDelimiter)
	prompt = strings.TrimSpace(left)
	answer = strings.TrimSpace(right)
	if answer == "" {
		answer = prompt
	}
	if prompt == "" {
		prompt = answer
	}
	return prompt, answer
}
