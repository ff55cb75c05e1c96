package services

import (
	"math"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// Metrics summarizes the state of the card collection.
type Metrics struct {
	DueToday        int         `json:"dueToday"`
	TotalReviews    int         `json:"totalReviews"`
	TotalSuccess    int         `json:"totalSuccess"`
	ReviewedCards   int         `json:"reviewedCards"`
	AccuracyPercent int         `json:"accuracyPercent"`
	BoxCounts       map[int]int `json:"boxCounts"`
}

// ComputeMetrics derives the summary counters from the collection. A
// zero now means the current moment. Pure and total.
func ComputeMetrics(cards []models.ReviewCard, now time.Time) Metrics {
	if now.IsZero() {
		now = time.Now()
	}
	today := Today(now)

	m := Metrics{BoxCounts: make(map[int]int)}
	for _, c := range cards {
		if c.DueDate <= today {
			m.DueToday++
		}
		m.TotalReviews += c.ReviewCount
		m.TotalSuccess += c.SuccessCount
		if c.ReviewCount > 0 {
			m.ReviewedCards++
		}
		m.BoxCounts[c.Box]++
	}
	if m.TotalReviews > 0 {
		m.AccuracyPercent = int(math.Round(100 * float64(m.TotalSuccess) / float64(m.TotalReviews)))
	}
	return m
}
