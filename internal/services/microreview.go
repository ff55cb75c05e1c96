package services

import (
	"sort"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// MicroReviewSource classifies where a micro-review payload came from.
type MicroReviewSource string

const (
	// SourceNone: no card is old enough under the plan's threshold.
	SourceNone MicroReviewSource = "none"
	// SourcePreviousDay: cards drawn from the most recent lesson day
	// old enough under the plan's threshold.
	SourcePreviousDay MicroReviewSource = "previous_day"
)

// MicroReview is a short refresher payload drawn from older content,
// distinct from the main due queue.
type MicroReview struct {
	Cards           []models.ReviewCard `json:"cards"`
	MemorySentences []string            `json:"memorySentences"`
	Source          MicroReviewSource   `json:"source"`
}

// SelectMicroReview builds the refresher for currentDay. A card is
// eligible when its lesson day is at least the plan's threshold behind
// currentDay; the payload then draws only from the most recent eligible
// day, so a day-2 refresher on day 3 never reaches back into day 1.
// Cards are ordered by (dayNumber, id) ascending and capped at
// AnkiCardCount; memory sentences are the selected cards' answers,
// deduplicated in first-occurrence order and capped at
// MemorySentenceCount. Pure and total.
func SelectMicroReview(cards []models.ReviewCard, currentDay int, plan models.MicroReviewPlan) MicroReview {
	eligible := make([]models.ReviewCard, 0, len(cards))
	poolDay := 0
	for _, c := range cards {
		if currentDay-c.DayNumber < plan.AnkiCardsFromAtLeastDaysAgo {
			continue
		}
		eligible = append(eligible, c)
		if c.DayNumber > poolDay {
			poolDay = c.DayNumber
		}
	}
	if len(eligible) == 0 {
		return MicroReview{Source: SourceNone}
	}

	pool := eligible[:0]
	for _, c := range eligible {
		if c.DayNumber == poolDay {
			pool = append(pool, c)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].DayNumber != pool[j].DayNumber {
			return pool[i].DayNumber < pool[j].DayNumber
		}
		return pool[i].ID < pool[j].ID
	})

	count := plan.AnkiCardCount
	if count < 0 {
		count = 0
	}
	if len(pool) > count {
		pool = pool[:count]
	}

	sentences := make([]string, 0, len(pool))
	seen := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		if c.Answer == "" {
			continue
		}
		if _, ok := seen[c.Answer]; ok {
			continue
		}
		seen[c.Answer] = struct{}{}
		sentences = append(sentences, c.Answer)
	}
	maxSentences := plan.MemorySentenceCount
	if maxSentences < 0 {
		maxSentences = 0
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}

	// An eligible pool emptied by a zero card cap still reports where
	// it was drawn from; only an empty eligible set is none.
	return MicroReview{Cards: pool, MemorySentences: sentences, Source: SourcePreviousDay}
}
