package models

// MicroReviewPlan governs micro-review eligibility and caps.
type MicroReviewPlan struct {
	AnkiCardsFromAtLeastDaysAgo int `json:"ankiCardsFromAtLeastDaysAgo" yaml:"ankiCardsFromAtLeastDaysAgo"`
	AnkiCardCount               int `json:"ankiCardCount" yaml:"ankiCardCount"`
	MemorySentenceCount         int `json:"memorySentenceCount" yaml:"memorySentenceCount"`
}

// ReviewPlan is the engine's slice of the app-wide plan document.
type ReviewPlan struct {
	DailyMicroReview MicroReviewPlan `json:"dailyMicroReview" yaml:"dailyMicroReview"`
}

// DefaultMicroReviewPlan pulls yesterday's cards into a short refresher.
var DefaultMicroReviewPlan = MicroReviewPlan{
	AnkiCardsFromAtLeastDaysAgo: 1,
	AnkiCardCount:               5,
	MemorySentenceCount:         3,
}
