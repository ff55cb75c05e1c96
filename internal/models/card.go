package models

import "fmt"

// ReviewCard is one flashcard derived from one sentence of a lesson day's
// anki section. A card is created once and never deleted; reviews mutate
// box, dueDate, timestamps and the counters only.
type ReviewCard struct {
	ID             string `json:"id"`
	DayNumber      int    `json:"dayNumber"`
	SectionID      string `json:"sectionId"`
	SentenceIndex  int    `json:"sentenceIndex"`
	Prompt         string `json:"prompt"`
	Answer         string `json:"answer"`
	Box            int    `json:"box"`
	DueDate        string `json:"dueDate"` // local calendar date, YYYY-MM-DD
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
	LastReviewedAt string `json:"lastReviewedAt,omitempty"`
	LastGrade      Grade  `json:"lastGrade,omitempty"`
	ReviewCount    int    `json:"reviewCount"`
	SuccessCount   int    `json:"successCount"`
}

// CardID builds the collection key for a card: d{day}:{sectionID}:{index}.
// Callers must not fabricate colliding ids; uniqueness is by construction.
func CardID(dayNumber int, sectionID string, sentenceIndex int) string {
	return fmt.Sprintf("d%d:%s:%d", dayNumber, sectionID, sentenceIndex)
}

// DefaultDueCap bounds the daily due queue when no cap is configured.
const DefaultDueCap = 20
