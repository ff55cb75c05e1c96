package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// cardRecord is the tolerant decode target for one persisted card.
// Required fields are pointers so a missing field is distinguishable
// from a zero value; optional fields stay raw so a mistyped optional
// clears that field instead of discarding the record.
type cardRecord struct {
	ID             *string         `json:"id"`
	DayNumber      *int            `json:"dayNumber"`
	SectionID      *string         `json:"sectionId"`
	SentenceIndex  *int            `json:"sentenceIndex"`
	Prompt         *string         `json:"prompt"`
	Answer         *string         `json:"answer"`
	Box            *int            `json:"box"`
	DueDate        *string         `json:"dueDate"`
	CreatedAt      *string         `json:"createdAt"`
	UpdatedAt      *string         `json:"updatedAt"`
	LastReviewedAt json.RawMessage `json:"lastReviewedAt"`
	LastGrade      json.RawMessage `json:"lastGrade"`
	ReviewCount    *int            `json:"reviewCount"`
	SuccessCount   *int            `json:"successCount"`
}

// DecodeCards parses a persisted blob into the card collection. It never
// fails: an empty or unparsable blob decodes to an empty collection, and
// each record is validated independently with malformed records dropped.
// The dropped count is returned so callers can log schema drift.
func DecodeCards(raw string, maxBox int) (cards []models.ReviewCard, dropped int) {
	if strings.TrimSpace(raw) == "" {
		return nil, 0
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, 0
	}
	for _, elem := range elems {
		card, ok := decodeCard(elem, maxBox)
		if !ok {
			dropped++
			continue
		}
		cards = append(cards, card)
	}
	return cards, dropped
}

func decodeCard(elem json.RawMessage, maxBox int) (models.ReviewCard, bool) {
	var rec cardRecord
	if err := json.Unmarshal(elem, &rec); err != nil {
		return models.ReviewCard{}, false
	}
	if rec.ID == nil || *rec.ID == "" ||
		rec.DayNumber == nil || *rec.DayNumber < 1 ||
		rec.SectionID == nil || *rec.SectionID == "" ||
		rec.SentenceIndex == nil || *rec.SentenceIndex < 0 ||
		rec.Prompt == nil || *rec.Prompt == "" ||
		rec.Answer == nil || *rec.Answer == "" ||
		rec.Box == nil || *rec.Box < 1 || *rec.Box > maxBox ||
		rec.DueDate == nil ||
		rec.CreatedAt == nil || *rec.CreatedAt == "" ||
		rec.UpdatedAt == nil || *rec.UpdatedAt == "" ||
		rec.ReviewCount == nil || *rec.ReviewCount < 0 ||
		rec.SuccessCount == nil || *rec.SuccessCount < 0 ||
		*rec.SuccessCount > *rec.ReviewCount {
		return models.ReviewCard{}, false
	}
	if _, err := time.Parse(DateLayout, *rec.DueDate); err != nil {
		return models.ReviewCard{}, false
	}

	card := models.ReviewCard{
		ID:            *rec.ID,
		DayNumber:     *rec.DayNumber,
		SectionID:     *rec.SectionID,
		SentenceIndex: *rec.SentenceIndex,
		Prompt:        *rec.Prompt,
		Answer:        *rec.Answer,
		Box:           *rec.Box,
		DueDate:       *rec.DueDate,
		CreatedAt:     *rec.CreatedAt,
		UpdatedAt:     *rec.UpdatedAt,
		ReviewCount:   *rec.ReviewCount,
		SuccessCount:  *rec.SuccessCount,
	}

	// Optionals: keep only when well-typed, otherwise clear.
	if len(rec.LastReviewedAt) > 0 {
		var ts string
		if err := json.Unmarshal(rec.LastReviewedAt, &ts); err == nil {
			card.LastReviewedAt = ts
		}
	}
	if len(rec.LastGrade) > 0 {
		var g models.Grade
		if err := json.Unmarshal(rec.LastGrade, &g); err == nil {
			card.LastGrade = g
		}
	}
	return card, true
}

// EncodeCards serializes the collection for persistence. A nil collection
// encodes as an empty list so the blob always holds a JSON array.
func EncodeCards(cards []models.ReviewCard) (string, error) {
	if cards == nil {
		cards = []models.ReviewCard{}
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
