package services

import (
	"testing"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

func microCard(id string, day int, answer string) models.ReviewCard {
	return models.ReviewCard{ID: id, DayNumber: day, Answer: answer}
}

func previousDayPlan() models.MicroReviewPlan {
	return models.MicroReviewPlan{
		AnkiCardsFromAtLeastDaysAgo: 1,
		AnkiCardCount:               5,
		MemorySentenceCount:         3,
	}
}

// Cards from days 1, 1, 2, 3 and 4 on day 3: only day 2 is both old
// enough and the most recent such day, so the refresher draws day 2
// alone rather than reaching back into day 1.
func TestSelectMicroReviewPreviousDay(t *testing.T) {
	cards := []models.ReviewCard{
		microCard("d1:anki-a:0", 1, "eins"),
		microCard("d1:anki-a:1", 1, "zwei"),
		microCard("d2:anki-a:0", 2, "drei"),
		microCard("d3:anki-a:0", 3, "vier"),
		microCard("d4:anki-a:0", 4, "fünf"),
	}
	got := SelectMicroReview(cards, 3, previousDayPlan())

	if got.Source != SourcePreviousDay {
		t.Errorf("source = %q, want %q", got.Source, SourcePreviousDay)
	}
	if len(got.Cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(got.Cards))
	}
	if got.Cards[0].DayNumber != 2 {
		t.Errorf("selected day = %d, want 2", got.Cards[0].DayNumber)
	}
	if len(got.MemorySentences) != 1 || got.MemorySentences[0] != "drei" {
		t.Errorf("memorySentences = %v, want [drei]", got.MemorySentences)
	}
}

func TestSelectMicroReviewEmptyPool(t *testing.T) {
	cards := []models.ReviewCard{
		microCard("d3:anki-a:0", 3, "x"),
		microCard("d4:anki-a:0", 4, "y"),
	}
	got := SelectMicroReview(cards, 3, previousDayPlan())
	if got.Source != SourceNone {
		t.Errorf("source = %q, want %q", got.Source, SourceNone)
	}
	if len(got.Cards) != 0 || len(got.MemorySentences) != 0 {
		t.Errorf("payload not empty: %+v", got)
	}
}

func TestSelectMicroReviewNoCards(t *testing.T) {
	got := SelectMicroReview(nil, 5, previousDayPlan())
	if got.Source != SourceNone {
		t.Errorf("source = %q, want %q", got.Source, SourceNone)
	}
}

func TestSelectMicroReviewZeroThresholdAllowsSameDay(t *testing.T) {
	plan := previousDayPlan()
	plan.AnkiCardsFromAtLeastDaysAgo = 0
	cards := []models.ReviewCard{
		microCard("d2:anki-a:0", 2, "alt"),
		microCard("d3:anki-a:0", 3, "heute"),
	}
	got := SelectMicroReview(cards, 3, plan)
	if got.Source != SourcePreviousDay {
		t.Fatalf("source = %q, want %q", got.Source, SourcePreviousDay)
	}
	if len(got.Cards) != 1 || got.Cards[0].DayNumber != 3 {
		t.Errorf("cards = %+v, want the day-3 card only", got.Cards)
	}
}

func TestSelectMicroReviewCaps(t *testing.T) {
	plan := previousDayPlan()
	plan.AnkiCardCount = 2
	plan.MemorySentenceCount = 1
	cards := []models.ReviewCard{
		microCard("d2:anki-a:0", 2, "a"),
		microCard("d2:anki-a:1", 2, "b"),
		microCard("d2:anki-a:2", 2, "c"),
	}
	got := SelectMicroReview(cards, 3, plan)
	if len(got.Cards) != 2 {
		t.Errorf("len(cards) = %d, want 2", len(got.Cards))
	}
	if len(got.MemorySentences) != 1 {
		t.Errorf("len(memorySentences) = %d, want 1", len(got.MemorySentences))
	}
}

func TestSelectMicroReviewOrdersByID(t *testing.T) {
	cards := []models.ReviewCard{
		microCard("d2:anki-a:2", 2, "c"),
		microCard("d2:anki-a:0", 2, "a"),
		microCard("d2:anki-a:1", 2, "b"),
	}
	got := SelectMicroReview(cards, 3, previousDayPlan())
	want := []string{"d2:anki-a:0", "d2:anki-a:1", "d2:anki-a:2"}
	for i, id := range want {
		if got.Cards[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got.Cards[i].ID, id)
		}
	}
}

func TestSelectMicroReviewSentencesDedupedAndNonEmpty(t *testing.T) {
	cards := []models.ReviewCard{
		microCard("d2:anki-a:0", 2, "wiederholt"),
		microCard("d2:anki-a:1", 2, "wiederholt"),
		microCard("d2:anki-a:2", 2, ""),
		microCard("d2:anki-a:3", 2, "einmalig"),
	}
	got := SelectMicroReview(cards, 3, previousDayPlan())
	want := []string{"wiederholt", "einmalig"}
	if len(got.MemorySentences) != len(want) {
		t.Fatalf("memorySentences = %v, want %v", got.MemorySentences, want)
	}
	for i, s := range want {
		if got.MemorySentences[i] != s {
			t.Errorf("position %d: got %q, want %q", i, got.MemorySentences[i], s)
		}
	}
}
