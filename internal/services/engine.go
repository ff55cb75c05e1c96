package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/analytics"
	"github.com/adexbam/Speak90-sub001/internal/logger"
	"github.com/adexbam/Speak90-sub001/internal/models"
	"github.com/adexbam/Speak90-sub001/internal/store"
)

// Engine owns the lifecycle of the card collection: creating cards for
// newly introduced lesson content and applying review outcomes. Every
// mutation is a full load-mutate-save cycle over the whole collection,
// serialized by a mutex so overlapping callers cannot silently drop
// each other's writes. The read-only views (DueQueue, MicroReview,
// Metrics) intentionally load outside the mutex: they observe the pre-
// or post-mutation snapshot depending on timing, with no isolation
// guarantee beyond the store's own read atomicity.
type Engine struct {
	mu        sync.Mutex
	store     store.Store
	emitter   analytics.Emitter
	log       *logger.Logger
	intervals []int
	dueCap    int
}

// EngineOptions configures an Engine. Store is required; everything else
// has a sensible zero-value default.
type EngineOptions struct {
	Store     store.Store
	Emitter   analytics.Emitter // nil → events discarded
	Logger    *logger.Logger    // nil → no logging
	Intervals []int             // nil → DefaultIntervals
	DueCap    *int              // nil → models.DefaultDueCap; an explicit 0 empties the queue
}

// NewEngine creates an Engine from the given options.
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		store:     opts.Store,
		emitter:   opts.Emitter,
		log:       opts.Logger,
		intervals: opts.Intervals,
		dueCap:    models.DefaultDueCap,
	}
	if opts.DueCap != nil {
		e.dueCap = *opts.DueCap
	}
	if e.emitter == nil {
		e.emitter = analytics.NopEmitter{}
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.intervals == nil {
		e.intervals = DefaultIntervals
	}
	return e
}

// ReviewParams identifies the card under review and carries the grading
// outcome. Sentence is the current source line; prompt and answer are
// always recomputed from it so stored sides track content edits.
type ReviewParams struct {
	DayNumber     int
	SectionID     string
	SentenceIndex int
	Sentence      string
	Grade         models.Grade
	Now           time.Time // zero → time.Now()
}

// loadCards reads and decodes the full collection. Malformed records are
// dropped by the codec and surface only as a warning.
func (e *Engine) loadCards(ctx context.Context) ([]models.ReviewCard, error) {
	raw, ok, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load card collection: %w", err)
	}
	if !ok {
		return nil, nil
	}
	cards, dropped := DecodeCards(raw, len(e.intervals))
	if dropped > 0 {
		e.log.Warn("dropped malformed card records", "count", dropped)
	}
	return cards, nil
}

func (e *Engine) saveCards(ctx context.Context, cards []models.ReviewCard) error {
	raw, err := EncodeCards(cards)
	if err != nil {
		return fmt.Errorf("encode card collection: %w", err)
	}
	if err := e.store.Save(ctx, raw); err != nil {
		return fmt.Errorf("save card collection: %w", err)
	}
	return nil
}

// EnsureCardsForDay materializes cards for the day's anki section. It is
// idempotent: sentences already represented by a card are skipped, and
// the collection is written back only when at least one card was added.
// A day without an anki section returns the collection unchanged.
func (e *Engine) EnsureCardsForDay(ctx context.Context, day models.Day, now time.Time) ([]models.ReviewCard, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cards, err := e.loadCards(ctx)
	if err != nil {
		return nil, err
	}

	section, ok := day.AnkiSection()
	if !ok {
		return cards, nil
	}

	existing := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		existing[c.ID] = struct{}{}
	}

	ts := now.Format(time.RFC3339)
	added := 0
	for i, sentence := range section.Sentences {
		id := models.CardID(day.DayNumber, section.ID, i)
		if _, ok := existing[id]; ok {
			continue
		}
		prompt, answer := ParsePair(sentence)
		if prompt == "" {
			// Blank source line; nothing to review.
			continue
		}
		cards = append(cards, models.ReviewCard{
			ID:            id,
			DayNumber:     day.DayNumber,
			SectionID:     section.ID,
			SentenceIndex: i,
			Prompt:        prompt,
			Answer:        answer,
			Box:           1,
			DueDate:       Today(now),
			CreatedAt:     ts,
			UpdatedAt:     ts,
		})
		added++
	}

	if added == 0 {
		return cards, nil
	}
	if err := e.saveCards(ctx, cards); err != nil {
		return nil, err
	}
	e.log.Info("cards created for lesson day",
		"dayNumber", day.DayNumber, "sectionId", section.ID, "added", added)
	return cards, nil
}

// ReviewCard applies a grading outcome to one card and persists the
// whole collection. A card missing from the collection is treated as a
// fresh box-1 card, as if just created. The analytics event is emitted
// after the save; emission failure never fails the review.
func (e *Engine) ReviewCard(ctx context.Context, params ReviewParams) (models.ReviewCard, error) {
	if !params.Grade.IsValid() {
		return models.ReviewCard{}, fmt.Errorf("%w: %d", models.ErrInvalidGrade, int(params.Grade))
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cards, err := e.loadCards(ctx)
	if err != nil {
		return models.ReviewCard{}, err
	}

	id := models.CardID(params.DayNumber, params.SectionID, params.SentenceIndex)
	idx := -1
	for i, c := range cards {
		if c.ID == id {
			idx = i
			break
		}
	}

	previousBox := 1
	card := models.ReviewCard{
		ID:            id,
		DayNumber:     params.DayNumber,
		SectionID:     params.SectionID,
		SentenceIndex: params.SentenceIndex,
		Box:           1,
		CreatedAt:     now.Format(time.RFC3339),
	}
	if idx >= 0 {
		card = cards[idx]
		previousBox = card.Box
	}

	// Prompt and answer are refreshed on every review so edits to the
	// lesson content propagate into the stored card. A blank sentence
	// never overwrites them: cards carry non-empty sides, and a card
	// with empty sides would be dropped on the next decode along with
	// its review history.
	prompt, answer := ParsePair(params.Sentence)
	if prompt == "" {
		if idx < 0 {
			return models.ReviewCard{}, fmt.Errorf("review card %s: blank sentence", id)
		}
	} else {
		card.Prompt, card.Answer = prompt, answer
	}

	card.Box = NextBox(e.intervals, previousBox, params.Grade)
	card.DueDate = NextDueDate(e.intervals, now, card.Box)
	card.ReviewCount++
	if params.Grade.IsSuccess() {
		card.SuccessCount++
	}
	ts := now.Format(time.RFC3339)
	card.UpdatedAt = ts
	card.LastReviewedAt = ts
	card.LastGrade = params.Grade

	if idx >= 0 {
		cards[idx] = card
	} else {
		cards = append(cards, card)
	}

	if err := e.saveCards(ctx, cards); err != nil {
		return models.ReviewCard{}, err
	}

	ev := analytics.ReviewEvent{
		DayNumber:   params.DayNumber,
		SectionID:   params.SectionID,
		Grade:       params.Grade.String(),
		PreviousBox: previousBox,
		NextBox:     card.Box,
		At:          now,
	}
	if err := e.emitter.Emit(ctx, ev); err != nil {
		e.log.Warn("analytics emit failed", "error", err)
	}

	return card, nil
}

// DueQueue loads the collection and selects today's due queue with the
// engine's configured cap.
func (e *Engine) DueQueue(ctx context.Context, date time.Time) ([]models.ReviewCard, error) {
	cards, err := e.loadCards(ctx)
	if err != nil {
		return nil, err
	}
	return SelectDue(cards, date, e.dueCap), nil
}

// MicroReview loads the collection and builds the micro-review payload
// for the given lesson day under the given plan.
func (e *Engine) MicroReview(ctx context.Context, currentDay int, plan models.MicroReviewPlan) (MicroReview, error) {
	cards, err := e.loadCards(ctx)
	if err != nil {
		return MicroReview{}, err
	}
	return SelectMicroReview(cards, currentDay, plan), nil
}

// Metrics loads the collection and computes the summary counters.
func (e *Engine) Metrics(ctx context.Context, now time.Time) (Metrics, error) {
	cards, err := e.loadCards(ctx)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(cards, now), nil
}
