// Package analytics carries the per-review event out of the engine.
// Delivery is best-effort: emitter failures are reported to the caller
// but must never fail or roll back a review.
package analytics

import (
	"context"
	"time"

	"github.com/adexbam/Speak90-sub001/internal/logger"
)

// ReviewEvent is emitted once per graded review.
type ReviewEvent struct {
	DayNumber   int       `json:"dayNumber"`
	SectionID   string    `json:"sectionId"`
	Grade       string    `json:"grade"`
	PreviousBox int       `json:"previousBox"`
	NextBox     int       `json:"nextBox"`
	At          time.Time `json:"at"`
}

// Emitter is a fire-and-forget event sink.
type Emitter interface {
	Emit(ctx context.Context, ev ReviewEvent) error
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(ctx context.Context, ev ReviewEvent) error {
	return nil
}

// LogEmitter writes events to the structured log. Default sink when no
// message bus is configured.
type LogEmitter struct {
	log *logger.Logger
}

func NewLogEmitter(log *logger.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(ctx context.Context, ev ReviewEvent) error {
	e.log.Info("review graded",
		"dayNumber", ev.DayNumber,
		"sectionId", ev.SectionID,
		"grade", ev.Grade,
		"previousBox", ev.PreviousBox,
		"nextBox", ev.NextBox,
	)
	return nil
}
