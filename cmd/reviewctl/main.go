package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/adexbam/Speak90-sub001/internal/analytics"
	"github.com/adexbam/Speak90-sub001/internal/config"
	"github.com/adexbam/Speak90-sub001/internal/logger"
	"github.com/adexbam/Speak90-sub001/internal/models"
	"github.com/adexbam/Speak90-sub001/internal/services"
	"github.com/adexbam/Speak90-sub001/internal/store"
)

func usage() {
	fmt.Println(`reviewctl <command> [args...]

commands:
  ensure-day <day.json>                              materialize cards for a lesson day
  review <day> <section> <index> <sentence> <grade>  grade one card (again|good|easy)
  due [YYYY-MM-DD]                                   list today's due queue
  micro <currentDay>                                 build the micro-review payload
  stats                                              print collection metrics`)
}

type cmdHandler func(ctx context.Context, app *appContext, args []string) error

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found — relying on environment")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	handlers := map[string]cmdHandler{
		"ensure-day": handleEnsureDay,
		"review":     handleReview,
		"due":        handleDue,
		"micro":      handleMicro,
		"stats":      handleStats,
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	handler, ok := handlers[cmd]
	if !ok {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	app, cleanup, err := buildApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", cmd, err)
		os.Exit(1)
	}
	defer cleanup()

	if err := handler(ctx, app, args); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", cmd, err)
		os.Exit(1)
	}
}

type appContext struct {
	cfg    config.Config
	log    *logger.Logger
	engine *services.Engine
}

func buildApp(ctx context.Context) (*appContext, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	cleanups := []func(){log.Sync}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.PostgresURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = pg.Close(context.Background()) })
		st = pg
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = rs.Close() })
		st = rs
	default:
		st = store.NewFileStore(cfg.DataDir)
	}

	var emitter analytics.Emitter = analytics.NewLogEmitter(log)
	if cfg.NATSURL != "" {
		ne, err := analytics.NewNATSEmitter(cfg.NATSURL)
		if err != nil {
			// Analytics is best-effort; a dead bus must not block reviews.
			log.Warn("analytics bus unavailable, falling back to log emitter", "error", err)
		} else {
			cleanups = append(cleanups, ne.Close)
			emitter = ne
		}
	}

	engine := services.NewEngine(services.EngineOptions{
		Store:   st,
		Emitter: emitter,
		Logger:  log,
		DueCap:  &cfg.DueCap,
	})

	return &appContext{cfg: cfg, log: log, engine: engine}, cleanup, nil
}

func loadDayFile(path string) (models.Day, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Day{}, fmt.Errorf("read day file: %w", err)
	}
	var day models.Day
	if err := json.Unmarshal(raw, &day); err != nil {
		return models.Day{}, fmt.Errorf("invalid day json: %w", err)
	}
	// Authored lesson files can carry pasted markup; strip it before the
	// sentences reach the engine.
	for si := range day.Sections {
		for i, s := range day.Sections[si].Sentences {
			day.Sections[si].Sentences[i] = services.SanitizeSentence(s)
		}
	}
	return day, nil
}

func handleEnsureDay(ctx context.Context, app *appContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ensure-day <day.json>")
	}
	day, err := loadDayFile(args[0])
	if err != nil {
		return err
	}
	cards, err := app.engine.EnsureCardsForDay(ctx, day, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("day %d ensured, collection holds %d cards\n", day.DayNumber, len(cards))
	return nil
}

func handleReview(ctx context.Context, app *appContext, args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: review <day> <section> <index> <sentence> <grade>")
	}
	dayNumber, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid day number %q", args[0])
	}
	index, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid sentence index %q", args[2])
	}
	grade, err := models.ParseGrade(args[len(args)-1])
	if err != nil {
		return err
	}
	sentence := services.SanitizeSentence(strings.Join(args[3:len(args)-1], " "))

	card, err := app.engine.ReviewCard(ctx, services.ReviewParams{
		DayNumber:     dayNumber,
		SectionID:     args[1],
		SentenceIndex: index,
		Sentence:      sentence,
		Grade:         grade,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s graded %s: box %d, due %s\n", card.ID, grade, card.Box, card.DueDate)
	return nil
}

func handleDue(ctx context.Context, app *appContext, args []string) error {
	date := time.Now()
	if len(args) >= 1 {
		parsed, err := time.ParseInLocation(services.DateLayout, args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", args[0])
		}
		date = parsed
	}
	due, err := app.engine.DueQueue(ctx, date)
	if err != nil {
		return err
	}
	for _, c := range due {
		fmt.Printf("%-20s box %d  due %s  %s\n", c.ID, c.Box, c.DueDate, c.Prompt)
	}
	fmt.Printf("%d cards due\n", len(due))
	return nil
}

func handleMicro(ctx context.Context, app *appContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: micro <currentDay>")
	}
	currentDay, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid current day %q", args[0])
	}
	mr, err := app.engine.MicroReview(ctx, currentDay, app.cfg.Plan)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(mr, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func handleStats(ctx context.Context, app *appContext, args []string) error {
	m, err := app.engine.Metrics(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("due today:       %d\n", m.DueToday)
	fmt.Printf("total reviews:   %d\n", m.TotalReviews)
	fmt.Printf("total success:   %d\n", m.TotalSuccess)
	fmt.Printf("reviewed cards:  %d\n", m.ReviewedCards)
	fmt.Printf("accuracy:        %d%%\n", m.AccuracyPercent)
	for box := 1; box <= len(services.DefaultIntervals); box++ {
		if n := m.BoxCounts[box]; n > 0 {
			fmt.Printf("box %d:           %d\n", box, n)
		}
	}
	return nil
}
