package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ut1-planning-parser/internal/app"
	"ut1-planning-parser/internal/browser"
	"ut1-planning-parser/internal/calendar"
	"ut1-planning-parser/internal/checksum"
	"ut1-planning-parser/internal/config"
	"ut1-planning-parser/internal/observability"
	"ut1-planning-parser/internal/publish"
	"ut1-planning-parser/internal/scraper"
	"ut1-planning-parser/internal/storage"
	"ut1-planning-parser/internal/storage/mssql"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	selectors, err := cfg.LoadSelectorsFor(filepath.Dir(configPath))
	if err != nil {
		log.Fatalf("Failed to load selectors: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	username := os.Getenv(cfg.Portal.UsernameEnv)
	password := os.Getenv(cfg.Portal.PasswordEnv)
	if username == "" || password == "" {
		log.Fatalf("Credentials missing: set %s and %s", cfg.Portal.UsernameEnv, cfg.Portal.PasswordEnv)
	}

	var repo storage.Repository
	if cfg.Storage.Enabled {
		repo, err = mssql.NewRepository(cfg.Storage.DSN, cfg.Storage.CommandTimeoutMS, logger)
		if err != nil {
			log.Fatalf("Failed to connect to storage: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("Failed to close storage", "error", err.Error())
			}
		}()
	}

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	publisher := publish.NewPublisher(cfg, logger)
	assembler := calendar.NewAssembler(cfg.Calendar.ProdID, cfg.Calendar.UIDDomain)

	for {
		started := time.Now()
		if err := runOnce(ctx, cfg, selectors, logger, assembler, publisher, repo, username, password); err != nil {
			logger.Error("Scrape run failed", "error", err.Error())
		} else {
			logger.Info("Scrape run finished", "took", time.Since(started).String())
		}

		if cfg.Scheduler.Mode == "oneshot" {
			return
		}

		logger.Info("Next run scheduled", "at", time.Now().Add(cfg.GetSchedulerInterval()).Format(time.RFC3339))
		select {
		case <-time.After(cfg.GetSchedulerInterval()):
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return
		}
	}
}

func runOnce(
	ctx context.Context,
	cfg *config.Config,
	selectors *scraper.Selectors,
	logger *observability.Logger,
	assembler *calendar.Assembler,
	publisher *publish.Publisher,
	repo storage.Repository,
	username, password string,
) error {
	// Свежий браузер на каждый прогон: сессия портала живёт недолго, а
	// висящие вкладки прошлого прогона нам не нужны.
	b, err := browser.Launch(cfg, selectors, logger)
	if err != nil {
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("Failed to close browser", "error", err.Error())
		}
	}()

	if err := b.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	orchestrator := app.NewOrchestrator(cfg, logger, b)
	events, stats, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}
	if stats.WeeksScraped == 0 {
		return fmt.Errorf("no weeks scraped (%d failed), keeping previous calendar", stats.WeeksFailed)
	}

	ics := assembler.Build(events)
	if err := os.WriteFile(cfg.Calendar.OutputPath, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	logger.Info("Calendar written", "path", cfg.Calendar.OutputPath, "events", len(events))

	if err := publisher.Publish(ctx, cfg.Calendar.OutputPath); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	if repo != nil {
		persistEvents(ctx, logger, repo, events)
	}

	return nil
}

// persistEvents сохраняет события в БД для отслеживания изменений между
// прогонами. Ошибки хранилища не фатальны: календарь уже опубликован.
func persistEvents(ctx context.Context, logger *observability.Logger, repo storage.Repository, events []scraper.CalendarEvent) {
	uids := checksum.NewGenerator()
	scrapedAt := time.Now().UTC()

	var inserted, updated int
	for i := range events {
		evt := &events[i]
		record := &storage.EventRecord{
			UID:         uids.EventUID(evt.Course, evt.Room, evt.Start),
			Start:       evt.Start,
			DurationMin: int(evt.Duration.Minutes()),
			Course:      evt.Course,
			Room:        evt.Room,
			Instructor:  evt.Instructor,
			Groups:      strings.Join(evt.Groups, ","),
			Notes:       evt.Notes,
			ScrapedAt:   scrapedAt,
		}

		isNew, isUpdated, err := repo.UpsertEvent(ctx, record)
		if err != nil {
			logger.Error("Failed to upsert event",
				"course", evt.Course,
				"start", evt.Start.Format(time.RFC3339),
				"error", err.Error(),
			)
			continue
		}
		if isNew {
			inserted++
		}
		if isUpdated {
			updated++
		}
	}

	logger.Info("Events persisted", "inserted", inserted, "updated", updated, "total", len(events))
}
