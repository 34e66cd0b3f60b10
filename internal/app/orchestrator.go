package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ut1-planning-parser/internal/browser"
	"ut1-planning-parser/internal/config"
	"ut1-planning-parser/internal/geometry"
	"ut1-planning-parser/internal/observability"
	"ut1-planning-parser/internal/scraper"
)

type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	accessor browser.PageAccessor

	// Инжектируемые часы: якорь недели и текущая ISO-неделя считаются от
	// них, тесты границы года прогоняются детерминированно.
	now func() time.Time
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	accessor browser.PageAccessor,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		accessor: accessor,
		now:      time.Now,
	}
}

// WeekTarget — одна целевая неделя. Delta — смещение от недели запуска в
// неделях; номер ISO-недели нужен только для текста кнопки пагинации.
type WeekTarget struct {
	ISOWeek       int
	Delta         int
	IsCurrentWeek bool
}

type ScrapeStats struct {
	WeeksRequested int
	WeeksScraped   int
	WeeksFailed    int
	CellsSeen      int
	CellsSkipped   int
	Events         int
}

type weekOutcome struct {
	target  WeekTarget
	events  []scraper.CalendarEvent
	seen    int
	skipped int
	err     error
}

// Run обходит cfg.Scrape.Weeks последовательных недель параллельными
// воркерами и возвращает слитый список событий. Порядок между неделями не
// гарантируется — выход трактуется как множество. Провал отдельной недели
// логируется и выбрасывается; фатальны только нулевое число недель и
// недоступный контейнер.
func (o *Orchestrator) Run(ctx context.Context) ([]scraper.CalendarEvent, *ScrapeStats, error) {
	weeks := o.cfg.Scrape.Weeks
	if weeks <= 0 {
		return nil, nil, fmt.Errorf("week count must be > 0, got %d", weeks)
	}

	container, err := o.accessor.Container(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("container read failed: %w", err)
	}

	now := o.now()
	anchor := geometry.AnchorMonday(now)
	// Номер недели нормализуется относительно ISO-года, не календарного:
	// в начале января они расходятся (первые дни года могут лежать в
	// неделе 52/53 предыдущего ISO-года).
	isoYear, currentWeek := now.ISOWeek()

	targets := make([]WeekTarget, 0, weeks)
	for i := 0; i < weeks; i++ {
		targets = append(targets, WeekTarget{
			ISOWeek:       geometry.NormalizeISOWeek(currentWeek+i, isoYear),
			Delta:         i,
			IsCurrentWeek: i == 0,
		})
	}

	limit := o.cfg.Scrape.MaxConcurrent
	if limit <= 0 || limit > weeks {
		limit = weeks
	}

	o.logger.Info("Starting scrape",
		"weeks", weeks,
		"current_iso_week", currentWeek,
		"anchor_monday", anchor.Format("2006-01-02 15:04"),
		"max_concurrent", limit,
	)

	// Fork-join: по воркеру на неделю, степень параллелизма ограничена
	// семафором. Барьер — wg.Wait: слияние начинается только после того,
	// как завершились (или упали) все воркеры.
	sem := make(chan struct{}, limit)
	outcomes := make(chan weekOutcome, weeks)

	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(target WeekTarget) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			weekCtx, cancel := context.WithTimeout(ctx, o.cfg.GetWeekTimeout())
			defer cancel()

			events, seen, skipped, err := o.scrapeWeek(weekCtx, container, anchor, target)
			outcomes <- weekOutcome{
				target:  target,
				events:  events,
				seen:    seen,
				skipped: skipped,
				err:     err,
			}
		}(target)
	}

	wg.Wait()
	close(outcomes)

	stats := &ScrapeStats{WeeksRequested: weeks}
	var merged []scraper.CalendarEvent

	for out := range outcomes {
		if out.err != nil {
			stats.WeeksFailed++
			o.logger.Error("Week scrape failed",
				"iso_week", out.target.ISOWeek,
				"week_delta", out.target.Delta,
				"error", out.err.Error(),
			)
			continue
		}
		stats.WeeksScraped++
		stats.CellsSeen += out.seen
		stats.CellsSkipped += out.skipped
		merged = append(merged, out.events...)
	}
	stats.Events = len(merged)

	o.logger.Info("Scrape completed",
		"weeks_requested", stats.WeeksRequested,
		"weeks_scraped", stats.WeeksScraped,
		"weeks_failed", stats.WeeksFailed,
		"cells_seen", stats.CellsSeen,
		"cells_skipped", stats.CellsSkipped,
		"events", stats.Events,
	)

	return merged, stats, nil
}
