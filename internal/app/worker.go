package app

import (
	"context"
	"fmt"
	"time"

	"ut1-planning-parser/internal/geometry"
	"ut1-planning-parser/internal/scraper"
)

// scrapeWeek — один воркер: эксклюзивная вкладка, переход на сетку,
// активация пагинации для несмежной недели, съём ячеек, декодирование и
// разбор каждой. Ошибка уровня ячейки изолируется в ячейке; ошибка уровня
// недели возвращается наверх и гасится оркестратором.
func (o *Orchestrator) scrapeWeek(
	ctx context.Context,
	container geometry.GridContainer,
	anchor time.Time,
	target WeekTarget,
) (events []scraper.CalendarEvent, seen, skipped int, err error) {
	session, err := o.accessor.NewSession(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open page session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			o.logger.Warn("Failed to close page session",
				"iso_week", target.ISOWeek,
				"error", closeErr.Error(),
			)
		}
	}()

	if err := session.OpenPlanning(ctx); err != nil {
		return nil, 0, 0, fmt.Errorf("navigation failed: %w", err)
	}

	if !target.IsCurrentWeek {
		label := fmt.Sprintf("(%d)", target.ISOWeek)
		if err := session.ActivateWeek(ctx, label); err != nil {
			return nil, 0, 0, err
		}
	}

	cells, err := session.EventCells(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cell fetch failed: %w", err)
	}
	if len(cells) == 0 {
		// Неделя без занятий — валидный пустой результат.
		o.logger.Info("No events for week", "iso_week", target.ISOWeek)
		return nil, 0, 0, nil
	}

	for _, cell := range cells {
		seen++

		decoded := geometry.Decode(container, cell.X, cell.Y, cell.HeightPx, target.Delta, anchor)
		if checkErr := decoded.Check(container); checkErr != nil {
			skipped++
			o.logger.Warn("Skipping cell with bad geometry",
				"iso_week", target.ISOWeek,
				"x_px", cell.X,
				"y_px", cell.Y,
				"height_px", cell.HeightPx,
				"error", checkErr.Error(),
			)
			continue
		}

		record, parseErr := scraper.ParseEventText(cell.TextBlob)
		if parseErr != nil {
			skipped++
			o.logger.Warn("Skipping cell with malformed text",
				"iso_week", target.ISOWeek,
				"error", parseErr.Error(),
			)
			continue
		}

		events = append(events, scraper.CalendarEvent{
			Start:      decoded.Start,
			Duration:   decoded.Duration,
			Course:     record.Course,
			Room:       record.Room,
			Instructor: record.Instructor,
			Groups:     record.Groups,
			Notes:      record.Notes,
		})
	}

	o.logger.Info("Week scraped",
		"iso_week", target.ISOWeek,
		"cells", seen,
		"skipped", skipped,
		"events", len(events),
	)
	return events, seen, skipped, nil
}
