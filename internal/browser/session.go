package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"ut1-planning-parser/internal/config"
	"ut1-planning-parser/internal/observability"
	"ut1-planning-parser/internal/scraper"
)

// Session — одна вкладка портала, эксклюзивно принадлежащая воркеру.
type Session struct {
	page      *rod.Page
	cfg       *config.Config
	selectors *scraper.Selectors
	logger    *observability.Logger
}

// OpenPlanning переходит на страницу расписания. Куки авторизации общие
// на весь браузер, так что CAS сразу редиректит на сетку.
func (s *Session) OpenPlanning(ctx context.Context) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(s.cfg.Portal.URL); err != nil {
		return fmt.Errorf("failed to navigate to planning: %w", err)
	}
	if _, err := page.Timeout(s.cfg.GetWaitElemTimeout()).Element(s.selectors.Container); err != nil {
		return fmt.Errorf("planning grid did not render: %w", err)
	}
	return nil
}

// ActivateWeek кликает кнопку пагинации, содержащую weekLabel, например
// "(37)". Отсутствие кнопки — ErrPaginationNotFound, фатально только для
// этой недели.
func (s *Session) ActivateWeek(ctx context.Context, weekLabel string) error {
	page := s.page.Context(ctx)

	if _, err := page.Timeout(s.cfg.GetWaitElemTimeout()).Element(s.selectors.WeekButton); err != nil {
		return fmt.Errorf("%w: no week buttons rendered: %v", ErrPaginationNotFound, err)
	}

	buttons, err := page.Elements(s.selectors.WeekButton)
	if err != nil {
		return fmt.Errorf("failed to list week buttons: %w", err)
	}

	for _, button := range buttons {
		text, err := button.Text()
		if err != nil {
			continue
		}
		if strings.Contains(text, weekLabel) {
			if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
				return fmt.Errorf("failed to click week button %s: %w", weekLabel, err)
			}
			// Дожидаемся перерисовки сетки под выбранную неделю.
			if err := page.WaitStable(s.cfg.GetPageTimeout()); err != nil {
				s.logger.Debug("Grid did not stabilize after week switch", "week_label", weekLabel, "error", err.Error())
			}
			return nil
		}
	}

	return fmt.Errorf("%w: no button labeled %s", ErrPaginationNotFound, weekLabel)
}

// EventCells снимает сырые блоки текущей недели. Пустая сетка — не ошибка:
// неделя без занятий возвращает пустой срез.
func (s *Session) EventCells(ctx context.Context) ([]scraper.RawCell, error) {
	page := s.page.Context(ctx)

	// Ждём хотя бы один блок; таймаут читаем как "занятий нет".
	if _, err := page.Timeout(s.cfg.GetWaitElemTimeout()).Element(s.selectors.Cell); err != nil {
		s.logger.Debug("No event cells rendered", "error", err.Error())
		return nil, nil
	}

	elements, err := page.Elements(s.selectors.Cell)
	if err != nil {
		return nil, fmt.Errorf("failed to list event cells: %w", err)
	}

	var cells []scraper.RawCell
	for _, el := range elements {
		cell, err := s.extractCell(el)
		if err != nil {
			// Битый блок не роняет неделю: пропускаем и идём дальше.
			s.logger.Warn("Skipping unreadable event cell", "error", err.Error())
			continue
		}
		cells = append(cells, cell)
	}

	return cells, nil
}

func (s *Session) extractCell(el *rod.Element) (scraper.RawCell, error) {
	style, err := el.Attribute("style")
	if err != nil || style == nil {
		return scraper.RawCell{}, fmt.Errorf("cell has no style attribute: %v", err)
	}
	x, y, err := parsePositionStyle(*style)
	if err != nil {
		return scraper.RawCell{}, err
	}

	table, err := el.Timeout(s.cfg.GetWaitElemTimeout()).Element(s.selectors.EventTable)
	if err != nil {
		return scraper.RawCell{}, fmt.Errorf("event table not found in cell: %w", err)
	}
	tableStyle, err := table.Attribute("style")
	if err != nil || tableStyle == nil {
		return scraper.RawCell{}, fmt.Errorf("event table has no style attribute: %v", err)
	}
	height, err := parseHeightStyle(*tableStyle)
	if err != nil {
		return scraper.RawCell{}, err
	}

	textEl, err := el.Timeout(s.cfg.GetWaitElemTimeout()).Element(s.selectors.EventText)
	if err != nil {
		return scraper.RawCell{}, fmt.Errorf("event text not found in cell: %w", err)
	}
	blob, err := textEl.HTML()
	if err != nil {
		return scraper.RawCell{}, fmt.Errorf("failed to read event text: %w", err)
	}

	return scraper.RawCell{X: x, Y: y, HeightPx: height, TextBlob: blob}, nil
}

func (s *Session) Close() error {
	return s.page.Close()
}
