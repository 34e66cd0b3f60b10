package browser

import (
	"context"
	"errors"

	"ut1-planning-parser/internal/geometry"
	"ut1-planning-parser/internal/scraper"
)

var (
	// ErrContainerUnavailable — контейнер сетки не прочитан; без него нет
	// геометрической базы, запуск фатален целиком.
	ErrContainerUnavailable = errors.New("planning container unavailable")

	// ErrPaginationNotFound — кнопка нужной недели отсутствует на странице.
	// Фатально только для этой недели.
	ErrPaginationNotFound = errors.New("pagination control not found")
)

// PageAccessor — минимальная способность, которую ядро требует от слоя
// браузерной автоматизации.
type PageAccessor interface {
	// Container возвращает пиксельные размеры контейнера сетки. Читается
	// один раз на запуск и переиспользуется для всех недель.
	Container(ctx context.Context) (geometry.GridContainer, error)

	// NewSession открывает эксклюзивную вкладку для одного воркера.
	NewSession(ctx context.Context) (PageSession, error)
}

// PageSession — одна вкладка на странице расписания. Не потокобезопасна,
// принадлежит ровно одному воркеру.
type PageSession interface {
	OpenPlanning(ctx context.Context) error
	ActivateWeek(ctx context.Context, weekLabel string) error
	EventCells(ctx context.Context) ([]scraper.RawCell, error)
	Close() error
}
