package storage

import (
	"context"
	"time"
)

// EventRecord представляет событие расписания для сохранения в БД
type EventRecord struct {
	UID         string // детерминированный SHA256 (internal/checksum)
	Start       time.Time
	DurationMin int
	Course      string
	Room        string
	Instructor  string
	Groups      string // группы через запятую
	Notes       string
	ScrapedAt   time.Time
}

// Repository интерфейс для работы с хранилищем событий
type Repository interface {
	// UpsertEvent сохраняет или обновляет событие, возвращает (isNew, isUpdated, error)
	UpsertEvent(ctx context.Context, event *EventRecord) (isNew bool, isUpdated bool, err error)

	// ExistsByUID проверяет наличие события по UID
	ExistsByUID(ctx context.Context, uid string) (bool, error)

	// GetEventCount получает количество сохранённых событий
	GetEventCount(ctx context.Context) (int, error)

	Close() error
}
