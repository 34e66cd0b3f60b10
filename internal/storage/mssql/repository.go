package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"ut1-planning-parser/internal/observability"
	"ut1-planning-parser/internal/storage"
)

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeoutMS int, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Тестируем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: time.Duration(commandTimeoutMS) * time.Millisecond,
		logger:         logger,
	}, nil
}

// UpsertEvent сохраняет или обновляет событие по UID
func (r *Repository) UpsertEvent(ctx context.Context, event *storage.EventRecord) (isNew bool, isUpdated bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	// MERGE statement для MS SQL
	query := `
		MERGE INTO TblPlanningEvents AS target
		USING (SELECT @UID AS UID) AS source
		ON target.[UID] = source.UID
		WHEN MATCHED THEN
			UPDATE SET
				[StartDT] = @StartDT,
				[DurationMin] = @DurationMin,
				[Course] = @Course,
				[Room] = @Room,
				[Instructor] = @Instructor,
				[Groups] = @Groups,
				[Notes] = @Notes,
				[ScrapedAt] = @ScrapedAt
		WHEN NOT MATCHED THEN
			INSERT ([UID], [StartDT], [DurationMin], [Course], [Room], [Instructor], [Groups], [Notes], [ScrapedAt])
			VALUES (@UID, @StartDT, @DurationMin, @Course, @Room, @Instructor, @Groups, @Notes, @ScrapedAt);
	`

	existed, err := r.ExistsByUID(ctx, event.UID)
	if err != nil {
		return false, false, err
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	_, err = stmt.ExecContext(ctx,
		sql.Named("UID", event.UID),
		sql.Named("StartDT", event.Start),
		sql.Named("DurationMin", event.DurationMin),
		sql.Named("Course", event.Course),
		sql.Named("Room", event.Room),
		sql.Named("Instructor", event.Instructor),
		sql.Named("Groups", event.Groups),
		sql.Named("Notes", event.Notes),
		sql.Named("ScrapedAt", event.ScrapedAt),
	)
	if err != nil {
		return false, false, fmt.Errorf("failed to execute upsert: %w", err)
	}

	if existed {
		return false, true, nil
	}
	return true, false, nil
}

// ExistsByUID проверяет наличие события по UID
func (r *Repository) ExistsByUID(ctx context.Context, uid string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblPlanningEvents WHERE [UID] = @UID`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	err = stmt.QueryRowContext(ctx, sql.Named("UID", uid)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query database: %w", err)
	}

	return count > 0, nil
}

// GetEventCount получает количество сохранённых событий
func (r *Repository) GetEventCount(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblPlanningEvents`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	err = stmt.QueryRowContext(ctx).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}

	return count, nil
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
