package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// EventRepo defines the persistence operations for CalendarEvents.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record.
	Create(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)

	// GetByID retrieves a single event by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarEvent, error)

	// ListForUser returns all events the user owns or was granted,
	// ordered by start_time ascending.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.CalendarEvent, error)

	// ListOverlapping returns the user's events whose [start_time, end_time)
	// range overlaps [from, to), ordered by start_time ascending.
	ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEvent, error)

	// Update overwrites the mutable fields, including sharing fields.
	Update(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)

	// Delete removes an event by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns up to limit events readable by the user whose title
	// contains q (case-insensitive), ordered by title.
	Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.CalendarEvent, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `id, trip_id, owner_id, is_public, shared_with, title, description,
		start_time, end_time, all_day, color, created_at, updated_at`

func (r *pgEventRepo) Create(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	const q = `
		INSERT INTO calendar_events (trip_id, owner_id, is_public, shared_with, title, description, start_time, end_time, all_day, color)
		VALUES (@trip_id, @owner_id, @is_public, @shared_with, @title, @description, @start_time, @end_time, @all_day, @color)
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"trip_id":     ev.TripID, // nil becomes NULL
		"owner_id":    ev.OwnerID,
		"is_public":   ev.IsPublic,
		"shared_with": grantsParam(ev.SharedWith),
		"title":       ev.Title,
		"description": ev.Description,
		"start_time":  ev.StartTime,
		"end_time":    ev.EndTime,
		"all_day":     ev.AllDay,
		"color":       ev.Color,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarEvent, error) {
	const q = `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = @id`

	result, err := scanEvent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.CalendarEvent, error) {
	const q = `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE ` + memberSQL + `
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"requester": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.ListForUser")
}

func (r *pgEventRepo) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEvent, error) {
	// Half-open overlap: an event overlaps [from, to) when it starts before
	// to and ends after from.
	const q = `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE ` + memberSQL + `
		  AND start_time < @to AND end_time > @from
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"requester": userID, "from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListOverlapping: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.ListOverlapping")
}

func (r *pgEventRepo) Update(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	const q = `
		UPDATE calendar_events
		SET is_public   = @is_public,
		    shared_with = @shared_with,
		    title       = @title,
		    description = @description,
		    start_time  = @start_time,
		    end_time    = @end_time,
		    all_day     = @all_day,
		    color       = @color,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"id":          ev.ID,
		"is_public":   ev.IsPublic,
		"shared_with": grantsParam(ev.SharedWith),
		"title":       ev.Title,
		"description": ev.Description,
		"start_time":  ev.StartTime,
		"end_time":    ev.EndTime,
		"all_day":     ev.AllDay,
		"color":       ev.Color,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM calendar_events WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.CalendarEvent, error) {
	const query = `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE ` + visibleSQL + `
		  AND title ILIKE '%' || @q || '%'
		ORDER BY title
		LIMIT @limit`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"requester": userID, "q": q, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.Search")
}

// collectEvents drains rows into a slice, wrapping errors with op.
func collectEvents(rows pgx.Rows, op string) ([]domain.CalendarEvent, error) {
	events := []domain.CalendarEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return events, nil
}

// scanEvent maps a single database row into a domain.CalendarEvent.
// It handles the nullable trip_id conversion.
func scanEvent(s scanner) (domain.CalendarEvent, error) {
	var ev domain.CalendarEvent
	err := s.Scan(&ev.ID, &ev.TripID, &ev.OwnerID, &ev.IsPublic, &ev.SharedWith,
		&ev.Title, &ev.Description, &ev.StartTime, &ev.EndTime, &ev.AllDay, &ev.Color,
		&ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CalendarEvent{}, domain.ErrNotFound
		}
		return domain.CalendarEvent{}, err
	}
	return ev, nil
}
