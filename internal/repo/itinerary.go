package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries and
// their ordered items.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// ListByTrip returns all itineraries under a trip, oldest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error)

	// Update overwrites the mutable fields, including sharing fields.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary and, via cascade, its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateItem appends an item to an itinerary. Position is assigned by
	// the caller; items with equal positions order by day.
	CreateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// ListItems returns an itinerary's items ordered by position, then day.
	ListItems(ctx context.Context, itineraryID uuid.UUID) ([]domain.ItineraryItem, error)

	// UpdateItem overwrites the mutable fields of an item, scoped to its itinerary.
	UpdateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// DeleteItem removes an item, scoped to its itinerary.
	DeleteItem(ctx context.Context, itineraryID, itemID uuid.UUID) error

	// Search returns up to limit itineraries readable by the user whose
	// title contains q (case-insensitive), ordered by title.
	Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Itinerary, error)
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, trip_id, owner_id, is_public, shared_with, title, notes, created_at, updated_at`

const itemColumns = `id, itinerary_id, day, location, activity, notes, position, created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (trip_id, owner_id, is_public, shared_with, title, notes)
		VALUES (@trip_id, @owner_id, @is_public, @shared_with, @title, @notes)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"trip_id":     it.TripID,
		"owner_id":    it.OwnerID,
		"is_public":   it.IsPublic,
		"shared_with": grantsParam(it.SharedWith),
		"title":       it.Title,
		"notes":       it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE trip_id = @trip_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	return collectItineraries(rows, "repo.ItineraryRepo.ListByTrip")
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET is_public   = @is_public,
		    shared_with = @shared_with,
		    title       = @title,
		    notes       = @notes,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"id":          it.ID,
		"is_public":   it.IsPublic,
		"shared_with": grantsParam(it.SharedWith),
		"title":       it.Title,
		"notes":       it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgItineraryRepo) CreateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	const q = `
		INSERT INTO itinerary_items (itinerary_id, day, location, activity, notes, position)
		VALUES (@itinerary_id, @day, @location, @activity, @notes, @position)
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"itinerary_id": item.ItineraryID,
		"day":          item.Day,
		"location":     item.Location,
		"activity":     item.Activity,
		"notes":        item.Notes,
		"position":     item.Position,
	}

	result, err := scanItineraryItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.CreateItem: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListItems(ctx context.Context, itineraryID uuid.UUID) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM itinerary_items
		WHERE itinerary_id = @itinerary_id
		ORDER BY position, day`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListItems: %w", err)
	}
	defer rows.Close()

	items := []domain.ItineraryItem{}
	for rows.Next() {
		it, err := scanItineraryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListItems: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListItems: rows: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) UpdateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	const q = `
		UPDATE itinerary_items
		SET day        = @day,
		    location   = @location,
		    activity   = @activity,
		    notes      = @notes,
		    position   = @position,
		    updated_at = now()
		WHERE id = @id AND itinerary_id = @itinerary_id
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"id":           item.ID,
		"itinerary_id": item.ItineraryID,
		"day":          item.Day,
		"location":     item.Location,
		"activity":     item.Activity,
		"notes":        item.Notes,
		"position":     item.Position,
	}

	result, err := scanItineraryItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.UpdateItem: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) DeleteItem(ctx context.Context, itineraryID, itemID uuid.UUID) error {
	const q = `DELETE FROM itinerary_items WHERE id = @id AND itinerary_id = @itinerary_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "itinerary_id": itineraryID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.DeleteItem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.DeleteItem: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgItineraryRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Itinerary, error) {
	const query = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE ` + visibleSQL + `
		  AND title ILIKE '%' || @q || '%'
		ORDER BY title
		LIMIT @limit`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"requester": userID, "q": q, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectItineraries(rows, "repo.ItineraryRepo.Search")
}

// collectItineraries drains rows into a slice, wrapping errors with op.
func collectItineraries(rows pgx.Rows, op string) ([]domain.Itinerary, error) {
	its := []domain.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		its = append(its, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return its, nil
}

// scanItinerary maps a single database row into a domain.Itinerary.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var it domain.Itinerary
	err := s.Scan(&it.ID, &it.TripID, &it.OwnerID, &it.IsPublic, &it.SharedWith,
		&it.Title, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}
	return it, nil
}

// scanItineraryItem maps a single database row into a domain.ItineraryItem.
func scanItineraryItem(s scanner) (domain.ItineraryItem, error) {
	var it domain.ItineraryItem
	err := s.Scan(&it.ID, &it.ItineraryID, &it.Day, &it.Location, &it.Activity,
		&it.Notes, &it.Position, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}
	return it, nil
}
