package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// JournalRepo defines the persistence operations for JournalEntries.
type JournalRepo interface {
	// Create inserts a new entry and returns the persisted record.
	Create(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)

	// GetByID retrieves a single entry by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error)

	// ListForUser returns all entries the user owns or was granted,
	// ordered by entry_date descending, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error)

	// Update overwrites the mutable fields, including sharing fields.
	Update(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns up to limit entries readable by the user whose title
	// or content contains q (case-insensitive), ordered by title.
	Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.JournalEntry, error)
}

// pgJournalRepo is the Postgres implementation of JournalRepo.
type pgJournalRepo struct {
	db db
}

// NewJournalRepo constructs a JournalRepo backed by the provided db connection.
func NewJournalRepo(db db) JournalRepo {
	return &pgJournalRepo{db: db}
}

const journalColumns = `id, trip_id, owner_id, is_public, shared_with, title, content, mood,
		entry_date, created_at, updated_at`

func (r *pgJournalRepo) Create(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	const q = `
		INSERT INTO journal_entries (trip_id, owner_id, is_public, shared_with, title, content, mood, entry_date)
		VALUES (@trip_id, @owner_id, @is_public, @shared_with, @title, @content, @mood, @entry_date)
		RETURNING ` + journalColumns

	args := pgx.NamedArgs{
		"trip_id":     entry.TripID,
		"owner_id":    entry.OwnerID,
		"is_public":   entry.IsPublic,
		"shared_with": grantsParam(entry.SharedWith),
		"title":       entry.Title,
		"content":     entry.Content,
		"mood":        entry.Mood,
		"entry_date":  entry.EntryDate,
	}

	result, err := scanJournal(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgJournalRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error) {
	const q = `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = @id`

	result, err := scanJournal(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgJournalRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error) {
	const q = `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE ` + memberSQL + `
		ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"requester": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	return collectJournals(rows, "repo.JournalRepo.ListForUser")
}

func (r *pgJournalRepo) Update(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	const q = `
		UPDATE journal_entries
		SET is_public   = @is_public,
		    shared_with = @shared_with,
		    title       = @title,
		    content     = @content,
		    mood        = @mood,
		    entry_date  = @entry_date,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + journalColumns

	args := pgx.NamedArgs{
		"id":          entry.ID,
		"is_public":   entry.IsPublic,
		"shared_with": grantsParam(entry.SharedWith),
		"title":       entry.Title,
		"content":     entry.Content,
		"mood":        entry.Mood,
		"entry_date":  entry.EntryDate,
	}

	result, err := scanJournal(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgJournalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM journal_entries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgJournalRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.JournalEntry, error) {
	const query = `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE ` + visibleSQL + `
		  AND (title ILIKE '%' || @q || '%' OR content ILIKE '%' || @q || '%')
		ORDER BY title
		LIMIT @limit`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"requester": userID, "q": q, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectJournals(rows, "repo.JournalRepo.Search")
}

// collectJournals drains rows into a slice, wrapping errors with op.
func collectJournals(rows pgx.Rows, op string) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return entries, nil
}

// scanJournal maps a single database row into a domain.JournalEntry.
func scanJournal(s scanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := s.Scan(&e.ID, &e.TripID, &e.OwnerID, &e.IsPublic, &e.SharedWith,
		&e.Title, &e.Content, &e.Mood, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JournalEntry{}, domain.ErrNotFound
		}
		return domain.JournalEntry{}, err
	}
	return e, nil
}
