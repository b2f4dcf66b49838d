package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// createTestTrip inserts a trip via the repo and fails the test on error.
func createTestTrip(t *testing.T, r repo.TripRepo, trip domain.Trip) domain.Trip {
	t.Helper()
	created, err := r.Create(context.Background(), trip)
	require.NoError(t, err, "create test trip")
	return created
}

func lisbonTrip(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		Name:        "Lisbon Getaway",
		Destination: "Lisbon, Portugal",
		Description: "Long weekend in the Alfama district",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
		Sharing:     domain.Sharing{OwnerID: owner},
	}
}

func TestTripRepo_CreateAndGet(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx, "trip-owner@example.com")
	r := repo.NewTripRepo(tx)

	created := createTestTrip(t, r, lisbonTrip(owner.ID))

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner.ID, created.OwnerID)
	assert.False(t, created.IsPublic)
	assert.NotNil(t, created.SharedWith, "shared_with column defaults to an empty array, not null")
	assert.Empty(t, created.SharedWith)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Lisbon Getaway", got.Name)
	assert.Equal(t, "Lisbon, Portugal", got.Destination)
	assert.True(t, got.StartDate.Equal(created.StartDate))
	assert.True(t, got.EndDate.Equal(created.EndDate))
}

func TestTripRepo_GetByID_notFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_SharedWithRoundTrip(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx, "grants-owner@example.com")
	friend := createTestUser(t, tx, "grants-friend@example.com")
	r := repo.NewTripRepo(tx)

	trip := lisbonTrip(owner.ID)
	trip.SharedWith = []domain.ShareGrant{{UserID: friend.ID, Role: domain.RoleEditor}}
	created := createTestTrip(t, r, trip)

	// Grants survive the JSONB round trip with order and role intact.
	got, err := r.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.SharedWith, 1)
	assert.Equal(t, friend.ID, got.SharedWith[0].UserID)
	assert.Equal(t, domain.RoleEditor, got.SharedWith[0].Role)
}

func TestTripRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx, "update-owner@example.com")
	friend := createTestUser(t, tx, "update-friend@example.com")
	r := repo.NewTripRepo(tx)

	created := createTestTrip(t, r, lisbonTrip(owner.ID))

	created.Name = "Lisbon and Porto"
	created.IsPublic = true
	created.SharedWith = []domain.ShareGrant{{UserID: friend.ID, Role: domain.RoleViewer}}

	updated, err := r.Update(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon and Porto", updated.Name)
	assert.True(t, updated.IsPublic)
	require.Len(t, updated.SharedWith, 1)
	assert.Equal(t, domain.RoleViewer, updated.SharedWith[0].Role)

	t.Run("notFound", func(t *testing.T) {
		missing := created
		missing.ID = uuid.New()
		_, err := r.Update(context.Background(), missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTripRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx, "delete-owner@example.com")
	r := repo.NewTripRepo(tx)

	created := createTestTrip(t, r, lisbonTrip(owner.ID))

	require.NoError(t, r.Delete(context.Background(), created.ID))

	_, err := r.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(context.Background(), created.ID), domain.ErrNotFound)
}

func TestTripRepo_ListForUser(t *testing.T) {
	tx := newTestTx(t)
	alice := createTestUser(t, tx, "list-alice@example.com")
	bob := createTestUser(t, tx, "list-bob@example.com")
	r := repo.NewTripRepo(tx)

	owned := createTestTrip(t, r, lisbonTrip(alice.ID))

	sharedIn := lisbonTrip(bob.ID)
	sharedIn.Name = "Shared Via Grant"
	sharedIn.SharedWith = []domain.ShareGrant{{UserID: alice.ID, Role: domain.RoleViewer}}
	shared := createTestTrip(t, r, sharedIn)

	// Public but unrelated: readable directly, but kept out of listings.
	publicIn := lisbonTrip(bob.ID)
	publicIn.Name = "Public Stranger Trip"
	publicIn.IsPublic = true
	createTestTrip(t, r, publicIn)

	trips, err := r.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	ids := []uuid.UUID{trips[0].ID, trips[1].ID}
	assert.Contains(t, ids, owned.ID)
	assert.Contains(t, ids, shared.ID)
}

func TestTripRepo_Search(t *testing.T) {
	tx := newTestTx(t)
	alice := createTestUser(t, tx, "search-alice@example.com")
	bob := createTestUser(t, tx, "search-bob@example.com")
	r := repo.NewTripRepo(tx)

	owned := createTestTrip(t, r, lisbonTrip(alice.ID))

	publicIn := lisbonTrip(bob.ID)
	publicIn.Name = "Community Lisbon Walks"
	publicIn.IsPublic = true
	public := createTestTrip(t, r, publicIn)

	privateIn := lisbonTrip(bob.ID)
	privateIn.Name = "Bob Secret Lisbon Plans"
	createTestTrip(t, r, privateIn)

	t.Run("matchesNameAndDestination", func(t *testing.T) {
		// "lisbon" matches both the owned trip (destination) and the
		// public trip (name); bob's private trip stays invisible.
		results, err := r.Search(context.Background(), alice.ID, "lisbon", 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Contains(t, []uuid.UUID{results[0].ID, results[1].ID}, owned.ID)
		assert.Contains(t, []uuid.UUID{results[0].ID, results[1].ID}, public.ID)
	})

	t.Run("respectsLimit", func(t *testing.T) {
		results, err := r.Search(context.Background(), alice.ID, "lisbon", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("noMatches", func(t *testing.T) {
		results, err := r.Search(context.Background(), alice.ID, "antarctica", 10)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})
}
