package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain"
	apperrors "atelier/internal/errors"
	"atelier/internal/testutil"
)

func newItem(name string, cents int64, active bool) domain.Item {
	return domain.Item{
		ID:            uuid.New().String(),
		Name:          name,
		AmountInCents: cents,
		IsActive:      active,
	}
}

func TestCreateAndFindItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	ctx := context.Background()

	dress := newItem("Vestido", 1000, true)
	pants := newItem("Calça", 550, true)
	require.NoError(t, repo.Create(ctx, dress))
	require.NoError(t, repo.Create(ctx, pants))

	found, err := repo.FindByID(ctx, dress.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vestido", found.Name)
	assert.Equal(t, int64(1000), found.AmountInCents)

	items, err := repo.FindByIDs(ctx, []string{dress.ID, pants.ID, uuid.New().String()})
	require.NoError(t, err)
	// Los ids desconocidos simplemente no aparecen; el caso de uso decide.
	assert.Len(t, items, 2)

	items, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestUpdateItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	ctx := context.Background()

	item := newItem("Vestido", 1000, true)
	require.NoError(t, repo.Create(ctx, item))

	item.Name = "Vestido longo"
	item.AmountInCents = 1500
	item.IsActive = false
	require.NoError(t, repo.Update(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vestido longo", found.Name)
	assert.Equal(t, int64(1500), found.AmountInCents)
	assert.False(t, found.IsActive)

	missing := newItem("Fantasma", 100, true)
	err = repo.Update(ctx, missing)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestListItemsFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newItem("Vestido", 1000, true)))
	require.NoError(t, repo.Create(ctx, newItem("Vestido antigo", 800, false)))
	require.NoError(t, repo.Create(ctx, newItem("Calça", 550, true)))

	active, _, err := repo.List(ctx, "", true, 1, 10)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	matching, _, err := repo.List(ctx, "Vestido", false, 1, 10)
	require.NoError(t, err)
	assert.Len(t, matching, 2)
}
