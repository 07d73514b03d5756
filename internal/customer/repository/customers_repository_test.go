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

func newCustomer(cpf string) (domain.Customer, domain.Address) {
	addr := domain.Address{
		ID:           uuid.New().String(),
		Zipcode:      "01310-100",
		Street:       "Avenida Paulista",
		Number:       1578,
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		Province:     "SP",
	}
	customer := domain.Customer{
		ID:        uuid.New().String(),
		Name:      "Maria Silva",
		Phone:     "11987654321",
		CPF:       cpf,
		AddressID: addr.ID,
	}
	return customer, addr
}

func TestCreateAndFindCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	customer, addr := newCustomer("123.456.789-00")
	require.NoError(t, repo.Create(ctx, customer, addr))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", found.Name)
	require.NotNil(t, found.Address)
	assert.Equal(t, "Avenida Paulista", found.Address.Street)

	byCPF, err := repo.FindByTaxID(ctx, "123.456.789-00")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byCPF.ID)
}

func TestCreateCustomerDuplicateCPF(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	first, firstAddr := newCustomer("123.456.789-00")
	require.NoError(t, repo.Create(ctx, first, firstAddr))

	// La restricción UNIQUE sobre cpf es la garantía real.
	second, secondAddr := newCustomer("123.456.789-00")
	err := repo.Create(ctx, second, secondAddr)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestFindCustomerNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New().String())

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	customer, addr := newCustomer("123.456.789-00")
	require.NoError(t, repo.Create(ctx, customer, addr))

	customer.Name = "Maria Souza"
	addr.Street = "Rua Augusta"
	require.NoError(t, repo.Update(ctx, customer, addr))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", found.Name)
	assert.Equal(t, "Rua Augusta", found.Address.Street)
}

func TestListCustomersPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		customer, addr := newCustomer(uuid.New().String()[:14])
		require.NoError(t, repo.Create(ctx, customer, addr))
	}

	firstPage, hasNext, err := repo.List(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, firstPage, 2)
	assert.True(t, hasNext)

	secondPage, hasNext, err := repo.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, secondPage, 1)
	assert.False(t, hasNext)
}

func TestSetAvatar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	customer, addr := newCustomer("123.456.789-00")
	require.NoError(t, repo.Create(ctx, customer, addr))

	image := domain.Image{ID: uuid.New().String(), Filename: "1700000000000_" + customer.ID + ".jpg"}
	require.NoError(t, repo.InsertImage(ctx, image))
	require.NoError(t, repo.SetAvatar(ctx, customer.ID, image.ID))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Avatar)
	assert.Equal(t, image.Filename, found.Avatar.Filename)

	err = repo.SetAvatar(ctx, uuid.New().String(), image.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
