package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/errors"
)

type MySQLDeliveredAddressRepository struct {
	db *sql.DB
}

func NewMySQLDeliveredAddressRepository(db *sql.DB) *MySQLDeliveredAddressRepository {
	return &MySQLDeliveredAddressRepository{db: db}
}

const deliveredAddressColumns = `id, customerId, zipcode, street, streetNumber, neighborhood,
	       complement, city, province, isDefaultAddress, createdAt, updatedAt`

func (r *MySQLDeliveredAddressRepository) FindByID(ctx context.Context, id string) (*domain.DeliveredAddress, error) {
	query := fmt.Sprintf(`SELECT %s FROM DeliveredAddresses WHERE id = ?`, deliveredAddressColumns)

	var addr domain.DeliveredAddress
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&addr.ID, &addr.CustomerID, &addr.Zipcode, &addr.Street, &addr.Number, &addr.Neighborhood,
		&addr.Complement, &addr.City, &addr.Province, &addr.IsDefaultAddress, &addr.CreatedAt, &addr.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("delivered address with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying delivered address by id: %w", err)
	}

	return &addr, nil
}

func (r *MySQLDeliveredAddressRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.DeliveredAddress, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM DeliveredAddresses
		WHERE customerId = ?
		ORDER BY createdAt ASC`, deliveredAddressColumns)

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying delivered addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.DeliveredAddress
	for rows.Next() {
		var addr domain.DeliveredAddress
		err := rows.Scan(
			&addr.ID, &addr.CustomerID, &addr.Zipcode, &addr.Street, &addr.Number, &addr.Neighborhood,
			&addr.Complement, &addr.City, &addr.Province, &addr.IsDefaultAddress, &addr.CreatedAt, &addr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning delivered address row: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating delivered address rows: %w", err)
	}

	return addresses, nil
}

// FindDefaultByCustomer returns the customer's default address, or nil
// when none is marked.
func (r *MySQLDeliveredAddressRepository) FindDefaultByCustomer(ctx context.Context, customerID string) (*domain.DeliveredAddress, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM DeliveredAddresses
		WHERE customerId = ? AND isDefaultAddress = 1
		LIMIT 1`, deliveredAddressColumns)

	var addr domain.DeliveredAddress
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&addr.ID, &addr.CustomerID, &addr.Zipcode, &addr.Street, &addr.Number, &addr.Neighborhood,
		&addr.Complement, &addr.City, &addr.Province, &addr.IsDefaultAddress, &addr.CreatedAt, &addr.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying default delivered address: %w", err)
	}

	return &addr, nil
}

func (r *MySQLDeliveredAddressRepository) Create(ctx context.Context, addr domain.DeliveredAddress) error {
	query := `
		INSERT INTO DeliveredAddresses (id, customerId, zipcode, street, streetNumber,
		                                neighborhood, complement, city, province, isDefaultAddress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		addr.ID, addr.CustomerID, addr.Zipcode, addr.Street, addr.Number,
		addr.Neighborhood, addr.Complement, addr.City, addr.Province, addr.IsDefaultAddress,
	)
	if err != nil {
		return fmt.Errorf("inserting delivered address: %w", err)
	}

	return nil
}

func (r *MySQLDeliveredAddressRepository) Update(ctx context.Context, addr domain.DeliveredAddress) error {
	query := `
		UPDATE DeliveredAddresses
		SET zipcode = ?, street = ?, streetNumber = ?, neighborhood = ?,
		    complement = ?, city = ?, province = ?, updatedAt = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		addr.Zipcode, addr.Street, addr.Number, addr.Neighborhood,
		addr.Complement, addr.City, addr.Province, addr.ID,
	)
	if err != nil {
		return fmt.Errorf("updating delivered address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("delivered address with id %s not found", addr.ID))
	}

	return nil
}

// SetDefault flips the default flag in a single statement: the target row
// gets true, every other row of the customer gets false. One statement
// means no interleaving can leave two defaults behind.
func (r *MySQLDeliveredAddressRepository) SetDefault(ctx context.Context, customerID, addressID string) error {
	query := `
		UPDATE DeliveredAddresses
		SET isDefaultAddress = (id = ?), updatedAt = NOW()
		WHERE customerId = ?
	`

	_, err := r.db.ExecContext(ctx, query, addressID, customerID)
	if err != nil {
		return fmt.Errorf("setting default delivered address: %w", err)
	}

	return nil
}
