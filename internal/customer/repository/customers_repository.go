package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"atelier/internal/domain"
	"atelier/internal/errors"
)

const mysqlDuplicateEntry = 1062

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT c.id, c.name, c.phone, c.cpf, c.addressId, c.imageId, c.createdAt, c.updatedAt,
		       a.id, a.zipcode, a.street, a.streetNumber, a.neighborhood, a.complement, a.city, a.province,
		       img.id, img.filename
		FROM Customers c
		JOIN Addresses a ON a.id = c.addressId
		LEFT JOIN Images img ON img.id = c.imageId
		WHERE c.id = ?
	`

	var customer domain.Customer
	var addr domain.Address
	var imgID, imgFilename sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.CPF, &customer.AddressID,
		&customer.ImageID, &customer.CreatedAt, &customer.UpdatedAt,
		&addr.ID, &addr.Zipcode, &addr.Street, &addr.Number, &addr.Neighborhood,
		&addr.Complement, &addr.City, &addr.Province,
		&imgID, &imgFilename,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	customer.Address = &addr
	if imgID.Valid {
		customer.Avatar = &domain.Image{ID: imgID.String, Filename: imgFilename.String}
	}
	return &customer, nil
}

// FindByTaxID is the fast-path uniqueness hint. The UNIQUE constraint on
// cpf is what actually enforces it.
func (r *MySQLCustomerRepository) FindByTaxID(ctx context.Context, cpf string) (*domain.Customer, error) {
	query := `SELECT id, name, phone, cpf, addressId, imageId, createdAt, updatedAt FROM Customers WHERE cpf = ?`

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, query, cpf).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.CPF, &customer.AddressID,
		&customer.ImageID, &customer.CreatedAt, &customer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with cpf %s not found", cpf))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by cpf: %w", err)
	}

	return &customer, nil
}

func (r *MySQLCustomerRepository) List(ctx context.Context, search string, page, limit int) ([]domain.Customer, bool, error) {
	offset := (page - 1) * limit

	query := `
		SELECT id, name, phone, cpf, addressId, imageId, createdAt, updatedAt
		FROM Customers
		ORDER BY createdAt ASC
		LIMIT ? OFFSET ?
	`
	args := []interface{}{limit + 1, offset}

	if search != "" {
		query = `
			SELECT id, name, phone, cpf, addressId, imageId, createdAt, updatedAt
			FROM Customers
			WHERE name LIKE ?
			ORDER BY createdAt ASC
			LIMIT ? OFFSET ?
		`
		args = []interface{}{"%" + search + "%", limit + 1, offset}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.ID, &customer.Name, &customer.Phone, &customer.CPF, &customer.AddressID,
			&customer.ImageID, &customer.CreatedAt, &customer.UpdatedAt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating customer rows: %w", err)
	}

	hasNext := len(customers) > limit
	if hasNext {
		customers = customers[:limit]
	}

	return customers, hasNext, nil
}

// Create inserts the billing address and the customer in one transaction.
// A duplicate cpf surfaces as a Conflict from the UNIQUE constraint, not
// from the application pre-check.
func (r *MySQLCustomerRepository) Create(ctx context.Context, customer domain.Customer, addr domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning customer creation: %w", err)
	}
	defer tx.Rollback()

	addressQuery := `
		INSERT INTO Addresses (id, zipcode, street, streetNumber, neighborhood, complement, city, province)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, addressQuery,
		addr.ID, addr.Zipcode, addr.Street, addr.Number, addr.Neighborhood,
		addr.Complement, addr.City, addr.Province,
	)
	if err != nil {
		return fmt.Errorf("inserting billing address: %w", err)
	}

	customerQuery := `
		INSERT INTO Customers (id, name, phone, cpf, addressId, imageId)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, customerQuery,
		customer.ID, customer.Name, customer.Phone, customer.CPF, addr.ID, customer.ImageID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.NewConflictError("a customer with this cpf already exists")
		}
		return fmt.Errorf("inserting customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer creation: %w", err)
	}

	return nil
}

func (r *MySQLCustomerRepository) Update(ctx context.Context, customer domain.Customer, addr domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning customer update: %w", err)
	}
	defer tx.Rollback()

	customerQuery := `
		UPDATE Customers
		SET name = ?, phone = ?, cpf = ?, updatedAt = NOW()
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, customerQuery, customer.Name, customer.Phone, customer.CPF, customer.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.NewConflictError("a customer with this cpf already exists")
		}
		return fmt.Errorf("updating customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", customer.ID))
	}

	addressQuery := `
		UPDATE Addresses
		SET zipcode = ?, street = ?, streetNumber = ?, neighborhood = ?,
		    complement = ?, city = ?, province = ?, updatedAt = NOW()
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, addressQuery,
		addr.Zipcode, addr.Street, addr.Number, addr.Neighborhood,
		addr.Complement, addr.City, addr.Province, customer.AddressID,
	)
	if err != nil {
		return fmt.Errorf("updating billing address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer update: %w", err)
	}

	return nil
}

func (r *MySQLCustomerRepository) InsertImage(ctx context.Context, image domain.Image) error {
	query := `INSERT INTO Images (id, filename) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, image.ID, image.Filename)
	if err != nil {
		return fmt.Errorf("inserting avatar image: %w", err)
	}

	return nil
}

func (r *MySQLCustomerRepository) SetAvatar(ctx context.Context, customerID, imageID string) error {
	query := `UPDATE Customers SET imageId = ?, updatedAt = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, imageID, customerID)
	if err != nil {
		return fmt.Errorf("setting customer avatar: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", customerID))
	}

	return nil
}

func (r *MySQLCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return count, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
