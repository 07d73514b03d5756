package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"atelier/internal/domain"
	"atelier/internal/dto"
	"atelier/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) error {
	query := `
		INSERT INTO Orders (id, customerId, deliveryAddressId, takenAt, collectedAt,
		                    totalAmountInCents, status, isCollected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		order.ID, order.CustomerID, order.DeliveryAddressID, order.TakenAt, order.CollectedAt,
		order.TotalAmountInCents, order.Status, order.IsCollected,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT o.id, o.customerId, o.deliveryAddressId, o.takenAt, o.collectedAt,
		       o.totalAmountInCents, o.status, o.isCollected, o.createdAt, o.updatedAt,
		       c.name,
		       da.zipcode, da.street, da.streetNumber, da.neighborhood, da.complement,
		       da.city, da.province
		FROM Orders o
		JOIN Customers c ON c.id = o.customerId
		JOIN DeliveredAddresses da ON da.id = o.deliveryAddressId
		WHERE o.id = ?
	`

	var order domain.Order
	var customer domain.Customer
	var addr domain.DeliveredAddress
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerID, &order.DeliveryAddressID, &order.TakenAt, &order.CollectedAt,
		&order.TotalAmountInCents, &order.Status, &order.IsCollected, &order.CreatedAt, &order.UpdatedAt,
		&customer.Name,
		&addr.Zipcode, &addr.Street, &addr.Number, &addr.Neighborhood, &addr.Complement,
		&addr.City, &addr.Province,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	customer.ID = order.CustomerID
	order.Customer = &customer

	addr.ID = order.DeliveryAddressID
	addr.CustomerID = order.CustomerID
	order.DeliveryAddress = &addr

	if err := r.loadLines(ctx, &order); err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *MySQLOrderRepository) loadLines(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, orderId, itemId, name, amountInCents
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("querying order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ItemID, &line.Name, &line.AmountInCents); err != nil {
			return fmt.Errorf("scanning order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}

	return rows.Err()
}

func (r *MySQLOrderRepository) loadImages(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT i.id, i.filename
		FROM OrderImages oi
		JOIN Images i ON i.id = oi.imageId
		WHERE oi.orderId = ?
		ORDER BY i.filename
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("querying order images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.Filename); err != nil {
			return fmt.Errorf("scanning order image: %w", err)
		}
		order.Images = append(order.Images, img)
	}

	return rows.Err()
}

// UpdateStatusFrom transitions status only when the current value matches
// from. The guard lives in the statement itself so a concurrent edit can
// never turn a terminal order back into a live one.
func (r *MySQLOrderRepository) UpdateStatusFrom(ctx context.Context, id, from, to string) (int64, error) {
	query := `UPDATE Orders SET status = ?, updatedAt = NOW() WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return 0, fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *MySQLOrderRepository) UpdateCollected(ctx context.Context, id string) error {
	query := `UPDATE Orders SET isCollected = 1, updatedAt = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("updating order collected flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

// List pages through orders oldest-first. It fetches one extra row to
// decide whether a next page exists.
func (r *MySQLOrderRepository) List(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, bool, error) {
	conditions := []string{"1 = 1"}
	args := []interface{}{}

	if filter.Status != "" && filter.Status != "ALL" {
		conditions = append(conditions, "o.status = ?")
		args = append(args, filter.Status)
	}
	if filter.IsCollected != nil {
		conditions = append(conditions, "o.isCollected = ?")
		args = append(args, *filter.IsCollected)
	}
	if filter.Search != "" {
		conditions = append(conditions, "c.name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit+1, offset)

	query := fmt.Sprintf(`
		SELECT o.id, o.customerId, o.deliveryAddressId, o.takenAt, o.collectedAt,
		       o.totalAmountInCents, o.status, o.isCollected, o.createdAt, o.updatedAt,
		       c.name
		FROM Orders o
		JOIN Customers c ON c.id = o.customerId
		WHERE %s
		ORDER BY o.createdAt ASC
		LIMIT ? OFFSET ?`,
		strings.Join(conditions, " AND "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var customer domain.Customer
		err := rows.Scan(
			&order.ID, &order.CustomerID, &order.DeliveryAddressID, &order.TakenAt, &order.CollectedAt,
			&order.TotalAmountInCents, &order.Status, &order.IsCollected, &order.CreatedAt, &order.UpdatedAt,
			&customer.Name,
		)
		if err != nil {
			return nil, false, fmt.Errorf("scanning order row: %w", err)
		}
		customer.ID = order.CustomerID
		order.Customer = &customer
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating order rows: %w", err)
	}

	hasNext := len(orders) > filter.Limit
	if hasNext {
		orders = orders[:filter.Limit]
	}

	return orders, hasNext, nil
}

func (r *MySQLOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

func (r *MySQLOrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Orders WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting orders by status: %w", err)
	}
	return count, nil
}

// ListUncollected returns id and planned collection date for every order
// still waiting to be collected, oldest first.
func (r *MySQLOrderRepository) ListUncollected(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, collectedAt
		FROM Orders
		WHERE isCollected = 0
		ORDER BY createdAt ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying uncollected orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CollectedAt); err != nil {
			return nil, fmt.Errorf("scanning uncollected order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating uncollected orders: %w", err)
	}

	return orders, nil
}
