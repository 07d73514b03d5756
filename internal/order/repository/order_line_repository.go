package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/domain"
)

type MySQLOrderLineRepository struct {
	db *sql.DB
}

func NewMySQLOrderLineRepository(db *sql.DB) *MySQLOrderLineRepository {
	return &MySQLOrderLineRepository{db: db}
}

// Insert persists an item snapshot. Name and amount come from the draft,
// not from the live Items row.
func (r *MySQLOrderLineRepository) Insert(ctx context.Context, tx *sql.Tx, line domain.OrderLine) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO OrderItems (id, orderId, itemId, name, amountInCents) VALUES (?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query, id, line.OrderID, line.ItemID, line.Name, line.AmountInCents)
	if err != nil {
		return "", fmt.Errorf("inserting order line: %w", err)
	}

	return id, nil
}
