package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/domain"
)

type MySQLOrderImageRepository struct {
	db *sql.DB
}

func NewMySQLOrderImageRepository(db *sql.DB) *MySQLOrderImageRepository {
	return &MySQLOrderImageRepository{db: db}
}

func (r *MySQLOrderImageRepository) InsertImage(ctx context.Context, tx *sql.Tx, image domain.Image) error {
	query := `INSERT INTO Images (id, filename) VALUES (?, ?)`

	_, err := tx.ExecContext(ctx, query, image.ID, image.Filename)
	if err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}

	return nil
}

func (r *MySQLOrderImageRepository) LinkToOrder(ctx context.Context, tx *sql.Tx, orderID, imageID string) error {
	query := `INSERT INTO OrderImages (orderId, imageId) VALUES (?, ?)`

	_, err := tx.ExecContext(ctx, query, orderID, imageID)
	if err != nil {
		return fmt.Errorf("linking image to order: %w", err)
	}

	return nil
}
