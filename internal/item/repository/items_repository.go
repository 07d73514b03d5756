package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/errors"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

func (r *MySQLItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `
		SELECT i.id, i.name, i.amountInCents, i.isActive, i.imageId, i.createdAt, i.updatedAt,
		       img.id, img.filename
		FROM Items i
		LEFT JOIN Images img ON img.id = i.imageId
		WHERE i.id = ?
	`

	var item domain.Item
	var imgID, imgFilename sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.AmountInCents, &item.IsActive, &item.ImageID,
		&item.CreatedAt, &item.UpdatedAt,
		&imgID, &imgFilename,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by id: %w", err)
	}

	if imgID.Valid {
		item.Image = &domain.Image{ID: imgID.String, Filename: imgFilename.String}
	}

	return &item, nil
}

func (r *MySQLItemRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := ""
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, amountInCents, isActive, imageId, createdAt, updatedAt
		FROM Items
		WHERE id IN (%s)`,
		placeholders,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID, &item.Name, &item.AmountInCents, &item.IsActive, &item.ImageID,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLItemRepository) List(ctx context.Context, search string, activeOnly bool, page, limit int) ([]domain.Item, bool, error) {
	offset := (page - 1) * limit

	conditions := "1 = 1"
	args := []interface{}{}

	if activeOnly {
		conditions += " AND isActive = 1"
	}
	if search != "" {
		conditions += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	args = append(args, limit+1, offset)

	query := fmt.Sprintf(`
		SELECT id, name, amountInCents, isActive, imageId, createdAt, updatedAt
		FROM Items
		WHERE %s
		ORDER BY createdAt ASC
		LIMIT ? OFFSET ?`,
		conditions,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID, &item.Name, &item.AmountInCents, &item.IsActive, &item.ImageID,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating item rows: %w", err)
	}

	hasNext := len(items) > limit
	if hasNext {
		items = items[:limit]
	}

	return items, hasNext, nil
}

func (r *MySQLItemRepository) Create(ctx context.Context, item domain.Item) error {
	query := `INSERT INTO Items (id, name, amountInCents, isActive, imageId) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.AmountInCents, item.IsActive, item.ImageID)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

func (r *MySQLItemRepository) Update(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE Items
		SET name = ?, amountInCents = ?, isActive = ?, imageId = ?, updatedAt = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, item.Name, item.AmountInCents, item.IsActive, item.ImageID, item.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("item with id %s not found", item.ID))
	}

	return nil
}

func (r *MySQLItemRepository) InsertImage(ctx context.Context, image domain.Image) error {
	query := `INSERT INTO Images (id, filename) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, image.ID, image.Filename)
	if err != nil {
		return fmt.Errorf("inserting item image: %w", err)
	}

	return nil
}

func (r *MySQLItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}
