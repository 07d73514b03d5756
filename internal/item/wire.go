package item

import (
	"database/sql"

	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/infrastructure/storage"
	"atelier/internal/item/repository"
)

func NewModule(db *sql.DB, cfg config.StorageConfig, store *storage.Client, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLItemRepository(db)
	service := NewService(repo, store, cfg, logger)
	return NewController(service, logger)
}
