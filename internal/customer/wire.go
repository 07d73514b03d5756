package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/customer/repository"
	"atelier/internal/infrastructure/storage"
)

func NewModule(db *sql.DB, cfg config.StorageConfig, store *storage.Client, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCustomerRepository(db)
	service := NewService(repo, store, cfg, logger)
	return NewController(service, logger)
}
