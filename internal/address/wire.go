package address

import (
	"database/sql"

	"go.uber.org/zap"

	"atelier/internal/address/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLDeliveredAddressRepository(db)
	coordinator := NewCoordinator(repo, logger)
	return NewController(coordinator, logger)
}
