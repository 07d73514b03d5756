package metrics

import (
	"database/sql"

	"go.uber.org/zap"

	customerrepo "atelier/internal/customer/repository"
	itemrepo "atelier/internal/item/repository"
	orderrepo "atelier/internal/order/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	service := NewService(
		customerrepo.NewMySQLCustomerRepository(db),
		itemrepo.NewMySQLItemRepository(db),
		orderrepo.NewMySQLOrderRepository(db),
		logger,
	)
	return NewController(service, logger)
}
