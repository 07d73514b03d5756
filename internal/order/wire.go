package order

import (
	"database/sql"

	"go.uber.org/zap"

	addressrepo "atelier/internal/address/repository"
	"atelier/internal/config"
	customerrepo "atelier/internal/customer/repository"
	"atelier/internal/infrastructure/broker"
	"atelier/internal/infrastructure/storage"
	itemrepo "atelier/internal/item/repository"
	"atelier/internal/order/controller"
	orderrepo "atelier/internal/order/repository"
	"atelier/internal/order/service"
	"atelier/internal/order/usecase"
)

func NewModule(
	db *sql.DB,
	cfg *config.Config,
	store *storage.Client,
	publisher *broker.Publisher,
	logger *zap.Logger,
) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	lineRepo := orderrepo.NewMySQLOrderLineRepository(db)
	imageRepo := orderrepo.NewMySQLOrderImageRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)
	deliveredRepo := addressrepo.NewMySQLDeliveredAddressRepository(db)
	itemRepo := itemrepo.NewMySQLItemRepository(db)

	// The broker is optional; events are skipped when it is absent.
	var svcNotifier service.Notifier
	var ucNotifier usecase.Notifier
	if publisher != nil {
		svcNotifier = publisher
		ucNotifier = publisher
	}

	submissionSvc := service.NewSubmissionService(
		db,
		orderRepo,
		lineRepo,
		imageRepo,
		store,
		cfg.Storage.OrdersBucket,
		logger,
		cfg.Order.CreateTxTimeout,
		cfg.Storage.UploadTimeout,
	)

	createUC := usecase.NewCreateOrderUseCase(
		customerRepo,
		deliveredRepo,
		itemRepo,
		submissionSvc,
		ucNotifier,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	queryUC := usecase.NewOrderQueryUseCase(
		orderRepo,
		store,
		cfg.Storage.OrdersBucket,
		cfg.Storage.SignedURLTTL,
		logger,
	)

	lifecycleSvc := service.NewLifecycleService(orderRepo, orderRepo, svcNotifier, logger)
	reportSvc := service.NewCollectionReportService(orderRepo, svcNotifier, logger)

	return controller.NewOrderController(createUC, queryUC, lifecycleSvc, reportSvc, logger)
}
