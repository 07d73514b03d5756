package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"atelier/internal/auth/repository"
	"atelier/internal/config"
)

type Module struct {
	Controller *Controller
	Service    Service
}

func NewModule(db *sql.DB, cfg config.AuthConfig, logger *zap.Logger) *Module {
	repo := repository.NewMySQLUserRepository(db)
	service := NewService(repo, cfg, logger)
	return &Module{
		Controller: NewController(service, logger),
		Service:    service,
	}
}
