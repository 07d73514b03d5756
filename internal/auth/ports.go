package auth

import (
	"context"

	"atelier/internal/domain"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Service interface {
	Authenticate(ctx context.Context, email, password string) (*SignInResponse, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	SessionFromToken(token string) (*domain.Session, error)
}
