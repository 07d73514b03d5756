package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"atelier/internal/config"
	"atelier/internal/domain"
	apperrors "atelier/internal/errors"
)

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	repo   Repository
	cfg    config.AuthConfig
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, cfg config.AuthConfig, logger *zap.Logger) Service {
	return &authService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*SignInResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("invalid credentials",
			apperrors.ValidationDetail{Field: "email", Message: "email and password are required"})
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// A wrong email reads the same as a wrong password to the caller.
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewValidationError("invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.NewValidationError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewValidationError("invalid email or password")
	}

	expiresAt := s.now().Add(s.cfg.TokenTTL)
	claims := sessionClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return nil, apperrors.NewInternalError("signing session token", err)
	}

	s.logger.Info("user signed in", zap.String("userId", user.ID))

	return &SignInResponse{
		Token: token,
		User: UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("invalid password",
			apperrors.ValidationDetail{Field: "newPassword", Message: "password must have at least 6 characters"})
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.NewValidationError("invalid password",
			apperrors.ValidationDetail{Field: "currentPassword", Message: "current password does not match"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("hashing password", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// SessionFromToken validates the bearer token and rebuilds the session
// carried by it. Expired or malformed tokens are rejected.
func (s *authService) SessionFromToken(token string) (*domain.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewValidationError("invalid session token")
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewValidationError("invalid session token")
	}

	return &domain.Session{
		UserID:    claims.Subject,
		Name:      claims.Name,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
