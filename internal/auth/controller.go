package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "atelier/internal/errors"
	"atelier/internal/web"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := c.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusCreated, resp)
}

func (c *Controller) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	session, ok := SessionFromContext(r.Context())
	if !ok {
		web.RespondJSON(w, logger, http.StatusUnauthorized, map[string]string{
			"code":    "UNAUTHORIZED",
			"message": "missing session",
		})
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.ChangePassword(r.Context(), session.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
