package customer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
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

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	customer, err := c.service.Get(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, customer)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			web.RespondValidationError(w, logger, "invalid page", apperrors.ValidationDetail{
				Field:   "page",
				Message: "page must be a positive integer",
			})
			return
		}
		page = parsed
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			web.RespondValidationError(w, logger, "invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	resp, err := c.service.List(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	customer, err := c.service.Create(r.Context(), req)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusCreated, customer)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.Update(r.Context(), chi.URLParam(r, "customerId"), req); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.UpdateAvatar(r.Context(), chi.URLParam(r, "customerId"), req); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
