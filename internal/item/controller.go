package item

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

func (c *Controller) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	dto, err := c.service.Get(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, dto)
}

func (c *Controller) HandleListItems(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	activeOnly := query.Get("activeOnly") == "true"

	resp, err := c.service.List(r.Context(), query.Get("search"), activeOnly, page, limit)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	dto, err := c.service.Create(r.Context(), req)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusCreated, dto)
}

func (c *Controller) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.Update(r.Context(), chi.URLParam(r, "itemId"), req); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
