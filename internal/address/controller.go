package address

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "atelier/internal/errors"
	"atelier/internal/web"
)

type Controller struct {
	coordinator Coordinator
	logger      *zap.Logger
}

func NewController(coordinator Coordinator, logger *zap.Logger) *Controller {
	return &Controller{coordinator: coordinator, logger: logger}
}

func (c *Controller) HandleListByCustomer(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	addresses, err := c.coordinator.ListByCustomer(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, addresses)
}

func (c *Controller) HandleGetDefault(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	addr, err := c.coordinator.DefaultForCustomer(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	if addr == nil {
		web.RespondJSON(w, logger, http.StatusOK, nil)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, addr)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req CreateDeliveredAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	addr, err := c.coordinator.Create(r.Context(), chi.URLParam(r, "customerId"), req)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusCreated, addr)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req UpdateDeliveredAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.coordinator.Update(r.Context(), chi.URLParam(r, "addressId"), req); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleSetDefault(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	customerID := chi.URLParam(r, "customerId")
	addressID := chi.URLParam(r, "addressId")

	if err := c.coordinator.SetDefaultAddress(r.Context(), customerID, addressID); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
