package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/dto"
	apperrors "atelier/internal/errors"
	"atelier/internal/web"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderSubmissionResult, error)
}

type OrderQueryUseCase interface {
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.ListOrdersResponse, error)
}

type LifecycleService interface {
	Pay(ctx context.Context, orderID string) error
	Cancel(ctx context.Context, orderID string) error
	MarkCollected(ctx context.Context, orderID string) error
}

type CollectionReportService interface {
	Report(ctx context.Context) (*dto.CollectionReport, error)
}

type OrderController struct {
	create    CreateOrderUseCase
	queries   OrderQueryUseCase
	lifecycle LifecycleService
	report    CollectionReportService
	logger    *zap.Logger
}

func NewOrderController(
	create CreateOrderUseCase,
	queries OrderQueryUseCase,
	lifecycle LifecycleService,
	report CollectionReportService,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		create:    create,
		queries:   queries,
		lifecycle: lifecycle,
		report:    report,
		logger:    logger,
	}
}

func (c *OrderController) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		web.RespondValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.create.CreateOrder(r.Context(), req)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusCreated, result)
}

func (c *OrderController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	order, err := c.queries.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, order)
}

func (c *OrderController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	filter := dto.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	if raw := r.URL.Query().Get("isCollected"); raw != "" {
		collected, err := strconv.ParseBool(raw)
		if err != nil {
			web.RespondValidationError(w, logger, "invalid isCollected", apperrors.ValidationDetail{
				Field:   "isCollected",
				Message: "isCollected must be true or false",
			})
			return
		}
		filter.IsCollected = &collected
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			web.RespondValidationError(w, logger, "invalid page", apperrors.ValidationDetail{
				Field:   "page",
				Message: "page must be a positive integer",
			})
			return
		}
		filter.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			web.RespondValidationError(w, logger, "invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		filter.Limit = limit
	}

	resp, err := c.queries.ListOrders(r.Context(), filter)
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, resp)
}

func (c *OrderController) HandlePayOrder(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.lifecycle.Pay)
}

func (c *OrderController) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.lifecycle.Cancel)
}

func (c *OrderController) HandleCollectOrder(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.lifecycle.MarkCollected)
}

func (c *OrderController) handleTransition(w http.ResponseWriter, r *http.Request, transition func(context.Context, string) error) {
	logger := c.requestLogger()

	orderID := chi.URLParam(r, "orderId")
	if err := transition(r.Context(), orderID); err != nil {
		web.RespondError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) HandleCollectionReport(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	report, err := c.report.Report(r.Context())
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, report)
}

func (c *OrderController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
