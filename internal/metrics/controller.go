package metrics

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/web"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleSummary(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	summary, err := c.service.Summarize(r.Context())
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, summary)
}
