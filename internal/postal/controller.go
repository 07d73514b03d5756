package postal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/web"
)

type Controller struct {
	client *Client
	logger *zap.Logger
}

func NewController(client *Client, logger *zap.Logger) *Controller {
	return &Controller{client: client, logger: logger}
}

func (c *Controller) HandleLookup(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	lookup, err := c.client.Lookup(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		web.RespondError(w, logger, err)
		return
	}

	web.RespondJSON(w, logger, http.StatusOK, lookup)
}
