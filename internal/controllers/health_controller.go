package controllers

import (
	"context"
	"net/http"

	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// HealthController checks DB connectivity. A nil pinger means the
// in-memory data source is active and there is nothing to reach.
type HealthController struct {
	pinger services.Pinger
}

func NewHealthController(pinger services.Pinger) *HealthController {
	return &HealthController{pinger: pinger}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if c.pinger != nil {
		if err := c.pinger.Ping(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("DB unreachable")
			utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
