package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Sales(ctx context.Context, from *time.Time, to *time.Time) ([]SalesPoint, error)
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := c.repo.Dashboard(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, dashboard)
}

func (c *Controller) HandleSales(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = &parsed
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = &parsed
		}
	}

	points, err := c.repo.Sales(r.Context(), from, to)
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, points)
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	c.logger.Error("stats query failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
