// Package health reports whether the service can reach its database, over
// HTTP at /health and through the standard gRPC health service.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/response"
)

const checkTimeout = 2 * time.Second

// Pinger is implemented by *store.Store
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Checker runs the database health check
type Checker struct {
	db      Pinger
	service string
}

func NewChecker(db Pinger, service string) *Checker {
	return &Checker{db: db, service: service}
}

// Check pings the database with a short deadline
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return c.db.Ping(ctx)
}

// RegisterRoutes registers GET /health
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.ServeHTTP).Methods(http.MethodGet)
}

// ServeHTTP godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,service=string}
// @Failure 503 {object} response.ErrorBody
// @Router /health [get]
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := c.Check(r.Context()); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Health check failed")
		response.Detail(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	response.JSON(w, http.StatusOK, healthStatus{Status: "ok", Service: c.service})
}
