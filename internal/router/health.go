package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hyeonlab/lawtrace/internal/storage"
)

type HealthRouter struct {
	e     *echo.Echo
	store storage.Store
}

func NewHealthRouter(e *echo.Echo, store storage.Store) *HealthRouter {
	return &HealthRouter{e: e, store: store}
}

func (r *HealthRouter) Bind() {
	r.e.GET("/healthz", r.healthHandler)
}

func (r *HealthRouter) healthHandler(c echo.Context) error {
	if err := r.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
