// Package router is the thin dispatch layer over the verification service.
// Handlers parse parameters, call one service operation and render its
// structured result; no verification logic lives here.
package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hyeonlab/lawtrace/internal/verify"
)

const dateLayout = "2006-01-02"

type AuditRouter struct {
	e   *echo.Echo
	svc *verify.Service
}

func NewAuditRouter(e *echo.Echo, svc *verify.Service) *AuditRouter {
	return &AuditRouter{e: e, svc: svc}
}

func (r *AuditRouter) Bind() {
	v1 := r.e.Group("/api/v1")
	v1.GET("/audit", r.auditHandler)
	v1.GET("/diffs/daily", r.dailyDiffHandler)
	v1.GET("/timeline", r.timelineHandler)
	v1.GET("/hierarchy", r.hierarchyHandler)
	v1.GET("/enforcement", r.enforcementHandler)
	v1.GET("/precedent", r.precedentHandler)
}

func (r *AuditRouter) auditHandler(c echo.Context) error {
	asOf, ok := parseDateParam(c.QueryParam("date"))
	if !ok {
		return c.JSON(http.StatusOK, verify.AuditResult{
			Status:   verify.StatusInvalidInput,
			Warnings: []string{"date must be YYYY-MM-DD"},
		})
	}

	result, err := r.svc.Audit(c.Request().Context(), verify.AuditRequest{
		StatuteName: c.QueryParam("name"),
		ArticleNo:   c.QueryParam("article"),
		AsOf:        asOf,
		ClaimedText: c.QueryParam("claimed_text"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *AuditRouter) dailyDiffHandler(c echo.Context) error {
	day, ok := parseDateParam(c.QueryParam("date"))
	if !ok {
		return c.JSON(http.StatusOK, verify.DailyDiffResult{Status: verify.StatusInvalidInput})
	}

	result, err := r.svc.DailyDiffs(c.Request().Context(), day, c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *AuditRouter) timelineHandler(c echo.Context) error {
	start, okStart := parseDateParam(c.QueryParam("start"))
	end, okEnd := parseDateParam(c.QueryParam("end"))
	if !okStart || !okEnd {
		return c.JSON(http.StatusOK, verify.TimelineResult{
			Status: verify.StatusInvalidInput,
			Note:   "start and end must be YYYY-MM-DD",
		})
	}

	result, err := r.svc.ForecastTimeline(c.Request().Context(), c.QueryParam("name"), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *AuditRouter) hierarchyHandler(c echo.Context) error {
	result, err := r.svc.CompareHierarchy(c.Request().Context(), c.QueryParam("a"), c.QueryParam("b"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *AuditRouter) enforcementHandler(c echo.Context) error {
	result, err := r.svc.CheckEnforcement(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *AuditRouter) precedentHandler(c echo.Context) error {
	result, err := r.svc.CheckPrecedent(c.Request().Context(), c.QueryParam("case_no"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// parseDateParam parses an optional YYYY-MM-DD parameter. ok is false only
// when a value is present and malformed.
func parseDateParam(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
