package handlers

import (
	"net/http"
	"strconv"

	"asdcare/middleware"
	"asdcare/services/analytics"

	"github.com/gin-gonic/gin"
)

// analyticsScope converts the scope set by middleware.ResourceScope. A
// request that reached here without one is refused.
func analyticsScope(c *gin.Context) (analytics.Scope, bool) {
	s, ok := middleware.ScopeOf(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return analytics.Scope{}, false
	}
	return analytics.Scope{Filter: s.Filter(), Anonymized: s.Anonymized}, true
}

// Demographics handles GET /api/analytics/demographics.
func (h *HandlerBundle) Demographics(c *gin.Context) {
	scope, ok := analyticsScope(c)
	if !ok {
		return
	}
	d, err := h.Analytics.Demographics(c.Request.Context(), scope)
	if err != nil {
		h.respondError(c, "demographics", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ScreeningResults handles GET /api/analytics/screening-results.
func (h *HandlerBundle) ScreeningResults(c *gin.Context) {
	scope, ok := analyticsScope(c)
	if !ok {
		return
	}
	sum, err := h.Analytics.Screening(c.Request.Context(), scope)
	if err != nil {
		h.respondError(c, "screening results", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Trends handles GET /api/analytics/trends?months=N.
func (h *HandlerBundle) Trends(c *gin.Context) {
	scope, ok := analyticsScope(c)
	if !ok {
		return
	}
	months := 0
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = n
	}
	tr, err := h.Analytics.Trends(c.Request.Context(), scope, months)
	if err != nil {
		h.respondError(c, "trends", err)
		return
	}
	c.JSON(http.StatusOK, tr)
}

// ScopedChildren lists the children the caller's role may see: parents
// their own, therapists their clients, researchers anonymized records,
// admins everything.
func (h *HandlerBundle) ScopedChildren(c *gin.Context) {
	scope, ok := analyticsScope(c)
	if !ok {
		return
	}
	listing, err := h.Analytics.Children(c.Request.Context(), scope)
	if err != nil {
		h.respondError(c, "list scoped children", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// AdminStats handles GET /api/admin/stats.
func (h *HandlerBundle) AdminStats(c *gin.Context) {
	stats, err := h.Analytics.AdminStats(c.Request.Context())
	if err != nil {
		h.respondError(c, "admin stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
