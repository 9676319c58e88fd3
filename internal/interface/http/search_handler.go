package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	listingapp "github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/pkg/response"
)

// SearchHandler serves the JSON API endpoints: listing search and health.
type SearchHandler struct {
	Svc    *listingapp.ListingService
	Logger *logrus.Logger
}

func NewSearchHandler(svc *listingapp.ListingService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// Search runs a full-text query over the listing index.
// GET /api/listings/search?q=...&size=...
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	size := 10
	if s, ok := c.GetQuery("size"); ok {
		if n, err := strconv.Atoi(s); err == nil {
			size = n // the service clamps the range
		}
	}
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("listing search failed")
		resp := response.Error[any](c, http.StatusServiceUnavailable, "search unavailable", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
	c.JSON(resp.Status, resp)
}

// Health reports liveness.
// GET /api/health
func (h *SearchHandler) Health(c *gin.Context) {
	resp := response.Success[any](c, http.StatusOK, map[string]any{"ok": true}, "healthy", nil)
	c.JSON(resp.Status, resp)
}
