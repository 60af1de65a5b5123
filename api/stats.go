package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/gin-gonic/gin"
)

const maxPopularLimit = 100

type PopularRoutes interface {
	TopRoutes(ctx context.Context, limit int) ([]domain.PairStat, error)
}

type StatsHandler struct {
	stats        PopularRoutes
	defaultLimit int
}

// NewStatsHandler accepts a nil stats store; the endpoint then reports 503.
func NewStatsHandler(stats PopularRoutes, defaultLimit int) *StatsHandler {
	return &StatsHandler{stats: stats, defaultLimit: defaultLimit}
}

func (h *StatsHandler) Register(router gin.IRouter) {
	router.GET("/stats/popular", h.popular)
}

func (h *StatsHandler) popular(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route statistics are disabled"})
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxPopularLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	top, err := h.stats.TopRoutes(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": top})
}
