package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	routes int
}

func NewHealthHandler(routes int) *HealthHandler {
	return &HealthHandler{routes: routes}
}

func (h *HealthHandler) Register(router gin.IRouter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "routes": h.routes})
	})
}
