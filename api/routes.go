package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/Domenick1991/routesuggest/internal/service/routes"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

type suggestionsRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

type suggestionsResponse struct {
	Routes []domain.RouteSuggestion `json:"routes"`
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router gin.IRouter) {
	router.GET("/airports", h.defaultAirports)
	router.GET("/countries/:country/airports", h.countryAirports)
	router.POST("/suggestions", h.suggestions)
}

func (h *RouteHandler) defaultAirports(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DefaultAirports(c.Request.Context()))
}

func (h *RouteHandler) countryAirports(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListAirports(c.Request.Context(), c.Param("country")))
}

func (h *RouteHandler) suggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, err := h.service.SuggestRoutes(c.Request.Context(), req.Source, req.Destination)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestionsResponse{Routes: found})
}

// writeError maps domain errors to client responses. Anything unexpected is
// logged and reported as a generic server error.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoRouteFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
