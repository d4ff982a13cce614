package charts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// GetChart - GET /charts/:name
// Filters arrive as query-string parameters matching the whitelist.
func (h *Handler) GetChart(c *gin.Context) {
	name := c.Param("name")

	data, err := h.Service.Chart(c.Request.Context(), name, c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, ErrUnknownChart) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart: " + name})
			return
		}
		if errors.Is(err, ErrUnknownField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart: " + name})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetStacked - GET /charts/stacked/:groupBy  (groupBy: skill|craft|category)
func (h *Handler) GetStacked(c *gin.Context) {
	groupBy := c.Param("groupBy")

	data, err := h.Service.Stacked(c.Request.Context(), groupBy, c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, ErrUnknownGroupBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build stacked chart"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetAll - GET /charts
// Every report in one payload; a single failing sub-query fails the request.
func (h *Handler) GetAll(c *gin.Context) {
	data, err := h.Service.All(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build charts"})
		return
	}

	c.JSON(http.StatusOK, data)
}
