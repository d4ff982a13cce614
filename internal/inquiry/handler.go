package inquiry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// CreateInquiry - POST /inquiries (public)
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req InquiryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	row := InquiryRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Repo.Create(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "inquiry submitted successfully", "id": row.ID})
}

// ListInquiries - GET /inquiries?limit=&offset=
func (h *Handler) ListInquiries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.Repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetInquiry - GET /inquiries/:id
func (h *Handler) GetInquiry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inquiry ID"})
		return
	}

	row, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inquiry"})
		return
	}

	c.JSON(http.StatusOK, row)
}

// DeleteInquiry - DELETE /inquiries/:id (hard delete)
func (h *Handler) DeleteInquiry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inquiry ID"})
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inquiry deleted successfully"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
