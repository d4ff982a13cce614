package artisan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/artisan-registry-backend/config"
	"github.com/craftlink/artisan-registry-backend/middleware"
)

type Handler struct {
	Service *Service
	cfg     *config.Config
}

func NewHandler(s *Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, cfg: cfg}
}

// CreateArtisan - POST /artisans
// Multi-step create streamed as SSE progress frames. The body is either
// plain JSON or a multipart form with an "artisan" JSON field plus
// product_images / shop_images files. Validation failures are plain 400s;
// once streaming starts, errors travel in the terminal frame.
func (h *Handler) CreateArtisan(c *gin.Context) {
	req, images, ok := h.parsePayload(c)
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	ip := c.ClientIP()

	stream := NewProgressStream(c)
	id, err := h.Service.Create(c.Request.Context(), userID, req, images, ip, stream.Step)
	if err != nil {
		stream.Error(h.errorMessage(err, "failed to create artisan"))
		return
	}
	stream.Complete(gin.H{"artisanId": id})
}

// UpdateArtisan - PUT /artisans/:id
// Whole-record overwrite; child lists fully replaced inside one transaction.
func (h *Handler) UpdateArtisan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artisan ID"})
		return
	}

	req, images, ok := h.parsePayload(c)
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	ip := c.ClientIP()

	stream := NewProgressStream(c)
	if err := h.Service.Update(c.Request.Context(), userID, id, req, images, ip, stream.Step); err != nil {
		if errors.Is(err, ErrNotFound) {
			stream.Error("artisan not found")
			return
		}
		stream.Error(h.errorMessage(err, "failed to update artisan"))
		return
	}
	stream.Complete(gin.H{"artisanId": id})
}

// GetArtisan - GET /artisans/:id?includeInactive=true
func (h *Handler) GetArtisan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artisan ID"})
		return
	}

	includeInactive := c.Query("includeInactive") == "true"

	a, err := h.Service.GetByID(c.Request.Context(), id, includeInactive)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "artisan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.errorMessage(err, "failed to fetch artisan")})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ListArtisans - GET /artisans?limit=&offset=&search=
func (h *Handler) ListArtisans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	search := c.Query("search")

	artisans, total, err := h.Service.List(c.Request.Context(), limit, offset, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.errorMessage(err, "failed to list artisans")})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   artisans,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// DeleteArtisan - DELETE /artisans/:id (soft delete)
func (h *Handler) DeleteArtisan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artisan ID"})
		return
	}

	userID := middleware.UserIDFromContext(c)
	if err := h.Service.SoftDelete(c.Request.Context(), userID, id, c.ClientIP()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "artisan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.errorMessage(err, "failed to delete artisan")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "artisan deleted successfully"})
}

// parsePayload binds the request body and, for multipart requests, stores
// the uploaded images. Writes its own 400 response on failure.
func (h *Handler) parsePayload(c *gin.Context) (*ArtisanPayload, ImagePaths, bool) {
	var req ArtisanPayload
	var images ImagePaths

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
			return nil, images, false
		}

		raw := c.PostForm("artisan")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing artisan form field"})
			return nil, images, false
		}
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artisan payload: " + err.Error()})
			return nil, images, false
		}
		if err := validatePayload(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, images, false
		}

		product, err := saveUploads(c, h.cfg.UploadDir, productImageDir, form.File["product_images"])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store product images"})
			return nil, images, false
		}
		shop, err := saveUploads(c, h.cfg.UploadDir, shopImageDir, form.File["shop_images"])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store shop images"})
			return nil, images, false
		}
		images.Product = product
		images.Shop = shop
		return &req, images, true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return nil, images, false
	}
	return &req, images, true
}

// validatePayload mirrors the binding rules for the multipart path, where
// the JSON arrives inside a form field and gin's binding tags don't run.
func validatePayload(req *ArtisanPayload) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.CNIC == "" {
		return errors.New("cnic is required")
	}
	switch req.Gender {
	case "Male", "Female", "Transgender":
	default:
		return errors.New("gender must be one of Male, Female, Transgender")
	}
	return nil
}

// errorMessage hides driver detail in production.
func (h *Handler) errorMessage(err error, fallback string) string {
	if h.cfg != nil && h.cfg.IsProduction() {
		return fallback
	}
	return fallback + ": " + err.Error()
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
