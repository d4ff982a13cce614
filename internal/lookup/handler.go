package lookup

import (
	"context"
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

type namePayload struct {
	Name string `json:"name" binding:"required"`
}

type categoryPayload struct {
	Name    string `json:"name" binding:"required"`
	CraftID uint   `json:"craft_id" binding:"required"`
}

type techniquePayload struct {
	Name       string `json:"name" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

type geoLevelPayload struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required,oneof=division district tehsil"`
}

// ListCrafts - GET /lookups/crafts
func (h *Handler) ListCrafts(c *gin.Context) {
	rows, err := h.Repo.ListCrafts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch crafts"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateCraft - POST /lookups/crafts
func (h *Handler) CreateCraft(c *gin.Context) {
	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := Craft{Name: req.Name}
	if err := h.Repo.CreateCraft(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create craft"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// UpdateCraft - PUT /lookups/crafts/:id
func (h *Handler) UpdateCraft(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	affected, err := h.Repo.UpdateCraft(c.Request.Context(), &Craft{ID: id, Name: req.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update craft"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "craft not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "craft updated successfully"})
}

// DeleteCraft - DELETE /lookups/crafts/:id (hard delete)
func (h *Handler) DeleteCraft(c *gin.Context) {
	h.deleteByID(c, "craft", h.Repo.DeleteCraft)
}

// ListCategories - GET /lookups/categories?craft_id=
func (h *Handler) ListCategories(c *gin.Context) {
	craftID, _ := strconv.Atoi(c.Query("craft_id"))
	rows, err := h.Repo.ListCategories(c.Request.Context(), uint(craftID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateCategory - POST /lookups/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := Category{Name: req.Name, CraftID: req.CraftID}
	if err := h.Repo.CreateCategory(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// UpdateCategory - PUT /lookups/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	affected, err := h.Repo.UpdateCategory(c.Request.Context(), &Category{ID: id, Name: req.Name, CraftID: req.CraftID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated successfully"})
}

// DeleteCategory - DELETE /lookups/categories/:id (hard delete)
func (h *Handler) DeleteCategory(c *gin.Context) {
	h.deleteByID(c, "category", h.Repo.DeleteCategory)
}

// ListTechniques - GET /lookups/techniques?category_id=
func (h *Handler) ListTechniques(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category_id"))
	rows, err := h.Repo.ListTechniques(c.Request.Context(), uint(categoryID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch techniques"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateTechnique - POST /lookups/techniques
func (h *Handler) CreateTechnique(c *gin.Context) {
	var req techniquePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := Technique{Name: req.Name, CategoryID: req.CategoryID}
	if err := h.Repo.CreateTechnique(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create technique"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// UpdateTechnique - PUT /lookups/techniques/:id
func (h *Handler) UpdateTechnique(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req techniquePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	affected, err := h.Repo.UpdateTechnique(c.Request.Context(), &Technique{ID: id, Name: req.Name, CategoryID: req.CategoryID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update technique"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "technique not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "technique updated successfully"})
}

// DeleteTechnique - DELETE /lookups/techniques/:id (hard delete)
func (h *Handler) DeleteTechnique(c *gin.Context) {
	h.deleteByID(c, "technique", h.Repo.DeleteTechnique)
}

// ListEducationLevels - GET /lookups/education-levels
func (h *Handler) ListEducationLevels(c *gin.Context) {
	rows, err := h.Repo.ListEducationLevels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch education levels"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateEducationLevel - POST /lookups/education-levels
func (h *Handler) CreateEducationLevel(c *gin.Context) {
	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := EducationLevel{Name: req.Name}
	if err := h.Repo.CreateEducationLevel(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create education level"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// ListEmploymentTypes - GET /lookups/employment-types
func (h *Handler) ListEmploymentTypes(c *gin.Context) {
	rows, err := h.Repo.ListEmploymentTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch employment types"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateEmploymentType - POST /lookups/employment-types
func (h *Handler) CreateEmploymentType(c *gin.Context) {
	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := EmploymentType{Name: req.Name}
	if err := h.Repo.CreateEmploymentType(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create employment type"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// ListGeoLevels - GET /lookups/geo-levels?level=district&parent=012
func (h *Handler) ListGeoLevels(c *gin.Context) {
	rows, err := h.Repo.ListGeoLevels(c.Request.Context(), c.Query("level"), c.Query("parent"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geo levels"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateGeoLevel - POST /lookups/geo-levels
func (h *Handler) CreateGeoLevel(c *gin.Context) {
	var req geoLevelPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	row := GeoLevel{Code: req.Code, Name: req.Name, Level: req.Level}
	if err := h.Repo.CreateGeoLevel(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create geo level"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) deleteByID(c *gin.Context, entity string, del func(ctx context.Context, id uint) (int64, error)) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	affected, err := del(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete " + entity})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": entity + " deleted successfully"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
