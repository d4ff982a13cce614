package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo     *Repository
	Exporter Exporter
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Exporter: NewExporter()}
}

// ExportArtisanDirectory - GET /reports/artisans?format=csv|excel|pdf
// Accepts the chart filter keys plus from/to (YYYY-MM-DD) on created_at.
func (h *Handler) ExportArtisanDirectory(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of csv, excel, pdf"})
		return
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.Repo.ArtisanDirectory(c.Request.Context(), c.Request.URL.Query(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build artisan directory"})
		return
	}

	data, filename, contentType, err := h.Exporter.Export(format, rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export artisan directory"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// parseDateRange parses optional from/to bounds. "to" is pushed to the end
// of its day so a single-day range works the way callers expect.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, errInvalidDate("from")
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, errInvalidDate("to")
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}
	return from, to, nil
}

type dateRangeError string

func (e dateRangeError) Error() string {
	return string(e)
}

func errInvalidDate(field string) error {
	return dateRangeError(field + " must be formatted as YYYY-MM-DD")
}
