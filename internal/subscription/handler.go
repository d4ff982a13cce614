package subscription

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/artisan-registry-backend/utils"
)

type Handler struct {
	Repo   *Repository
	Mailer *utils.Mailer
}

func NewHandler(repo *Repository, mailer *utils.Mailer) *Handler {
	return &Handler{Repo: repo, Mailer: mailer}
}

// Subscribe - POST /subscriptions (public)
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	row, err := h.Repo.Upsert(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Unsubscribe - DELETE /subscriptions (public)
// Flips the flag; the row stays.
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req SubscribePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Repo.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unsubscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed successfully"})
}

// ListSubscriptions - GET /subscriptions?active=true
func (h *Handler) ListSubscriptions(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	rows, err := h.Repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Broadcast - POST /subscriptions/broadcast
// Queues an async bulk send to every active subscriber and returns the
// recipient count immediately.
func (h *Handler) Broadcast(c *gin.Context) {
	var req BroadcastPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	recipients, err := h.Repo.ActiveEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscribers"})
		return
	}
	if len(recipients) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "no active subscribers", "recipients": 0})
		return
	}

	h.Mailer.SendBulkAsync(recipients, req.Subject, req.Body)

	c.JSON(http.StatusAccepted, gin.H{"message": "broadcast queued", "recipients": len(recipients)})
}
