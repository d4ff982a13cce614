package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// CreateSession - POST /chat/sessions (public)
// Mints a fresh session uuid the client sends back with each exchange.
func (h *Handler) CreateSession(c *gin.Context) {
	row := ChatSession{
		SessionID: uuid.NewString(),
		VisitorID: c.Query("visitor_id"),
	}
	if err := h.Repo.CreateSession(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat session"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// ListSessions - GET /chat/sessions?limit=&offset=
func (h *Handler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.Repo.ListSessions(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chat sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateConversation - POST /chat/conversations (public)
// Appends a question/answer pair to an existing session's transcript.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req ConversationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if _, err := h.Repo.GetSession(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify chat session"})
		return
	}

	row := ChatConversation{
		SessionID: req.SessionID,
		Question:  req.Question,
		Answer:    req.Answer,
	}
	if err := h.Repo.CreateConversation(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save conversation"})
		return
	}

	c.JSON(http.StatusCreated, row)
}

// ListConversations - GET /chat/sessions/:sessionId/conversations
func (h *Handler) ListConversations(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	rows, err := h.Repo.ListConversations(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
