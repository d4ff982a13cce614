package chat

import "time"

// ChatSession groups a visitor's chatbot exchanges under one uuid handed
// to the client on first contact.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"session_id"`
	VisitorID string    `gorm:"type:varchar(255)" json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatConversation is one question/answer pair in a session's transcript.
type ChatConversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(36);not null;index" json:"session_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatConversation) TableName() string {
	return "chat_conversations"
}

type ConversationPayload struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer"`
}
