package subscription

import "time"

// EmailSubscription is a mailing-list entry. Opt-out flips is_subscribed
// instead of deleting the row so re-subscribing keeps history.
type EmailSubscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	IsSubscribed bool      `gorm:"not null;default:true" json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (EmailSubscription) TableName() string {
	return "email_subscriptions"
}

type SubscribePayload struct {
	Email string `json:"email" binding:"required,email"`
}

type BroadcastPayload struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
