package models

import "time"

// Notification types
const (
	NotificationGoalSubmitted    = "goal_submitted"
	NotificationGoalApproved     = "goal_approved"
	NotificationGoalRejected     = "goal_rejected"
	NotificationGoalReturned     = "goal_returned"
	NotificationReviewRequested  = "review_requested"
	NotificationSystemMessage    = "system_message"
	NotificationUserRegistration = "user_registration"
	NotificationUserApproved     = "user_approved"
	NotificationUserRejected     = "user_rejected"
)

type Notification struct {
	NotificationID   int       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID           int       `gorm:"column:user_id" json:"user_id"`
	Title            string    `gorm:"column:title" json:"title"`
	Message          string    `gorm:"column:message" json:"message"`
	NotificationType string    `gorm:"column:notification_type" json:"notification_type"`
	IsRead           bool      `gorm:"column:is_read" json:"is_read"`
	GoalID           *int      `gorm:"column:goal_id" json:"goal_id,omitempty"`
	SenderID         *int      `gorm:"column:sender_id" json:"sender_id,omitempty"`
	RelatedUserID    *int      `gorm:"column:related_user_id" json:"related_user_id,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
