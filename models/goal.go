package models

import "time"

// Goal statuses. A goal starts in draft, submit_all moves every draft goal
// to submitted, and the assigned reviewer resolves the submission cycle with
// approved, rejected, or draft again (returned).
const (
	GoalStatusDraft     = "draft"
	GoalStatusSubmitted = "submitted"
	GoalStatusApproved  = "approved"
	GoalStatusRejected  = "rejected"
)

type Goal struct {
	GoalID            int        `gorm:"primaryKey;column:goal_id" json:"goal_id"`
	UserID            int        `gorm:"column:user_id" json:"user_id"`
	Title             string     `gorm:"column:title" json:"title"`
	Description       string     `gorm:"column:description" json:"description"`
	Target            string     `gorm:"column:target" json:"target"`
	Quarter           *string    `gorm:"column:quarter" json:"quarter,omitempty"`
	StartDate         *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate           *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Status            string     `gorm:"column:status" json:"status"`
	Comments          *string    `gorm:"column:comments" json:"comments,omitempty"`
	ReviewerID        *int       `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	Progress          float64    `gorm:"column:progress" json:"progress"` // 0.00 - 100.00
	ProgressUpdatedAt *time.Time `gorm:"column:progress_updated_at" json:"progress_updated_at,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Owner *User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

// GoalProgressHistory is an append-only record of one progress update.
// Rows are never mutated or deleted after creation.
type GoalProgressHistory struct {
	HistoryID int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	GoalID    int       `gorm:"column:goal_id" json:"goal_id"`
	UserID    int       `gorm:"column:user_id" json:"user_id"`
	Progress  float64   `gorm:"column:progress" json:"progress"`
	Comments  *string   `gorm:"column:comments" json:"comments,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (GoalProgressHistory) TableName() string {
	return "goal_progress_history"
}
