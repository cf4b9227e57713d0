package models

import "time"

// Review types
const (
	ReviewTypeSelfAssessment = "self_assessment"
	ReviewTypeManagerReview  = "manager_review"
)

// Review is one evaluation of a goal for a specific quarter. At most one
// review may exist per (goal_id, quarter, review_type).
type Review struct {
	ReviewID             int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	GoalID               int        `gorm:"column:goal_id" json:"goal_id"`
	ReviewerID           int        `gorm:"column:reviewer_id" json:"reviewer_id"` // goal owner for self-assessment, manager for manager review
	ReviewType           string     `gorm:"column:review_type" json:"review_type"`
	Quarter              string     `gorm:"column:quarter" json:"quarter"` // e.g. "Q1 2024"
	Rating               int        `gorm:"column:rating" json:"rating"`   // 1-5
	Comments             *string    `gorm:"column:comments" json:"comments,omitempty"`
	Strengths            *string    `gorm:"column:strengths" json:"strengths,omitempty"`
	AreasForImprovement  *string    `gorm:"column:areas_for_improvement" json:"areas_for_improvement,omitempty"`
	CreatedAt            time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
