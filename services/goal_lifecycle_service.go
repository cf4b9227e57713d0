package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"performance-management-api/models"
)

// Review actions
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
	ReviewActionReturn  = "return"
)

// GoalLifecycleService owns the goal state machine:
// draft -> submitted -> {approved, rejected, draft (returned)}.
// Operations that change state return the notification events to dispatch
// after the change has committed.
type GoalLifecycleService struct {
	db *gorm.DB
}

func NewGoalLifecycleService(db *gorm.DB) *GoalLifecycleService {
	return &GoalLifecycleService{db: db}
}

type CreateGoalInput struct {
	Title       string
	Description string
	Target      string
	Quarter     *string
	StartDate   *time.Time
	EndDate     *time.Time
	Comments    *string
	ReviewerID  *int
}

// Create stores a new goal in draft with zero progress.
func (s *GoalLifecycleService) Create(owner *models.User, in *CreateGoalInput) (*models.Goal, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if strings.TrimSpace(in.Target) == "" {
		return nil, fmt.Errorf("%w: target is required", ErrValidation)
	}

	goal := models.Goal{
		UserID:      owner.UserID,
		Title:       in.Title,
		Description: in.Description,
		Target:      in.Target,
		Quarter:     in.Quarter,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Comments:    in.Comments,
		ReviewerID:  in.ReviewerID,
		Status:      models.GoalStatusDraft,
		Progress:    0,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// SubmitAll moves every draft goal of the owner to submitted and assigns the
// resolved reviewer (manager_id preferred over appraiser_id). The batch is
// all-or-nothing: the reviewer precondition is checked once for the whole
// set, and the transition runs in a single transaction. One goal-submitted
// event is returned per goal that got a reviewer.
func (s *GoalLifecycleService) SubmitAll(owner *models.User) (int, []*NotificationEvent, error) {
	var drafts []models.Goal
	if err := s.db.Where("user_id = ? AND status = ?", owner.UserID, models.GoalStatusDraft).
		Find(&drafts).Error; err != nil {
		return 0, nil, err
	}
	if len(drafts) == 0 {
		return 0, nil, ErrNoDraftGoals
	}

	var reviewerID int
	switch {
	case owner.ManagerID != nil:
		reviewerID = *owner.ManagerID
	case owner.AppraiserID != nil:
		reviewerID = *owner.AppraiserID
	default:
		return 0, nil, ErrNoReviewerAssigned
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Goal{}).
			Where("user_id = ? AND status = ?", owner.UserID, models.GoalStatusDraft).
			Updates(map[string]interface{}{
				"status":      models.GoalStatusSubmitted,
				"reviewer_id": reviewerID,
				"updated_at":  now,
			}).Error
	})
	if err != nil {
		return 0, nil, err
	}

	events := make([]*NotificationEvent, 0, len(drafts))
	for i := range drafts {
		drafts[i].Status = models.GoalStatusSubmitted
		drafts[i].ReviewerID = &reviewerID
		if event := GoalSubmittedEvent(&drafts[i], owner); event != nil {
			events = append(events, event)
		}
	}
	return len(drafts), events, nil
}

// Review applies a reviewer decision to one submitted goal. Feedback, when
// present, is appended to the goal's comments as a reviewer-attributed line.
func (s *GoalLifecycleService) Review(actor *models.User, goalID int, action, feedback string) (*models.Goal, []*NotificationEvent, error) {
	if CanListForReview(actor) != Allow {
		return nil, nil, ErrForbidden
	}

	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ?", goalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, err
	}
	if CanReviewGoal(actor, &goal) != Allow {
		// Hides whether the goal exists from reviewers it is not assigned to.
		return nil, nil, ErrGoalNotFound
	}

	var newStatus string
	switch action {
	case ReviewActionApprove:
		newStatus = models.GoalStatusApproved
	case ReviewActionReject:
		newStatus = models.GoalStatusRejected
	case ReviewActionReturn:
		newStatus = models.GoalStatusDraft
	default:
		return nil, nil, ErrInvalidAction
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	if strings.TrimSpace(feedback) != "" {
		existing := ""
		if goal.Comments != nil {
			existing = *goal.Comments
		}
		combined := existing + fmt.Sprintf("\n[Reviewer]: %s", feedback)
		updates["comments"] = combined
		goal.Comments = &combined
	}

	if err := s.db.Model(&models.Goal{}).
		Where("goal_id = ?", goalID).
		Updates(updates).Error; err != nil {
		return nil, nil, err
	}

	goal.Status = newStatus
	goal.UpdatedAt = &now

	events := []*NotificationEvent{GoalReviewedEvent(&goal, actor, action)}
	return &goal, events, nil
}

// UpdateProgress records one progress update for a goal the owner holds. The
// history row and the goal fields commit together or not at all.
func (s *GoalLifecycleService) UpdateProgress(owner *models.User, goalID int, progress float64, comments *string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ? AND user_id = ?", goalID, owner.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if progress < 0 || progress > 100 {
		return nil, ErrProgressOutOfRange
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		history := models.GoalProgressHistory{
			GoalID:    goalID,
			UserID:    owner.UserID,
			Progress:  progress,
			Comments:  comments,
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.Model(&models.Goal{}).
			Where("goal_id = ?", goalID).
			Updates(map[string]interface{}{
				"progress":            progress,
				"progress_updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	goal.Progress = progress
	goal.ProgressUpdatedAt = &now
	return &goal, nil
}

// ProgressHistory returns the goal's progress trail, newest first. Only the
// owner may read it.
func (s *GoalLifecycleService) ProgressHistory(owner *models.User, goalID int) ([]models.GoalProgressHistory, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ? AND user_id = ?", goalID, owner.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	var history []models.GoalProgressHistory
	if err := s.db.Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// ListForReview returns the actor's review queue: all submitted goals for
// admins, assigned submitted goals for reviewers.
func (s *GoalLifecycleService) ListForReview(actor *models.User) ([]models.Goal, error) {
	if CanListForReview(actor) != Allow {
		return nil, ErrForbidden
	}

	query := s.db.Preload("Owner").Where("status = ?", models.GoalStatusSubmitted)
	if !actor.IsAdmin() {
		query = query.Where("reviewer_id = ?", actor.UserID)
	}

	var goals []models.Goal
	if err := query.Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// ListAll returns goals scoped by role: admins see everything, reviewers see
// their team's goals (owner's manager_id, not the goal's reviewer_id), and
// everyone else sees their own.
func (s *GoalLifecycleService) ListAll(actor *models.User) ([]models.Goal, error) {
	var goals []models.Goal

	switch {
	case actor.IsAdmin():
		if err := s.db.Find(&goals).Error; err != nil {
			return nil, err
		}
	case actor.IsReviewer():
		sub := s.db.Model(&models.User{}).Select("user_id").Where("manager_id = ?", actor.UserID)
		if err := s.db.Where("user_id IN (?)", sub).Find(&goals).Error; err != nil {
			return nil, err
		}
	default:
		if err := s.db.Where("user_id = ?", actor.UserID).Find(&goals).Error; err != nil {
			return nil, err
		}
	}
	return goals, nil
}

// ListOwn returns the owner's goals.
func (s *GoalLifecycleService) ListOwn(owner *models.User) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", owner.UserID).Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// Get returns one of the owner's goals.
func (s *GoalLifecycleService) Get(owner *models.User, goalID int) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ? AND user_id = ?", goalID, owner.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

type UpdateGoalInput struct {
	Title       *string
	Description *string
	Target      *string
	Quarter     *string
	StartDate   *time.Time
	EndDate     *time.Time
	Comments    *string
}

// Update edits the owner's goal fields. Only fields present in the input are
// touched.
func (s *GoalLifecycleService) Update(owner *models.User, goalID int, in *UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.Get(owner, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Target != nil {
		updates["target"] = *in.Target
	}
	if in.Quarter != nil {
		updates["quarter"] = *in.Quarter
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.Comments != nil {
		updates["comments"] = *in.Comments
	}
	if len(updates) == 0 {
		return goal, nil
	}
	updates["updated_at"] = time.Now()

	if err := s.db.Model(&models.Goal{}).
		Where("goal_id = ?", goalID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(owner, goalID)
}

// Delete removes one of the owner's goals.
func (s *GoalLifecycleService) Delete(owner *models.User, goalID int) error {
	result := s.db.Where("goal_id = ? AND user_id = ?", goalID, owner.UserID).
		Delete(&models.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
