package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"performance-management-api/models"
)

// ReviewService creates and reads per-quarter evaluations of goals, pairing
// self-assessments with manager reviews.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewInput struct {
	GoalID              int
	ReviewType          string
	Quarter             string
	Rating              int
	Comments            *string
	Strengths           *string
	AreasForImprovement *string
}

// Create stores a new review authored by the actor. At most one review may
// exist per (goal, quarter, review type).
func (s *ReviewService) Create(actor *models.User, in *CreateReviewInput) (*models.Review, error) {
	if in.ReviewType != models.ReviewTypeSelfAssessment && in.ReviewType != models.ReviewTypeManagerReview {
		return nil, fmt.Errorf("%w: unknown review type", ErrValidation)
	}
	if in.Quarter == "" {
		return nil, fmt.Errorf("%w: quarter is required", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ?", in.GoalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if CanCreateReview(actor, &goal, in.ReviewType) != Allow {
		return nil, ErrForbidden
	}

	var count int64
	if err := s.db.Model(&models.Review{}).
		Where("goal_id = ? AND quarter = ? AND review_type = ?", in.GoalID, in.Quarter, in.ReviewType).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateReview
	}

	review := models.Review{
		GoalID:              in.GoalID,
		ReviewerID:          actor.UserID,
		ReviewType:          in.ReviewType,
		Quarter:             in.Quarter,
		Rating:              in.Rating,
		Comments:            in.Comments,
		Strengths:           in.Strengths,
		AreasForImprovement: in.AreasForImprovement,
		CreatedAt:           time.Now(),
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

type ReviewFilters struct {
	GoalID     *int
	ReviewType *string
	Quarter    *string
}

// scopedQuery applies the role-based visibility rule shared by List and
// Summary: employees see reviews they authored plus reviews of goals they
// own; reviewers see reviews they authored plus reviews of goals assigned to
// them; admins see everything.
func (s *ReviewService) scopedQuery(actor *models.User) *gorm.DB {
	query := s.db.Model(&models.Review{})
	switch {
	case actor.IsAdmin():
		// no scoping
	case actor.IsReviewer():
		query = query.Joins("JOIN goals ON goals.goal_id = reviews.goal_id").
			Where("reviews.reviewer_id = ? OR goals.reviewer_id = ?", actor.UserID, actor.UserID)
	default:
		query = query.Joins("JOIN goals ON goals.goal_id = reviews.goal_id").
			Where("reviews.reviewer_id = ? OR goals.user_id = ?", actor.UserID, actor.UserID)
	}
	return query
}

// List returns the reviews visible to the actor, newest first, narrowed by
// the optional filters.
func (s *ReviewService) List(actor *models.User, filters *ReviewFilters) ([]models.Review, error) {
	query := s.scopedQuery(actor)

	if filters != nil {
		if filters.GoalID != nil {
			query = query.Where("reviews.goal_id = ?", *filters.GoalID)
		}
		if filters.ReviewType != nil {
			query = query.Where("reviews.review_type = ?", *filters.ReviewType)
		}
		if filters.Quarter != nil {
			query = query.Where("reviews.quarter = ?", *filters.Quarter)
		}
	}

	var reviews []models.Review
	if err := query.Order("reviews.created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Get returns one review the actor may see.
func (s *ReviewService) Get(actor *models.User, reviewID int) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ?", review.GoalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if CanSeeReview(actor, &review, &goal) != Allow {
		return nil, ErrForbidden
	}
	return &review, nil
}

type UpdateReviewInput struct {
	Rating              *int
	Comments            *string
	Strengths           *string
	AreasForImprovement *string
}

// Update edits a review; only its author may do so.
func (s *ReviewService) Update(actor *models.User, reviewID int, in *UpdateReviewInput) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if CanUpdateReview(actor, &review) != Allow {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
		updates["rating"] = *in.Rating
		review.Rating = *in.Rating
	}
	if in.Comments != nil {
		updates["comments"] = *in.Comments
		review.Comments = in.Comments
	}
	if in.Strengths != nil {
		updates["strengths"] = *in.Strengths
		review.Strengths = in.Strengths
	}
	if in.AreasForImprovement != nil {
		updates["areas_for_improvement"] = *in.AreasForImprovement
		review.AreasForImprovement = in.AreasForImprovement
	}
	if len(updates) == 0 {
		return &review, nil
	}

	now := time.Now()
	updates["updated_at"] = now

	if err := s.db.Model(&models.Review{}).
		Where("review_id = ?", reviewID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	review.UpdatedAt = &now
	return &review, nil
}

// Delete removes a review; the author or an admin may do so.
func (s *ReviewService) Delete(actor *models.User, reviewID int) error {
	var review models.Review
	if err := s.db.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrReviewNotFound
		}
		return err
	}

	if CanDeleteReview(actor, &review) != Allow {
		return ErrForbidden
	}

	return s.db.Delete(&models.Review{}, "review_id = ?", reviewID).Error
}

// ReviewComparison pairs the self-assessment and manager review of one goal
// for one quarter. RatingDifference (manager minus self) is present only
// when both reviews exist.
type ReviewComparison struct {
	GoalID           int            `json:"goal_id"`
	GoalTitle        string         `json:"goal_title"`
	Quarter          string         `json:"quarter"`
	SelfAssessment   *models.Review `json:"self_assessment,omitempty"`
	ManagerReview    *models.Review `json:"manager_review,omitempty"`
	RatingDifference *int           `json:"rating_difference,omitempty"`
}

// Compare groups all reviews of a goal by quarter and pairs the two review
// types per quarter.
func (s *ReviewService) Compare(actor *models.User, goalID int, quarter *string) ([]ReviewComparison, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "goal_id = ?", goalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin() {
		if actor.IsReviewer() {
			if !IsAssignedReviewer(actor, &goal) {
				return nil, ErrForbidden
			}
		} else if goal.UserID != actor.UserID {
			return nil, ErrForbidden
		}
	}

	query := s.db.Where("goal_id = ?", goalID)
	if quarter != nil {
		query = query.Where("quarter = ?", *quarter)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}

	return buildComparisons(&goal, reviews), nil
}

// buildComparisons does the per-quarter pairing. Kept free of DB access so
// the pairing rule can be tested directly.
func buildComparisons(goal *models.Goal, reviews []models.Review) []ReviewComparison {
	byQuarter := map[string]*ReviewComparison{}
	order := []string{}

	for i := range reviews {
		review := &reviews[i]
		comparison, ok := byQuarter[review.Quarter]
		if !ok {
			comparison = &ReviewComparison{
				GoalID:    goal.GoalID,
				GoalTitle: goal.Title,
				Quarter:   review.Quarter,
			}
			byQuarter[review.Quarter] = comparison
			order = append(order, review.Quarter)
		}

		switch review.ReviewType {
		case models.ReviewTypeSelfAssessment:
			comparison.SelfAssessment = review
		case models.ReviewTypeManagerReview:
			comparison.ManagerReview = review
		}
	}

	out := make([]ReviewComparison, 0, len(order))
	for _, q := range order {
		comparison := byQuarter[q]
		if comparison.SelfAssessment != nil && comparison.ManagerReview != nil {
			diff := comparison.ManagerReview.Rating - comparison.SelfAssessment.Rating
			comparison.RatingDifference = &diff
		}
		out = append(out, *comparison)
	}
	return out
}

// ReviewSummary holds aggregate statistics over the reviews visible to one
// actor.
type ReviewSummary struct {
	TotalReviews  int             `json:"total_reviews"`
	AverageRating float64         `json:"average_rating"`
	ReviewsByType map[string]int  `json:"reviews_by_type"`
	RecentReviews []models.Review `json:"recent_reviews"`
}

// Summary computes count, average rating, per-type counts, and the five most
// recent reviews visible to the actor. An empty scope yields a zeroed
// summary, never an error.
func (s *ReviewService) Summary(actor *models.User) (*ReviewSummary, error) {
	var reviews []models.Review
	if err := s.scopedQuery(actor).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return summarizeReviews(reviews), nil
}

func summarizeReviews(reviews []models.Review) *ReviewSummary {
	summary := &ReviewSummary{
		ReviewsByType: map[string]int{},
		RecentReviews: []models.Review{},
	}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
		summary.ReviewsByType[review.ReviewType]++
	}
	summary.TotalReviews = len(reviews)
	summary.AverageRating = math.Round(float64(total)/float64(len(reviews))*100) / 100

	sorted := make([]models.Review, len(reviews))
	copy(sorted, reviews)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	summary.RecentReviews = sorted

	return summary
}
