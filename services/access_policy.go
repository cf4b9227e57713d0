package services

import "performance-management-api/models"

// PolicyDecision is the outcome of an access check. DenyAsNotFound hides the
// target's existence from the actor; DenyAsForbidden does not.
type PolicyDecision int

const (
	Allow PolicyDecision = iota
	DenyAsNotFound
	DenyAsForbidden
)

// IsAssignedReviewer reports whether actor is the reviewer assigned to the
// goal at submission time. This is the review-workflow predicate; it is
// intentionally distinct from IsTeamManager.
func IsAssignedReviewer(actor *models.User, goal *models.Goal) bool {
	return goal.ReviewerID != nil && *goal.ReviewerID == actor.UserID
}

// IsTeamManager reports whether owner reports to actor via manager_id. Team
// visibility uses this, not the goal's reviewer_id: a goal assigned through
// appraiser_id is reviewed by someone outside the owner's reporting line.
func IsTeamManager(actor *models.User, owner *models.User) bool {
	return owner.ManagerID != nil && *owner.ManagerID == actor.UserID
}

// CanReviewGoal decides whether actor may act on a submitted goal. Admins may
// act on any submitted goal; reviewers only on goals assigned to them. A goal
// that exists but is not the actor's is reported as not found.
func CanReviewGoal(actor *models.User, goal *models.Goal) PolicyDecision {
	if goal.Status != models.GoalStatusSubmitted {
		return DenyAsNotFound
	}
	if actor.IsAdmin() {
		return Allow
	}
	if actor.IsReviewer() && IsAssignedReviewer(actor, goal) {
		return Allow
	}
	return DenyAsNotFound
}

// CanListForReview decides whether actor may use the review queue at all.
func CanListForReview(actor *models.User) PolicyDecision {
	if actor.IsAdmin() || actor.IsReviewer() {
		return Allow
	}
	return DenyAsForbidden
}

// CanCreateReview decides whether actor may author a review of the given
// type for the goal. Manager reviews check role only, not assignment to the
// goal's reviewer_id; visibility is narrowed at read time instead.
func CanCreateReview(actor *models.User, goal *models.Goal, reviewType string) PolicyDecision {
	switch reviewType {
	case models.ReviewTypeSelfAssessment:
		if goal.UserID == actor.UserID {
			return Allow
		}
		return DenyAsForbidden
	case models.ReviewTypeManagerReview:
		if actor.IsReviewer() || actor.IsAdmin() {
			return Allow
		}
		return DenyAsForbidden
	}
	return DenyAsForbidden
}

// CanSeeReview decides whether actor may read one review. Employees see
// reviews they authored and reviews of their own goals; reviewers see
// reviews they authored and reviews of goals assigned to them.
func CanSeeReview(actor *models.User, review *models.Review, goal *models.Goal) PolicyDecision {
	if actor.IsAdmin() {
		return Allow
	}
	if review.ReviewerID == actor.UserID {
		return Allow
	}
	if actor.IsReviewer() {
		if IsAssignedReviewer(actor, goal) {
			return Allow
		}
		return DenyAsForbidden
	}
	if goal.UserID == actor.UserID {
		return Allow
	}
	return DenyAsForbidden
}

// CanUpdateReview: only the review's author may update it.
func CanUpdateReview(actor *models.User, review *models.Review) PolicyDecision {
	if review.ReviewerID == actor.UserID {
		return Allow
	}
	return DenyAsForbidden
}

// CanDeleteReview: the author or an admin may delete a review.
func CanDeleteReview(actor *models.User, review *models.Review) PolicyDecision {
	if actor.IsAdmin() || review.ReviewerID == actor.UserID {
		return Allow
	}
	return DenyAsForbidden
}
