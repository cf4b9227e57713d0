package services

import (
	"testing"

	"performance-management-api/models"
)

func TestIsAssignedReviewer(t *testing.T) {
	reviewer := &models.User{UserID: 2, Role: models.RoleReviewer}
	assigned := &models.Goal{GoalID: 1, UserID: 1, ReviewerID: intPtr(2)}
	unassigned := &models.Goal{GoalID: 2, UserID: 1}
	other := &models.Goal{GoalID: 3, UserID: 1, ReviewerID: intPtr(5)}

	if !IsAssignedReviewer(reviewer, assigned) {
		t.Error("expected assigned reviewer to match")
	}
	if IsAssignedReviewer(reviewer, unassigned) {
		t.Error("goal without reviewer must not match")
	}
	if IsAssignedReviewer(reviewer, other) {
		t.Error("goal assigned elsewhere must not match")
	}
}

func TestIsTeamManagerUsesManagerIDNotReviewerID(t *testing.T) {
	manager := &models.User{UserID: 2, Role: models.RoleReviewer}

	// Owner reports to manager 2 but the goal was assigned via appraiser 9.
	// Team visibility still follows manager_id.
	owner := &models.User{UserID: 1, Role: models.RoleEmployee, ManagerID: intPtr(2), AppraiserID: intPtr(9)}
	if !IsTeamManager(manager, owner) {
		t.Error("expected manager_id match")
	}

	appraiser := &models.User{UserID: 9, Role: models.RoleReviewer}
	if IsTeamManager(appraiser, owner) {
		t.Error("appraiser is not the team manager")
	}
}

func TestCanReviewGoal(t *testing.T) {
	admin := &models.User{UserID: 99, Role: models.RoleAdmin}
	reviewer := &models.User{UserID: 2, Role: models.RoleReviewer}
	stranger := &models.User{UserID: 7, Role: models.RoleReviewer}
	employeeActor := &models.User{UserID: 1, Role: models.RoleEmployee}

	submitted := &models.Goal{GoalID: 1, UserID: 1, Status: models.GoalStatusSubmitted, ReviewerID: intPtr(2)}
	draft := &models.Goal{GoalID: 2, UserID: 1, Status: models.GoalStatusDraft, ReviewerID: intPtr(2)}

	if got := CanReviewGoal(admin, submitted); got != Allow {
		t.Errorf("admin on submitted goal: got %v, want Allow", got)
	}
	if got := CanReviewGoal(reviewer, submitted); got != Allow {
		t.Errorf("assigned reviewer: got %v, want Allow", got)
	}
	if got := CanReviewGoal(stranger, submitted); got != DenyAsNotFound {
		t.Errorf("unassigned reviewer must get not-found, got %v", got)
	}
	if got := CanReviewGoal(employeeActor, submitted); got != DenyAsNotFound {
		t.Errorf("employee must get not-found, got %v", got)
	}
	if got := CanReviewGoal(admin, draft); got != DenyAsNotFound {
		t.Errorf("draft goal is not reviewable even for admin, got %v", got)
	}
}

func TestCanCreateReview(t *testing.T) {
	goal := &models.Goal{GoalID: 1, UserID: 1, ReviewerID: intPtr(2)}

	owner := &models.User{UserID: 1, Role: models.RoleEmployee}
	otherEmployee := &models.User{UserID: 3, Role: models.RoleEmployee}
	reviewer := &models.User{UserID: 2, Role: models.RoleReviewer}
	unassignedReviewer := &models.User{UserID: 7, Role: models.RoleReviewer}
	admin := &models.User{UserID: 99, Role: models.RoleAdmin}

	if got := CanCreateReview(owner, goal, models.ReviewTypeSelfAssessment); got != Allow {
		t.Errorf("owner self-assessment: got %v, want Allow", got)
	}
	if got := CanCreateReview(otherEmployee, goal, models.ReviewTypeSelfAssessment); got != DenyAsForbidden {
		t.Errorf("non-owner self-assessment: got %v, want DenyAsForbidden", got)
	}
	if got := CanCreateReview(reviewer, goal, models.ReviewTypeManagerReview); got != Allow {
		t.Errorf("reviewer manager-review: got %v, want Allow", got)
	}
	// Role check only; assignment to the goal is intentionally not required.
	if got := CanCreateReview(unassignedReviewer, goal, models.ReviewTypeManagerReview); got != Allow {
		t.Errorf("unassigned reviewer manager-review: got %v, want Allow", got)
	}
	if got := CanCreateReview(admin, goal, models.ReviewTypeManagerReview); got != Allow {
		t.Errorf("admin manager-review: got %v, want Allow", got)
	}
	if got := CanCreateReview(owner, goal, models.ReviewTypeManagerReview); got != DenyAsForbidden {
		t.Errorf("employee manager-review: got %v, want DenyAsForbidden", got)
	}
	if got := CanCreateReview(owner, goal, "peer_review"); got != DenyAsForbidden {
		t.Errorf("unknown review type: got %v, want DenyAsForbidden", got)
	}
}

func TestCanSeeReview(t *testing.T) {
	goal := &models.Goal{GoalID: 1, UserID: 1, ReviewerID: intPtr(2)}
	managerReview := &models.Review{ReviewID: 5, GoalID: 1, ReviewerID: 2, ReviewType: models.ReviewTypeManagerReview}

	owner := &models.User{UserID: 1, Role: models.RoleEmployee}
	author := &models.User{UserID: 2, Role: models.RoleReviewer}
	otherEmployee := &models.User{UserID: 3, Role: models.RoleEmployee}
	otherReviewer := &models.User{UserID: 7, Role: models.RoleReviewer}
	admin := &models.User{UserID: 99, Role: models.RoleAdmin}

	if got := CanSeeReview(owner, managerReview, goal); got != Allow {
		t.Errorf("goal owner: got %v, want Allow", got)
	}
	if got := CanSeeReview(author, managerReview, goal); got != Allow {
		t.Errorf("author: got %v, want Allow", got)
	}
	if got := CanSeeReview(admin, managerReview, goal); got != Allow {
		t.Errorf("admin: got %v, want Allow", got)
	}
	if got := CanSeeReview(otherEmployee, managerReview, goal); got != DenyAsForbidden {
		t.Errorf("unrelated employee: got %v, want DenyAsForbidden", got)
	}
	if got := CanSeeReview(otherReviewer, managerReview, goal); got != DenyAsForbidden {
		t.Errorf("unrelated reviewer: got %v, want DenyAsForbidden", got)
	}
}

func TestReviewUpdateAndDeletePolicies(t *testing.T) {
	review := &models.Review{ReviewID: 5, GoalID: 1, ReviewerID: 2}

	author := &models.User{UserID: 2, Role: models.RoleReviewer}
	admin := &models.User{UserID: 99, Role: models.RoleAdmin}
	other := &models.User{UserID: 7, Role: models.RoleReviewer}

	if got := CanUpdateReview(author, review); got != Allow {
		t.Errorf("author update: got %v, want Allow", got)
	}
	if got := CanUpdateReview(admin, review); got != DenyAsForbidden {
		t.Errorf("admin update of someone else's review: got %v, want DenyAsForbidden", got)
	}
	if got := CanDeleteReview(author, review); got != Allow {
		t.Errorf("author delete: got %v, want Allow", got)
	}
	if got := CanDeleteReview(admin, review); got != Allow {
		t.Errorf("admin delete: got %v, want Allow", got)
	}
	if got := CanDeleteReview(other, review); got != DenyAsForbidden {
		t.Errorf("stranger delete: got %v, want DenyAsForbidden", got)
	}
}
