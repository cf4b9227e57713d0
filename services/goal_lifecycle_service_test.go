package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"performance-management-api/models"
)

func intPtr(v int) *int { return &v }

func employee(id int, managerID, appraiserID *int) *models.User {
	return &models.User{
		UserID:      id,
		Name:        "Test Employee",
		Role:        models.RoleEmployee,
		ManagerID:   managerID,
		AppraiserID: appraiserID,
	}
}

func TestSubmitAllFailsWithoutDraftGoals(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE user_id = \\? AND status = \\?"),
			args:    []driver.Value{int64(1), "draft"},
			columns: []string{"goal_id", "user_id", "title", "status"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, _, err := service.SubmitAll(employee(1, intPtr(2), nil))
	if !errors.Is(err, ErrNoDraftGoals) {
		t.Fatalf("expected ErrNoDraftGoals, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitAllFailsWithoutReviewer(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE user_id = \\? AND status = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "draft"},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, _, err := service.SubmitAll(employee(1, nil, nil))
	if !errors.Is(err, ErrNoReviewerAssigned) {
		t.Fatalf("expected ErrNoReviewerAssigned, got %v", err)
	}

	// No goal transitioned and no notification was produced.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitAllPrefersManagerOverAppraiser(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE user_id = \\? AND status = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "draft"},
				{int64(11), int64(1), "Mentor Juniors", "draft"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .goals. SET .* WHERE user_id = \\? AND status = \\?"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	updated, events, err := service.SubmitAll(employee(1, intPtr(2), intPtr(9)))
	if err != nil {
		t.Fatalf("SubmitAll returned error: %v", err)
	}

	if updated != 2 {
		t.Fatalf("expected 2 updated goals, got %d", updated)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 notification events, got %d", len(events))
	}
	for _, event := range events {
		if event.RecipientID != 2 {
			t.Fatalf("expected reviewer 2 (manager preferred), got %d", event.RecipientID)
		}
		if event.Type != models.NotificationGoalSubmitted {
			t.Fatalf("unexpected event type %q", event.Type)
		}
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitAllUsesAppraiserWhenNoManager(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE user_id = \\? AND status = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "draft"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .goals. SET .* WHERE user_id = \\? AND status = \\?"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, events, err := service.SubmitAll(employee(1, nil, intPtr(9)))
	if err != nil {
		t.Fatalf("SubmitAll returned error: %v", err)
	}
	if len(events) != 1 || events[0].RecipientID != 9 {
		t.Fatalf("expected one event for appraiser 9, got %+v", events)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReviewApproveTransitionsAndNotifiesOwner(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "reviewer_id"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "submitted", int64(2)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .goals. SET .* WHERE goal_id = \\?"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	reviewer := &models.User{UserID: 2, Name: "Manager", Role: models.RoleReviewer}

	service := NewGoalLifecycleService(db)
	goal, events, err := service.Review(reviewer, 10, ReviewActionApprove, "")
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}

	if goal.Status != models.GoalStatusApproved {
		t.Fatalf("expected approved, got %q", goal.Status)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if events[0].RecipientID != 1 {
		t.Fatalf("expected notification for owner 1, got %d", events[0].RecipientID)
	}
	if events[0].Type != models.NotificationGoalApproved {
		t.Fatalf("unexpected event type %q", events[0].Type)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReviewReturnMovesGoalBackToDraft(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "reviewer_id", "comments"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "submitted", int64(2), "initial note"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .goals. SET .* WHERE goal_id = \\?"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	reviewer := &models.User{UserID: 2, Name: "Manager", Role: models.RoleReviewer}

	service := NewGoalLifecycleService(db)
	goal, events, err := service.Review(reviewer, 10, ReviewActionReturn, "needs a measurable target")
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}

	if goal.Status != models.GoalStatusDraft {
		t.Fatalf("expected draft after return, got %q", goal.Status)
	}
	if goal.Comments == nil {
		t.Fatal("expected feedback appended to comments")
	}
	want := "initial note\n[Reviewer]: needs a measurable target"
	if *goal.Comments != want {
		t.Fatalf("comments = %q, want %q", *goal.Comments, want)
	}
	if len(events) != 1 || events[0].Type != models.NotificationGoalReturned {
		t.Fatalf("expected one goal_returned event, got %+v", events)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReviewHidesGoalsNotAssignedToReviewer(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "reviewer_id"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "submitted", int64(2)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	stranger := &models.User{UserID: 7, Name: "Other Reviewer", Role: models.RoleReviewer}

	service := NewGoalLifecycleService(db)
	_, _, err := service.Review(stranger, 10, ReviewActionApprove, "")
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound for unassigned reviewer, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReviewRejectsUnknownAction(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "reviewer_id"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "submitted", int64(2)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	admin := &models.User{UserID: 99, Name: "Admin", Role: models.RoleAdmin}

	service := NewGoalLifecycleService(db)
	_, _, err := service.Review(admin, 10, "escalate", "")
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReviewForbiddenForEmployees(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, _, err := service.Review(employee(1, nil, nil), 10, ReviewActionApprove, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateProgressRejectsOutOfRangeWithoutWrites(t *testing.T) {
	for _, progress := range []float64{-0.5, 100.01, 150} {
		steps := []*queryStep{
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\? AND user_id = \\?"),
				columns: []string{"goal_id", "user_id", "title", "status", "progress"},
				rows: [][]driver.Value{
					{int64(10), int64(1), "Improve Code Quality", "draft", float64(25)},
				},
			},
		}
		db, state, cleanup := newScriptedGormDB(t, steps)

		service := NewGoalLifecycleService(db)
		_, err := service.UpdateProgress(employee(1, nil, nil), 10, progress, nil)
		if !errors.Is(err, ErrProgressOutOfRange) {
			t.Fatalf("progress %v: expected ErrProgressOutOfRange, got %v", progress, err)
		}

		// Neither the history insert nor the goal update may have run.
		if err := state.verifyComplete(); err != nil {
			t.Fatalf("progress %v: %v", progress, err)
		}
		cleanup()
	}
}

func TestUpdateProgressWritesHistoryAndGoalTogether(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\? AND user_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "progress"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "draft", float64(25)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO .goal_progress_history."),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .goals. SET .* WHERE goal_id = \\?"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	comment := "halfway there"
	service := NewGoalLifecycleService(db)
	goal, err := service.UpdateProgress(employee(1, nil, nil), 10, 50, &comment)
	if err != nil {
		t.Fatalf("UpdateProgress returned error: %v", err)
	}

	if goal.Progress != 50 {
		t.Fatalf("expected progress 50, got %v", goal.Progress)
	}
	if goal.ProgressUpdatedAt == nil {
		t.Fatal("expected progress_updated_at to be set")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateProgressHistoryInsertFailureAbortsGoalUpdate(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .goals. WHERE goal_id = \\? AND user_id = \\?"),
			columns: []string{"goal_id", "user_id", "title", "status", "progress"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Improve Code Quality", "draft", float64(25)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO .goal_progress_history."),
			err:     errors.New("insert failed"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, err := service.UpdateProgress(employee(1, nil, nil), 10, 50, nil)
	if err == nil {
		t.Fatal("expected error when history insert fails")
	}

	// The goal update step was never scripted; the transaction rolled back
	// before reaching it.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestListForReviewForbiddenForEmployees(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	_, err := service.ListForReview(employee(1, nil, nil))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewGoalLifecycleService(db)
	cases := []CreateGoalInput{
		{Title: "", Description: "d", Target: "t"},
		{Title: "x", Description: " ", Target: "t"},
		{Title: "x", Description: "d", Target: ""},
	}
	for i, in := range cases {
		if _, err := service.Create(employee(1, nil, nil), &in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
