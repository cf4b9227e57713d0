package services

import "errors"

// Service errors. Controllers match these with errors.Is and map them to
// HTTP status codes; all of them are caller faults, none are fatal.
var (
	// ErrValidation marks a missing or invalid required field.
	ErrValidation = errors.New("validation failed")

	// ErrProgressOutOfRange marks a progress value outside [0, 100].
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")

	// ErrGoalNotFound covers both a missing goal and a goal the actor may
	// not act on. Review lookups deliberately do not distinguish the two,
	// so an unassigned reviewer cannot probe which goal IDs exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrReviewNotFound marks a missing review record.
	ErrReviewNotFound = errors.New("review not found")

	// ErrNotificationNotFound marks a missing notification record.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrForbidden marks an actor lacking the role or ownership required
	// for an operation whose target is already known to the actor.
	ErrForbidden = errors.New("not authorized")

	// ErrDuplicateReview marks a second review for the same
	// (goal, quarter, review type).
	ErrDuplicateReview = errors.New("review already exists for this goal and quarter")

	// ErrNoDraftGoals: submit_all with nothing to submit.
	ErrNoDraftGoals = errors.New("no draft goals available to submit for review")

	// ErrNoReviewerAssigned: submit_all for an owner with neither a
	// manager nor an appraiser. The whole batch is blocked.
	ErrNoReviewerAssigned = errors.New("no reviewer has been assigned to you")

	// ErrInvalidAction marks an unrecognized review action.
	ErrInvalidAction = errors.New("invalid action")
)
