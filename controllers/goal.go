package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"performance-management-api/config"
	"performance-management-api/services"
)

type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Target      string  `json:"target" binding:"required"`
	Quarter     *string `json:"quarter"`
	StartDate   *string `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`   // YYYY-MM-DD
	Comments    *string `json:"comments"`
	ReviewerID  *int    `json:"reviewer_id"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Target      *string `json:"target"`
	Quarter     *string `json:"quarter"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Comments    *string `json:"comments"`
}

type GoalReviewRequest struct {
	Action   string `json:"action" binding:"required"` // approve|reject|return
	Feedback string `json:"feedback"`
}

type GoalProgressRequest struct {
	Progress *float64 `json:"progress" binding:"required"`
	Comments *string  `json:"comments"`
}

func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// CreateGoal creates a new draft goal owned by the caller.
func CreateGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goal, err := service.Create(user, &services.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		Quarter:     req.Quarter,
		StartDate:   startDate,
		EndDate:     endDate,
		Comments:    req.Comments,
		ReviewerID:  req.ReviewerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "goal": goal})
}

// GetGoals lists the caller's own goals.
func GetGoals(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goals, err := service.ListOwn(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "total": len(goals)})
}

// GetAllGoals lists goals scoped by role: admins see everything, reviewers
// their team's goals, employees their own.
func GetAllGoals(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goals, err := service.ListAll(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "total": len(goals)})
}

// GetGoal returns one of the caller's goals.
func GetGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goal, err := service.Get(user, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal edits one of the caller's goals.
func UpdateGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goal, err := service.Update(user, goalID, &services.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		Quarter:     req.Quarter,
		StartDate:   startDate,
		EndDate:     endDate,
		Comments:    req.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
}

// DeleteGoal removes one of the caller's goals.
func DeleteGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	if err := service.Delete(user, goalID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Goal deleted"})
}

// SubmitAllGoals moves every draft goal of the caller to submitted and
// notifies the resolved reviewer.
func SubmitAllGoals(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	updated, events, err := service.SubmitAll(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewNotificationService(config.DB).Dispatch(events)

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}

// GetGoalsForReview lists the caller's review queue.
func GetGoalsForReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goals, err := service.ListForReview(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "total": len(goals)})
}

// ReviewGoal applies approve/reject/return to a submitted goal and notifies
// its owner.
func ReviewGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var req GoalReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goal, events, err := service.Review(user, goalID, req.Action, req.Feedback)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewNotificationService(config.DB).Dispatch(events)

	c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
}

// UpdateGoalProgress records a progress value with its history entry.
func UpdateGoalProgress(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var req GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	goal, err := service.UpdateProgress(user, goalID, *req.Progress, req.Comments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
}

// GetGoalProgressHistory returns the goal's progress trail, newest first.
func GetGoalProgressHistory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	service := services.NewGoalLifecycleService(config.DB)
	history, err := service.ProgressHistory(user, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "total": len(history)})
}
