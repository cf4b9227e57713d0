package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"performance-management-api/config"
	"performance-management-api/services"
)

type CreateReviewRequest struct {
	GoalID              int     `json:"goal_id" binding:"required"`
	ReviewType          string  `json:"review_type" binding:"required"` // self_assessment|manager_review
	Quarter             string  `json:"quarter" binding:"required"`
	Rating              int     `json:"rating" binding:"required"`
	Comments            *string `json:"comments"`
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
}

type UpdateReviewRequest struct {
	Rating              *int    `json:"rating"`
	Comments            *string `json:"comments"`
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
}

// CreateReview stores a self-assessment or manager review for a goal.
func CreateReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewReviewService(config.DB)
	review, err := service.Create(user, &services.CreateReviewInput{
		GoalID:              req.GoalID,
		ReviewType:          req.ReviewType,
		Quarter:             req.Quarter,
		Rating:              req.Rating,
		Comments:            req.Comments,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// GetReviews lists reviews visible to the caller, with optional goal_id,
// review_type and quarter filters.
func GetReviews(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	filters := services.ReviewFilters{}
	if raw := c.Query("goal_id"); raw != "" {
		goalID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal_id"})
			return
		}
		filters.GoalID = &goalID
	}
	if raw := c.Query("review_type"); raw != "" {
		filters.ReviewType = &raw
	}
	if raw := c.Query("quarter"); raw != "" {
		filters.Quarter = &raw
	}

	service := services.NewReviewService(config.DB)
	reviews, err := service.List(user, &filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

// GetReview returns one review the caller may see.
func GetReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	service := services.NewReviewService(config.DB)
	review, err := service.Get(user, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// UpdateReview edits a review authored by the caller.
func UpdateReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewReviewService(config.DB)
	review, err := service.Update(user, reviewID, &services.UpdateReviewInput{
		Rating:              req.Rating,
		Comments:            req.Comments,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// DeleteReview removes a review (author or admin).
func DeleteReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	service := services.NewReviewService(config.DB)
	if err := service.Delete(user, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}

// GetReviewComparison pairs self-assessments with manager reviews per
// quarter for one goal.
func GetReviewComparison(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("goal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
		return
	}

	var quarter *string
	if raw := c.Query("quarter"); raw != "" {
		quarter = &raw
	}

	service := services.NewReviewService(config.DB)
	comparisons, err := service.Compare(user, goalID, quarter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

// GetReviewSummary returns aggregate review statistics for the caller's
// scope.
func GetReviewSummary(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewReviewService(config.DB)
	summary, err := service.Summary(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
