package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"performance-management-api/config"
	"performance-management-api/models"
	"performance-management-api/services"
	"performance-management-api/utils"
)

// GetReviewers lists active reviewers, for reviewer dropdown selection.
func GetReviewers(c *gin.Context) {
	var reviewers []models.User
	if err := config.DB.Where("is_active = ? AND role = ?", true, models.RoleReviewer).
		Find(&reviewers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewers": reviewers, "total": len(reviewers)})
}

// GetTeamEmployees lists the active employees reporting to the caller via
// manager_id. Admins see every active employee.
func GetTeamEmployees(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	query := config.DB.Where("is_active = ? AND role = ?", true, models.RoleEmployee)
	if !user.IsAdmin() {
		query = query.Where("manager_id = ?", user.UserID)
	}

	var employees []models.User
	if err := query.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees, "total": len(employees)})
}

type UpdateProfileRequest struct {
	Name                   *string `json:"name"`
	Department             *string `json:"department"`
	Title                  *string `json:"title"`
	Phone                  *string `json:"phone"`
	TotalExperienceYears   *int    `json:"total_experience_years"`
	CompanyExperienceYears *int    `json:"company_experience_years"`
}

// UpdateProfile edits the caller's own profile fields.
func UpdateProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.TotalExperienceYears != nil {
		updates["total_experience_years"] = *req.TotalExperienceYears
	}
	if req.CompanyExperienceYears != nil {
		updates["company_experience_years"] = *req.CompanyExperienceYears
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := config.DB.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	var updated models.User
	if err := config.DB.First(&updated, "user_id = ?", user.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// GetUsers lists all users. Admin only.
func GetUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("active_only") == "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// SetUserActive activates or deactivates an account and notifies the user.
// Admin only.
func SetUserActive(c *gin.Context) {
	admin := currentUser(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := config.DB.First(&target, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  *req.IsActive,
			"updated_at": time.Now(),
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	target.IsActive = *req.IsActive
	services.NewNotificationService(config.DB).Dispatch([]*services.NotificationEvent{
		services.UserStatusEvent(&target, admin, *req.IsActive),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "user": target})
}
