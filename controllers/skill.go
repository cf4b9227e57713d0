package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"performance-management-api/config"
	"performance-management-api/models"
	"performance-management-api/utils"
)

type CreateSkillRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	CompetencyLevel   string  `json:"competency_level" binding:"required"`
	Description       *string `json:"description"`
	IsDevelopmentArea bool    `json:"is_development_area"`
	Tags              *string `json:"tags"`
}

type UpdateSkillRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	CompetencyLevel   *string `json:"competency_level"`
	Description       *string `json:"description"`
	IsDevelopmentArea *bool   `json:"is_development_area"`
	Tags              *string `json:"tags"`
}

// CreateSkill adds a skill to the caller's inventory. Skill names are unique
// per user, case-insensitively.
func CreateSkill(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidSkillCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill category"})
		return
	}
	if !models.ValidCompetencyLevel(req.CompetencyLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competency level"})
		return
	}

	name := utils.SanitizeInput(req.Name)

	var existing int64
	config.DB.Model(&models.Skill{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", user.UserID, name).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Skill with this name already exists"})
		return
	}

	skill := models.Skill{
		UserID:            user.UserID,
		Name:              name,
		Category:          req.Category,
		CompetencyLevel:   req.CompetencyLevel,
		Description:       req.Description,
		IsDevelopmentArea: req.IsDevelopmentArea,
		Tags:              req.Tags,
		CreatedAt:         time.Now(),
	}
	if err := config.DB.Create(&skill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create skill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "skill": skill})
}

// GetSkills lists the caller's skills, optionally filtered by category,
// competency level, or development-area flag.
func GetSkills(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	query := config.DB.Where("user_id = ?", user.UserID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("competency_level = ?", level)
	}
	if raw := c.Query("development_area"); raw != "" {
		query = query.Where("is_development_area = ?", raw == "true")
	}

	var skills []models.Skill
	if err := query.Order("name ASC").Find(&skills).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills, "total": len(skills)})
}

// UpdateSkill edits one of the caller's skills.
func UpdateSkill(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill ID"})
		return
	}

	var skill models.Skill
	if err := config.DB.First(&skill, "skill_id = ? AND user_id = ?", skillID, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}

	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Skill name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if req.Category != nil {
		if !models.ValidSkillCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill category"})
			return
		}
		updates["category"] = *req.Category
	}
	if req.CompetencyLevel != nil {
		if !models.ValidCompetencyLevel(*req.CompetencyLevel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competency level"})
			return
		}
		updates["competency_level"] = *req.CompetencyLevel
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsDevelopmentArea != nil {
		updates["is_development_area"] = *req.IsDevelopmentArea
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := config.DB.Model(&models.Skill{}).
			Where("skill_id = ?", skillID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update skill"})
			return
		}
	}

	var updated models.Skill
	if err := config.DB.First(&updated, "skill_id = ?", skillID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "skill": updated})
}

// DeleteSkill removes one of the caller's skills.
func DeleteSkill(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill ID"})
		return
	}

	result := config.DB.Where("skill_id = ? AND user_id = ?", skillID, user.UserID).
		Delete(&models.Skill{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete skill"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Skill deleted"})
}
