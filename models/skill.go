package models

import "time"

// Competency levels
const (
	CompetencyBeginner     = "beginner"
	CompetencyIntermediate = "intermediate"
	CompetencyExpert       = "expert"
)

// Skill categories
const (
	SkillCategoryTechnical       = "technical"
	SkillCategorySoftSkills      = "soft_skills"
	SkillCategoryLeadership      = "leadership"
	SkillCategoryDomainKnowledge = "domain_knowledge"
	SkillCategoryTools           = "tools"
)

type Skill struct {
	SkillID           int        `gorm:"primaryKey;column:skill_id" json:"skill_id"`
	UserID            int        `gorm:"column:user_id" json:"user_id"`
	Name              string     `gorm:"column:name" json:"name"`
	Category          string     `gorm:"column:category" json:"category"`
	CompetencyLevel   string     `gorm:"column:competency_level" json:"competency_level"`
	Description       *string    `gorm:"column:description" json:"description,omitempty"`
	IsDevelopmentArea bool       `gorm:"column:is_development_area" json:"is_development_area"`
	Tags              *string    `gorm:"column:tags" json:"tags,omitempty"` // comma-separated
	CreatedAt         time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Skill) TableName() string {
	return "skills"
}

// ValidSkillCategory reports whether category is one of the known values.
func ValidSkillCategory(category string) bool {
	switch category {
	case SkillCategoryTechnical, SkillCategorySoftSkills, SkillCategoryLeadership,
		SkillCategoryDomainKnowledge, SkillCategoryTools:
		return true
	}
	return false
}

// ValidCompetencyLevel reports whether level is one of the known values.
func ValidCompetencyLevel(level string) bool {
	switch level {
	case CompetencyBeginner, CompetencyIntermediate, CompetencyExpert:
		return true
	}
	return false
}
