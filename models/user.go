package models

import (
	"time"
)

// User roles
const (
	RoleEmployee = "employee"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

type User struct {
	UserID                 int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	EmployeeID             *string    `gorm:"column:employee_id;unique" json:"employee_id,omitempty"`
	Name                   string     `gorm:"column:name" json:"name"`
	Email                  string     `gorm:"column:email;unique" json:"email"`
	PasswordHash           string     `gorm:"column:password_hash" json:"-"`
	Role                   string     `gorm:"column:role" json:"role"` // employee|reviewer|admin
	Department             *string    `gorm:"column:department" json:"department,omitempty"`
	ManagerID              *int       `gorm:"column:manager_id" json:"manager_id,omitempty"`
	AppraiserID            *int       `gorm:"column:appraiser_id" json:"appraiser_id,omitempty"`
	Title                  *string    `gorm:"column:title" json:"title,omitempty"`
	Phone                  *string    `gorm:"column:phone" json:"phone,omitempty"`
	ProfilePicture         *string    `gorm:"column:profile_picture" json:"profile_picture,omitempty"`
	TotalExperienceYears   *int       `gorm:"column:total_experience_years" json:"total_experience_years,omitempty"`
	CompanyExperienceYears *int       `gorm:"column:company_experience_years" json:"company_experience_years,omitempty"`
	IsActive               bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt              time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt              *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsReviewer reports whether the user holds the reviewer role.
func (u *User) IsReviewer() bool {
	return u.Role == RoleReviewer
}

// UserSession stores an issued refresh token for one device.
type UserSession struct {
	SessionID    string     `gorm:"primaryKey;column:session_id" json:"session_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	RefreshToken string     `gorm:"column:refresh_token" json:"-"`
	UserAgent    *string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	ExpiresAt    time.Time  `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	RevokedAt    *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
