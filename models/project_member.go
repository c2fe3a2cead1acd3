package models

import (
	"time"
)

// ProjectMember links a user to a project with a project-local role string
// (not a tier). The composite unique index is the real duplicate guard:
// the existence check in the service is only there for a friendly answer,
// concurrent inserts for the same pair fall back on the constraint.
type ProjectMember struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role       string    `gorm:"not null;size:50" json:"role"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
}
