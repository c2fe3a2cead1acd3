package models

import (
	"time"
)

type Role string

const (
	RoleEmployee       Role = "EMPLOYEE"
	RoleTeamLead       Role = "TEAM_LEAD"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleAdministrator  Role = "ADMINISTRATOR"
)

// tier ranks a role in the authorization ladder. Unknown roles rank
// below Employee so a corrupted value never grants access.
func (r Role) tier() int {
	switch r {
	case RoleEmployee:
		return 1
	case RoleTeamLead:
		return 2
	case RoleProjectManager:
		return 3
	case RoleAdministrator:
		return 4
	default:
		return 0
	}
}

// Satisfies reports whether the role meets the given minimum tier.
// Each tier is also satisfied by any higher tier.
func (r Role) Satisfies(min Role) bool {
	return r.tier() > 0 && r.tier() >= min.tier()
}

type AvailabilityStatus string

const (
	StatusAvailable    AvailabilityStatus = "AVAILABLE"
	StatusBusy         AvailabilityStatus = "BUSY"
	StatusAway         AvailabilityStatus = "AWAY"
	StatusDoNotDisturb AvailabilityStatus = "DO_NOT_DISTURB"
	StatusOffline      AvailabilityStatus = "OFFLINE"
)

type User struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time          `json:"created_at"`
	LastLoginAt        *time.Time         `json:"last_login_at"`
	Email              string             `gorm:"uniqueIndex;not null;size:255" json:"email"`
	DisplayName        string             `gorm:"not null;size:200" json:"display_name"`
	Role               Role               `gorm:"not null;size:20" json:"role"`
	Availability       AvailabilityStatus `gorm:"not null;size:20" json:"availability"`
	Department         string             `gorm:"size:100" json:"department"`
	JobTitle           string             `gorm:"size:100" json:"job_title"`
	PhoneNumber        string             `gorm:"size:30" json:"phone_number"`
	PhotoURL           string             `gorm:"size:500" json:"photo_url"`
	EmailNotifications bool               `gorm:"default:true" json:"email_notifications"`
	InAppNotifications bool               `gorm:"default:true" json:"in_app_notifications"`
	ManagedProjects    []Project          `gorm:"foreignKey:ManagerID" json:"managed_projects,omitempty"`
	Memberships        []ProjectMember    `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Notifications      []Notification     `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

func (u *User) CanManageProjects() bool {
	return u.Role.Satisfies(RoleProjectManager)
}
