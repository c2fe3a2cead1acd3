package models

import (
	"time"
)

type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Name        string          `gorm:"not null;size:200" json:"name"`
	Description string          `gorm:"size:2000" json:"description"`
	Status      string          `gorm:"size:50" json:"status"`
	ManagerID   uint            `gorm:"not null;index" json:"manager_id"`
	Manager     *User           `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	TargetDate  *time.Time      `json:"target_date"`
	Tasks       []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}
