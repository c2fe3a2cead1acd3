package models

import (
	"time"
)

// Priority orders notifications for retrieval; it is stored as its
// integer rank so the database sorts by urgency directly.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Unknown"
	}
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	Message   string    `gorm:"size:2000" json:"message"`
	Link      string    `gorm:"size:500" json:"link"`
	Priority  Priority  `gorm:"not null" json:"priority"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
}
