package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Summary scopes
const (
	SummaryScopeMember = "member"
	SummaryScopeRoom   = "room"
)

// ProgressSummary tracks week-by-week percentages for one scope: a member
// within a room (UserID set) or the room as a whole (UserID nil).
type ProgressSummary struct {
	ID                uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID            uuid.UUID          `json:"roomId" gorm:"type:uuid;not null;index:idx_summary_scope"`
	UserID            *uuid.UUID         `json:"userId" gorm:"type:uuid;index:idx_summary_scope"`
	Scope             string             `json:"scope" gorm:"not null;index:idx_summary_scope"` // member, room
	CurrentWeek       int                `json:"currentWeek" gorm:"not null;default:1"`
	TotalWeeks        int                `json:"totalWeeks" gorm:"not null;default:12"`
	OverallPercentage float64            `json:"overallPercentage" gorm:"default:0"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt     `json:"-" gorm:"index"`
	WeeklyPercentages []WeeklyPercentage `json:"weeklyPercentages,omitempty" gorm:"foreignKey:SummaryID"`
}

func (ps *ProgressSummary) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}

// WeeklyPercentage is one week's rollup inside a summary. At most one row
// per week number per summary.
type WeeklyPercentage struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	SummaryID  uuid.UUID      `json:"summaryId" gorm:"type:uuid;not null;uniqueIndex:idx_summary_week"`
	Week       int            `json:"week" gorm:"not null;uniqueIndex:idx_summary_week"`
	Percentage float64        `json:"percentage" gorm:"default:0"`
	RecordedAt time.Time      `json:"recordedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (wp *WeeklyPercentage) BeforeCreate(tx *gorm.DB) error {
	if wp.ID == uuid.Nil {
		wp.ID = uuid.New()
	}
	return nil
}
