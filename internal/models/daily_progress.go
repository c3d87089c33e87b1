package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyProgress holds one member's completions for one room on one
// calendar day. Date is a YYYY-MM-DD key so day equality and week windows
// are plain string comparisons.
type DailyProgress struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_room_date"`
	RoomID          uuid.UUID        `json:"roomId" gorm:"type:uuid;not null;uniqueIndex:idx_user_room_date"`
	Date            string           `json:"date" gorm:"size:10;not null;uniqueIndex:idx_user_room_date"`
	DailyPercentage float64          `json:"dailyPercentage" gorm:"default:0"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt   `json:"-" gorm:"index"`
	Completions     []GoalCompletion `json:"completions,omitempty" gorm:"foreignKey:DailyProgressID"`
}

func (dp *DailyProgress) BeforeCreate(tx *gorm.DB) error {
	if dp.ID == uuid.Nil {
		dp.ID = uuid.New()
	}
	return nil
}

// GoalCompletion is one checkmark inside a DailyProgress record.
type GoalCompletion struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	DailyProgressID uuid.UUID      `json:"dailyProgressId" gorm:"type:uuid;not null;uniqueIndex:idx_daily_goal"`
	GoalID          uuid.UUID      `json:"goalId" gorm:"type:uuid;not null;uniqueIndex:idx_daily_goal"`
	Completed       bool           `json:"completed" gorm:"default:false"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (gc *GoalCompletion) BeforeCreate(tx *gorm.DB) error {
	if gc.ID == uuid.Nil {
		gc.ID = uuid.New()
	}
	return nil
}
