package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomDailyProgress holds the shared-goal completion ledger for one room on
// one calendar day, across all members.
type RoomDailyProgress struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID          uuid.UUID            `json:"roomId" gorm:"type:uuid;not null;uniqueIndex:idx_room_date"`
	Date            string               `json:"date" gorm:"size:10;not null;uniqueIndex:idx_room_date"`
	DailyPercentage float64              `json:"dailyPercentage" gorm:"default:0"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt       `json:"-" gorm:"index"`
	Completions     []RoomGoalCompletion `json:"completions,omitempty" gorm:"foreignKey:RoomDailyProgressID"`
}

func (rdp *RoomDailyProgress) BeforeCreate(tx *gorm.DB) error {
	if rdp.ID == uuid.Nil {
		rdp.ID = uuid.New()
	}
	return nil
}

// RoomGoalCompletion is one member's checkmark on one shared goal.
type RoomGoalCompletion struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	RoomDailyProgressID uuid.UUID      `json:"roomDailyProgressId" gorm:"type:uuid;not null;uniqueIndex:idx_room_daily_goal_user"`
	GoalID              uuid.UUID      `json:"goalId" gorm:"type:uuid;not null;uniqueIndex:idx_room_daily_goal_user"`
	UserID              uuid.UUID      `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_room_daily_goal_user"`
	Completed           bool           `json:"completed" gorm:"default:false"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

func (rgc *RoomGoalCompletion) BeforeCreate(tx *gorm.DB) error {
	if rgc.ID == uuid.Nil {
		rgc.ID = uuid.New()
	}
	return nil
}
