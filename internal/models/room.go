package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is the container for one 12-week goal program.
type Room struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"` // creator
	Title       string         `json:"title" gorm:"not null"`
	Description *string        `json:"description"`
	TotalWeeks  int            `json:"totalWeeks" gorm:"not null;default:12"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	Goals       []Goal         `json:"goals,omitempty" gorm:"foreignKey:RoomID"`
	Members     []RoomMember   `json:"members,omitempty" gorm:"foreignKey:RoomID"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Room DTOs
type CreateRoomRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

type RoomSummary struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	MemberCount       int       `json:"memberCount"`
	CurrentWeek       int       `json:"currentWeek"`
	TotalWeeks        int       `json:"totalWeeks"`
	OverallPercentage float64   `json:"overallPercentage"`
}
