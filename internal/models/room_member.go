package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomMember struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID      `json:"roomId" gorm:"type:uuid;index;not null;uniqueIndex:idx_room_user"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null;uniqueIndex:idx_room_user"`
	Role      string         `json:"role" gorm:"not null;default:'member'"` // admin, member
	JoinedAt  time.Time      `json:"joinedAt"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations (for preloading)
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (rm *RoomMember) BeforeCreate(tx *gorm.DB) error {
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	if rm.JoinedAt.IsZero() {
		rm.JoinedAt = time.Now()
	}
	return nil
}
