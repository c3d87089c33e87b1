package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal scopes
const (
	ScopePersonal = "personal"
	ScopeShared   = "shared"
)

// Goal is a single daily goal. Personal goals belong to one member of a
// room (UserID set); shared goals belong to the room as a whole (UserID nil).
type Goal struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID      `json:"roomId" gorm:"type:uuid;index;not null"`
	UserID    *uuid.UUID     `json:"userId" gorm:"type:uuid;index"`
	Scope     string         `json:"scope" gorm:"not null;default:'personal'"` // personal, shared
	Label     string         `json:"label" gorm:"not null"`
	IsActive  bool           `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type DefineGoalsRequest struct {
	Labels []string `json:"labels" validate:"required,min=1,max=5"`
}

type ToggleGoalRequest struct {
	Completed bool   `json:"completed"`
	Date      string `json:"date"` // YYYY-MM-DD, defaults to today
}
