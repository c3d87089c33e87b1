package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// inviteCodeBytes yields 12 hex characters, short enough to share by hand.
const inviteCodeBytes = 6

type RoomInvite struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID     uuid.UUID      `json:"roomId" gorm:"type:uuid;index;not null"`
	InviterID  uuid.UUID      `json:"inviterId" gorm:"type:uuid;not null"`
	InviteCode string         `json:"inviteCode" gorm:"uniqueIndex;not null"`
	ExpiresAt  *time.Time     `json:"expiresAt"`
	MaxUses    int            `json:"maxUses" gorm:"default:0"` // 0 = unlimited
	UsedCount  int            `json:"usedCount" gorm:"default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ri *RoomInvite) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	if ri.InviteCode == "" {
		code, err := generateInviteCode()
		if err != nil {
			return err
		}
		ri.InviteCode = code
	}
	return nil
}

// Expired reports whether the invite's deadline has passed.
func (ri *RoomInvite) Expired() bool {
	return ri.ExpiresAt != nil && time.Now().After(*ri.ExpiresAt)
}

// Exhausted reports whether the invite has been redeemed its maximum
// number of times.
func (ri *RoomInvite) Exhausted() bool {
	return ri.MaxUses > 0 && ri.UsedCount >= ri.MaxUses
}

// IsValid checks if the invite can still admit a new member.
func (ri *RoomInvite) IsValid() bool {
	return !ri.Expired() && !ri.Exhausted()
}

func generateInviteCode() (string, error) {
	b := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type CreateInviteRequest struct {
	MaxUses   int `json:"maxUses"`   // 0 = unlimited
	ExpiresIn int `json:"expiresIn"` // hours, 0 = never
}
