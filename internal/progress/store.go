package progress

import (
	"time"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxGoalsPerSubmission caps how many goals one submission may define.
const MaxGoalsPerSubmission = 5

// Store is the read/write boundary for active goal sets. A scope is either
// one member within a room (personal goals) or the room itself (shared).
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ActivePersonalGoals returns a member's active goals for one room.
func (s *Store) ActivePersonalGoals(userID, roomID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.
		Where("room_id = ? AND user_id = ? AND scope = ? AND is_active = ?",
			roomID, userID, models.ScopePersonal, true).
		Order("created_at ASC").
		Find(&goals).Error
	return goals, err
}

// ActiveSharedGoals returns a room's active shared goals.
func (s *Store) ActiveSharedGoals(roomID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.
		Where("room_id = ? AND scope = ? AND is_active = ?",
			roomID, models.ScopeShared, true).
		Order("created_at ASC").
		Find(&goals).Error
	return goals, err
}

// DefinePersonalGoals creates a member's goal set for the current week.
// Rejected when any goal for the same scope was already created since the
// most recent Sunday.
func (s *Store) DefinePersonalGoals(userID, roomID uuid.UUID, labels []string, now time.Time) ([]models.Goal, error) {
	if err := checkLabels(labels); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Goal{}).
		Where("room_id = ? AND user_id = ? AND scope = ? AND created_at >= ?",
			roomID, userID, models.ScopePersonal, WeekStart(now)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrGoalsAlreadyDefined
	}

	goals := make([]models.Goal, len(labels))
	for i, label := range labels {
		uid := userID
		goals[i] = models.Goal{
			RoomID:   roomID,
			UserID:   &uid,
			Scope:    models.ScopePersonal,
			Label:    label,
			IsActive: true,
		}
	}
	if err := s.db.Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// DefineSharedGoals creates the room's shared goal set for the current week,
// under the same weekly-uniqueness rule.
func (s *Store) DefineSharedGoals(roomID uuid.UUID, labels []string, now time.Time) ([]models.Goal, error) {
	if err := checkLabels(labels); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Goal{}).
		Where("room_id = ? AND scope = ? AND created_at >= ?",
			roomID, models.ScopeShared, WeekStart(now)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrGoalsAlreadyDefined
	}

	goals := make([]models.Goal, len(labels))
	for i, label := range labels {
		goals[i] = models.Goal{
			RoomID:   roomID,
			Scope:    models.ScopeShared,
			Label:    label,
			IsActive: true,
		}
	}
	if err := s.db.Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func checkLabels(labels []string) error {
	if len(labels) == 0 {
		return ErrNoGoals
	}
	if len(labels) > MaxGoalsPerSubmission {
		return ErrTooManyGoals
	}
	return nil
}
