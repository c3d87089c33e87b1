package progress

import (
	"errors"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomAggregator maintains the per-member completion ledger for shared
// goals and computes the room-wide daily percentage from it.
//
// Concurrent toggles against the same room race at the save; the last
// writer wins. Each toggle is atomic but toggles are not serialized.
type RoomAggregator struct {
	db    *gorm.DB
	store *Store
}

func NewRoomAggregator(db *gorm.DB) *RoomAggregator {
	return &RoomAggregator{db: db, store: NewStore(db)}
}

// Toggle sets one member's checkmark on one shared goal for date and
// recomputes the room percentage. Unresolvable goal or non-member user is
// an explicit rejection. Returns the full updated day record.
func (a *RoomAggregator) Toggle(roomID, goalID, userID uuid.UUID, completed bool, date string) (*models.RoomDailyProgress, error) {
	var goal models.Goal
	err := a.db.
		Where("id = ? AND room_id = ? AND scope = ? AND is_active = ?",
			goalID, roomID, models.ScopeShared, true).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	var member models.RoomMember
	err = a.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	record, err := a.findOrCreateRecord(roomID, date)
	if err != nil {
		return nil, err
	}

	var entry models.RoomGoalCompletion
	err = a.db.
		Where("room_daily_progress_id = ? AND goal_id = ? AND user_id = ?",
			record.ID, goalID, userID).
		First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.RoomGoalCompletion{
			RoomDailyProgressID: record.ID,
			GoalID:              goalID,
			UserID:              userID,
			Completed:           completed,
		}
		err = a.db.Create(&entry).Error
	case err == nil:
		entry.Completed = completed
		err = a.db.Save(&entry).Error
	}
	if err != nil {
		return nil, err
	}

	if err := a.Recalculate(roomID, record); err != nil {
		return nil, err
	}

	// Callers get the whole record, entries included.
	var full models.RoomDailyProgress
	if err := a.db.Where("id = ?", record.ID).Preload("Completions").First(&full).Error; err != nil {
		return nil, err
	}
	return &full, nil
}

// Recalculate recomputes the room percentage over the full cross-product of
// active shared goals and members. Absent entries count as not completed.
func (a *RoomAggregator) Recalculate(roomID uuid.UUID, record *models.RoomDailyProgress) error {
	shared, err := a.store.ActiveSharedGoals(roomID)
	if err != nil {
		return err
	}

	var members []models.RoomMember
	if err := a.db.Where("room_id = ?", roomID).Find(&members).Error; err != nil {
		return err
	}

	totalPossible := len(shared) * len(members)

	var completions []models.RoomGoalCompletion
	err = a.db.
		Where("room_daily_progress_id = ? AND completed = ?", record.ID, true).
		Find(&completions).Error
	if err != nil {
		return err
	}

	activeGoals := goalIDSet(shared)
	activeMembers := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		activeMembers[m.UserID] = true
	}

	totalCompletions := 0
	for _, entry := range completions {
		if activeGoals[entry.GoalID] && activeMembers[entry.UserID] {
			totalCompletions++
		}
	}

	pct := 0.0
	if totalPossible > 0 {
		pct = float64(totalCompletions) / float64(totalPossible) * 100
	}

	record.DailyPercentage = pct
	return a.db.Model(record).Update("daily_percentage", pct).Error
}

func (a *RoomAggregator) findOrCreateRecord(roomID uuid.UUID, date string) (*models.RoomDailyProgress, error) {
	var record models.RoomDailyProgress
	err := a.db.Where("room_id = ? AND date = ?", roomID, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.RoomDailyProgress{RoomID: roomID, Date: date}
		err = a.db.Create(&record).Error
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
