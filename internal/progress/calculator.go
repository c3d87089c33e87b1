package progress

import (
	"errors"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyCalculator computes one member's completion percentage for one room
// on one calendar day, combining personal goals and shared room goals.
type DailyCalculator struct {
	db    *gorm.DB
	store *Store
}

func NewDailyCalculator(db *gorm.DB) *DailyCalculator {
	return &DailyCalculator{db: db, store: NewStore(db)}
}

// Recalculate computes the member's percentage for date and writes it back
// onto the day's DailyProgress record if one exists. Missing records count
// as zero completions and are never created here. A zero goal denominator
// yields 0, never an error.
func (c *DailyCalculator) Recalculate(userID, roomID uuid.UUID, date string) (float64, error) {
	personal, err := c.store.ActivePersonalGoals(userID, roomID)
	if err != nil {
		return 0, err
	}
	shared, err := c.store.ActiveSharedGoals(roomID)
	if err != nil {
		return 0, err
	}
	totalGoals := len(personal) + len(shared)

	var record models.DailyProgress
	haveRecord := true
	err = c.db.
		Where("user_id = ? AND room_id = ? AND date = ?", userID, roomID, date).
		Preload("Completions").
		First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		haveRecord = false
	}

	// Inactive goals stay out of both sides of the ratio.
	completed := 0
	if haveRecord {
		active := goalIDSet(personal)
		for _, gc := range record.Completions {
			if gc.Completed && active[gc.GoalID] {
				completed++
			}
		}
	}

	sharedCompleted, err := c.sharedCompletedFor(userID, roomID, date, shared)
	if err != nil {
		return 0, err
	}
	completed += sharedCompleted

	pct := 0.0
	if totalGoals > 0 {
		pct = float64(completed) / float64(totalGoals) * 100
	}

	if haveRecord {
		record.DailyPercentage = pct
		if err := c.db.Model(&record).Update("daily_percentage", pct).Error; err != nil {
			return 0, err
		}
	}
	return pct, nil
}

// sharedCompletedFor counts this member's completed entries in the room's
// day record, filtered to currently active shared goals.
func (c *DailyCalculator) sharedCompletedFor(userID, roomID uuid.UUID, date string, shared []models.Goal) (int, error) {
	var roomRecord models.RoomDailyProgress
	err := c.db.
		Where("room_id = ? AND date = ?", roomID, date).
		Preload("Completions").
		First(&roomRecord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	active := goalIDSet(shared)
	count := 0
	for _, entry := range roomRecord.Completions {
		if entry.UserID == userID && entry.Completed && active[entry.GoalID] {
			count++
		}
	}
	return count, nil
}

func goalIDSet(goals []models.Goal) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(goals))
	for _, g := range goals {
		set[g.ID] = true
	}
	return set
}
