package progress

import (
	"errors"
	"time"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the entry point for the progress engine: goal definition,
// completion toggles, weekly rollups, and week advancement. Every toggle is
// one transaction so a persistence failure never leaves a recomputed
// percentage without its matching summary update.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ToggleResult is returned by ToggleGoal.
type ToggleResult struct {
	DailyRecord   *models.DailyProgress   `json:"dailyRecord"`
	WeeklySummary *models.ProgressSummary `json:"weeklySummary"`
	WeekAdvanced  bool                    `json:"weekAdvanced"`
}

// SharedToggleResult is returned by ToggleSharedGoal.
type SharedToggleResult struct {
	RoomRecord        *models.RoomDailyProgress `json:"roomRecord"`
	RoomWeeklySummary *models.ProgressSummary   `json:"roomWeeklySummary"`
	WeekAdvanced      bool                      `json:"weekAdvanced"`
}

// DefineGoals creates a member's personal goal set for the current week.
func (s *Service) DefineGoals(userID, roomID uuid.UUID, labels []string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		goals, err = NewStore(tx).DefinePersonalGoals(userID, roomID, labels, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// DefineSharedGoals creates the room's shared goal set for the current week.
func (s *Service) DefineSharedGoals(roomID uuid.UUID, labels []string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		goals, err = NewStore(tx).DefineSharedGoals(roomID, labels, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// ToggleGoal flips one personal goal checkmark for day and recomputes the
// member's daily, weekly, and overall percentages.
func (s *Service) ToggleGoal(userID, roomID, goalID uuid.UUID, completed bool, day time.Time) (*ToggleResult, error) {
	date := DateKey(day)
	var result ToggleResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		err := tx.
			Where("id = ? AND room_id = ? AND user_id = ? AND scope = ? AND is_active = ?",
				goalID, roomID, userID, models.ScopePersonal, true).
			First(&goal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoalNotFound
			}
			return err
		}

		record, err := findOrCreateDaily(tx, userID, roomID, date)
		if err != nil {
			return err
		}

		var entry models.GoalCompletion
		err = tx.
			Where("daily_progress_id = ? AND goal_id = ?", record.ID, goalID).
			First(&entry).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = models.GoalCompletion{
				DailyProgressID: record.ID,
				GoalID:          goalID,
				Completed:       completed,
			}
			err = tx.Create(&entry).Error
		case err == nil:
			entry.Completed = completed
			err = tx.Save(&entry).Error
		}
		if err != nil {
			return err
		}

		if _, err := NewDailyCalculator(tx).Recalculate(userID, roomID, date); err != nil {
			return err
		}

		summary, err := findOrCreateSummary(tx, roomID, &userID)
		if err != nil {
			return err
		}
		src := MemberDaily{DB: tx, UserID: userID, RoomID: roomID}
		if err := NewTracker(tx).Update(summary, src, day); err != nil {
			return err
		}
		advanced, err := NewAdvancer(tx).Evaluate(summary, src, day)
		if err != nil {
			return err
		}

		var full models.DailyProgress
		if err := tx.Where("id = ?", record.ID).Preload("Completions").First(&full).Error; err != nil {
			return err
		}

		result = ToggleResult{
			DailyRecord:   &full,
			WeeklySummary: summary,
			WeekAdvanced:  advanced,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleSharedGoal flips one member's checkmark on a shared goal and
// recomputes the room's daily, weekly, and overall percentages.
func (s *Service) ToggleSharedGoal(roomID, goalID, userID uuid.UUID, completed bool, day time.Time) (*SharedToggleResult, error) {
	date := DateKey(day)
	var result SharedToggleResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := NewRoomAggregator(tx).Toggle(roomID, goalID, userID, completed, date)
		if err != nil {
			return err
		}

		summary, err := findOrCreateSummary(tx, roomID, nil)
		if err != nil {
			return err
		}
		src := RoomDaily{DB: tx, RoomID: roomID}
		if err := NewTracker(tx).Update(summary, src, day); err != nil {
			return err
		}
		advanced, err := NewAdvancer(tx).Evaluate(summary, src, day)
		if err != nil {
			return err
		}

		result = SharedToggleResult{
			RoomRecord:        record,
			RoomWeeklySummary: summary,
			WeekAdvanced:      advanced,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary returns the progress summary for a scope, creating an empty one
// on first read. Pass a nil userID for the room scope.
func (s *Service) Summary(roomID uuid.UUID, userID *uuid.UUID) (*models.ProgressSummary, error) {
	summary, err := findOrCreateSummary(s.db, roomID, userID)
	if err != nil {
		return nil, err
	}
	err = s.db.
		Where("summary_id = ?", summary.ID).
		Order("week ASC").
		Find(&summary.WeeklyPercentages).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DailyPercentage recomputes and returns a member's percentage for one day.
func (s *Service) DailyPercentage(userID, roomID uuid.UUID, day time.Time) (float64, error) {
	return NewDailyCalculator(s.db).Recalculate(userID, roomID, DateKey(day))
}

func findOrCreateDaily(tx *gorm.DB, userID, roomID uuid.UUID, date string) (*models.DailyProgress, error) {
	var record models.DailyProgress
	err := tx.
		Where("user_id = ? AND room_id = ? AND date = ?", userID, roomID, date).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.DailyProgress{UserID: userID, RoomID: roomID, Date: date}
		err = tx.Create(&record).Error
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func findOrCreateSummary(tx *gorm.DB, roomID uuid.UUID, userID *uuid.UUID) (*models.ProgressSummary, error) {
	scope := models.SummaryScopeRoom
	q := tx.Where("room_id = ?", roomID)
	if userID != nil {
		scope = models.SummaryScopeMember
		q = q.Where("user_id = ?", *userID)
	}

	var summary models.ProgressSummary
	err := q.Where("scope = ?", scope).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		summary = models.ProgressSummary{
			RoomID:      roomID,
			UserID:      userID,
			Scope:       scope,
			CurrentWeek: 1,
			TotalWeeks:  12,
		}
		err = tx.Create(&summary).Error
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
