package progress

import (
	"errors"
	"time"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailySource yields the daily percentages recorded for one scope inside an
// inclusive day-key window. The member and room scopes roll up through the
// same Tracker; only the source differs.
type DailySource interface {
	DailyPercentages(from, to string) ([]float64, error)
}

// MemberDaily sources one member's per-day percentages for one room.
type MemberDaily struct {
	DB     *gorm.DB
	UserID uuid.UUID
	RoomID uuid.UUID
}

func (m MemberDaily) DailyPercentages(from, to string) ([]float64, error) {
	var pcts []float64
	err := m.DB.Model(&models.DailyProgress{}).
		Where("user_id = ? AND room_id = ? AND date BETWEEN ? AND ?", m.UserID, m.RoomID, from, to).
		Order("date ASC").
		Pluck("daily_percentage", &pcts).Error
	return pcts, err
}

// RoomDaily sources a room's per-day shared-goal percentages.
type RoomDaily struct {
	DB     *gorm.DB
	RoomID uuid.UUID
}

func (r RoomDaily) DailyPercentages(from, to string) ([]float64, error) {
	var pcts []float64
	err := r.DB.Model(&models.RoomDailyProgress{}).
		Where("room_id = ? AND date BETWEEN ? AND ?", r.RoomID, from, to).
		Order("date ASC").
		Pluck("daily_percentage", &pcts).Error
	return pcts, err
}

// Tracker rolls the current week's daily percentages into the summary's
// weekly history and recomputes the overall mean. It runs in full on every
// completion toggle; the history is small enough (≤12 rows) that nothing is
// maintained incrementally.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// Update upserts the entry for summary.CurrentWeek from the window between
// the most recent Sunday and today, then recomputes the overall percentage
// as the mean of all recorded weeks. summary is refreshed in place.
func (t *Tracker) Update(summary *models.ProgressSummary, src DailySource, today time.Time) error {
	pcts, err := src.DailyPercentages(WeekStartKey(today), DateKey(today))
	if err != nil {
		return err
	}
	weekPct := mean(pcts)

	var entry models.WeeklyPercentage
	err = t.db.
		Where("summary_id = ? AND week = ?", summary.ID, summary.CurrentWeek).
		First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.WeeklyPercentage{
			SummaryID:  summary.ID,
			Week:       summary.CurrentWeek,
			Percentage: weekPct,
			RecordedAt: today,
		}
		err = t.db.Create(&entry).Error
	case err == nil:
		entry.Percentage = weekPct
		entry.RecordedAt = today
		err = t.db.Save(&entry).Error
	}
	if err != nil {
		return err
	}

	var weeks []models.WeeklyPercentage
	err = t.db.
		Where("summary_id = ?", summary.ID).
		Order("week ASC").
		Find(&weeks).Error
	if err != nil {
		return err
	}

	total := 0.0
	for _, w := range weeks {
		total += w.Percentage
	}
	overall := 0.0
	if len(weeks) > 0 {
		overall = total / float64(len(weeks))
	}

	summary.WeeklyPercentages = weeks
	summary.OverallPercentage = overall
	return t.db.Model(summary).Update("overall_percentage", overall).Error
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}
