package progress

import (
	"time"

	"github.com/arnold/roomgoals-api/internal/models"
	"gorm.io/gorm"
)

// Advancer gates automatic advancement through the program weeks. The
// current week only moves forward and stops at the summary's total.
type Advancer struct {
	db *gorm.DB
}

func NewAdvancer(db *gorm.DB) *Advancer {
	return &Advancer{db: db}
}

// Evaluate runs after every completion toggle. The week advances when today
// is a Sunday, the program has weeks left, and the current window holds at
// least 7 daily records.
//
// The window starts at the most recent Sunday, and the guard only fires on
// a Sunday, so the window it sees is that single day; with one record per
// day the 7-record requirement cannot be met. TODO: confirm with product
// whether the window should be the 7 days before today instead.
func (a *Advancer) Evaluate(summary *models.ProgressSummary, src DailySource, today time.Time) (bool, error) {
	if today.Weekday() != time.Sunday {
		return false, nil
	}
	if summary.CurrentWeek >= summary.TotalWeeks {
		return false, nil
	}

	pcts, err := src.DailyPercentages(WeekStartKey(today), DateKey(today))
	if err != nil {
		return false, err
	}
	if len(pcts) < 7 {
		return false, nil
	}

	summary.CurrentWeek++
	return true, a.db.Model(summary).Update("current_week", summary.CurrentWeek).Error
}
