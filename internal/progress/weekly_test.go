package progress

import (
	"testing"

	"github.com/arnold/roomgoals-api/internal/models"
)

func TestTrackerMeansCurrentWindow(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]

	seedDaily(t, db, userID, roomID, testSunday, 100)
	seedDaily(t, db, userID, roomID, testMonday, 50)
	seedDaily(t, db, userID, roomID, testWednesday, 0)

	summary, err := findOrCreateSummary(db, roomID, &userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	src := MemberDaily{DB: db, UserID: userID, RoomID: roomID}
	if err := NewTracker(db).Update(summary, src, testWednesday); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(summary.WeeklyPercentages) != 1 {
		t.Fatalf("got %d weekly entries, want 1", len(summary.WeeklyPercentages))
	}
	if !almostEqual(summary.WeeklyPercentages[0].Percentage, 50) {
		t.Errorf("week pct = %v, want 50", summary.WeeklyPercentages[0].Percentage)
	}
	if !almostEqual(summary.OverallPercentage, 50) {
		t.Errorf("overall = %v, want 50", summary.OverallPercentage)
	}
}

func TestTrackerUpsertsSingleEntryPerWeek(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]

	seedDaily(t, db, userID, roomID, testMonday, 40)

	summary, err := findOrCreateSummary(db, roomID, &userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	src := MemberDaily{DB: db, UserID: userID, RoomID: roomID}
	tracker := NewTracker(db)

	for i := 0; i < 5; i++ {
		if err := tracker.Update(summary, src, testMonday); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&models.WeeklyPercentage{}).Where("summary_id = ?", summary.ID).Count(&count)
	if count != 1 {
		t.Errorf("got %d entries for week 1, want 1", count)
	}
}

func TestTrackerOverallIsMeanOfAllWeeks(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]

	summary, err := findOrCreateSummary(db, roomID, &userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	src := MemberDaily{DB: db, UserID: userID, RoomID: roomID}
	tracker := NewTracker(db)

	// Week 1: a single 80% day.
	seedDaily(t, db, userID, roomID, testMonday, 80)
	if err := tracker.Update(summary, src, testMonday); err != nil {
		t.Fatalf("week 1 update: %v", err)
	}

	// Week 2: a single 40% day.
	week2Day := testMonday.AddDate(0, 0, 7)
	seedDaily(t, db, userID, roomID, week2Day, 40)
	summary.CurrentWeek = 2
	if err := db.Model(summary).Update("current_week", 2).Error; err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := tracker.Update(summary, src, week2Day); err != nil {
		t.Fatalf("week 2 update: %v", err)
	}

	if len(summary.WeeklyPercentages) != 2 {
		t.Fatalf("got %d weekly entries, want 2", len(summary.WeeklyPercentages))
	}
	if !almostEqual(summary.OverallPercentage, 60) {
		t.Errorf("overall = %v, want 60", summary.OverallPercentage)
	}
}

func TestTrackerEmptyWindowIsZero(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]

	summary, err := findOrCreateSummary(db, roomID, &userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	src := MemberDaily{DB: db, UserID: userID, RoomID: roomID}
	if err := NewTracker(db).Update(summary, src, testMonday); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(summary.WeeklyPercentages) != 1 || summary.WeeklyPercentages[0].Percentage != 0 {
		t.Errorf("empty window should record 0, got %+v", summary.WeeklyPercentages)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]

	seedDaily(t, db, userID, roomID, testMonday, 75)

	summary, err := findOrCreateSummary(db, roomID, &userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	src := MemberDaily{DB: db, UserID: userID, RoomID: roomID}
	if err := NewTracker(db).Update(summary, src, testMonday); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var reloaded models.ProgressSummary
	err = db.Where("id = ?", summary.ID).Preload("WeeklyPercentages").First(&reloaded).Error
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if reloaded.OverallPercentage != summary.OverallPercentage {
		t.Errorf("overall: reloaded %v, want %v", reloaded.OverallPercentage, summary.OverallPercentage)
	}
	if len(reloaded.WeeklyPercentages) != len(summary.WeeklyPercentages) {
		t.Fatalf("weekly entries: reloaded %d, want %d", len(reloaded.WeeklyPercentages), len(summary.WeeklyPercentages))
	}
	for i := range reloaded.WeeklyPercentages {
		if reloaded.WeeklyPercentages[i].Percentage != summary.WeeklyPercentages[i].Percentage {
			t.Errorf("week %d: reloaded %v, want %v",
				reloaded.WeeklyPercentages[i].Week,
				reloaded.WeeklyPercentages[i].Percentage,
				summary.WeeklyPercentages[i].Percentage)
		}
	}
}
