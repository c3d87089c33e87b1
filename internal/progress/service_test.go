package progress

import (
	"errors"
	"testing"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
)

func TestToggleGoalFullFlow(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]
	svc := NewService(db)

	goals, err := svc.DefineGoals(userID, roomID, []string{"Read", "Run"})
	if err != nil {
		t.Fatalf("DefineGoals: %v", err)
	}

	result, err := svc.ToggleGoal(userID, roomID, goals[0].ID, true, testMonday)
	if err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}

	if result.DailyRecord.DailyPercentage != 50 {
		t.Errorf("daily pct = %v, want 50", result.DailyRecord.DailyPercentage)
	}
	if len(result.DailyRecord.Completions) != 1 {
		t.Errorf("got %d completions, want 1", len(result.DailyRecord.Completions))
	}
	if len(result.WeeklySummary.WeeklyPercentages) != 1 {
		t.Fatalf("got %d weekly entries, want 1", len(result.WeeklySummary.WeeklyPercentages))
	}
	if !almostEqual(result.WeeklySummary.WeeklyPercentages[0].Percentage, 50) {
		t.Errorf("week pct = %v, want 50", result.WeeklySummary.WeeklyPercentages[0].Percentage)
	}
	if !almostEqual(result.WeeklySummary.OverallPercentage, 50) {
		t.Errorf("overall = %v, want 50", result.WeeklySummary.OverallPercentage)
	}
	if result.WeekAdvanced {
		t.Error("week should not advance on a Monday toggle")
	}
}

func TestToggleGoalIdempotent(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]
	svc := NewService(db)

	goals, err := svc.DefineGoals(userID, roomID, []string{"Read", "Run"})
	if err != nil {
		t.Fatalf("DefineGoals: %v", err)
	}

	first, err := svc.ToggleGoal(userID, roomID, goals[0].ID, true, testMonday)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	second, err := svc.ToggleGoal(userID, roomID, goals[0].ID, true, testMonday)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if first.DailyRecord.DailyPercentage != second.DailyRecord.DailyPercentage {
		t.Errorf("pct changed on repeat toggle: %v then %v",
			first.DailyRecord.DailyPercentage, second.DailyRecord.DailyPercentage)
	}
	if len(second.DailyRecord.Completions) != 1 {
		t.Errorf("got %d completions, want 1", len(second.DailyRecord.Completions))
	}
}

func TestToggleGoalOffResetsPercentage(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]
	svc := NewService(db)

	goals, err := svc.DefineGoals(userID, roomID, []string{"Read"})
	if err != nil {
		t.Fatalf("DefineGoals: %v", err)
	}

	if _, err := svc.ToggleGoal(userID, roomID, goals[0].ID, true, testMonday); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	result, err := svc.ToggleGoal(userID, roomID, goals[0].ID, false, testMonday)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if result.DailyRecord.DailyPercentage != 0 {
		t.Errorf("pct = %v, want 0", result.DailyRecord.DailyPercentage)
	}
}

func TestToggleGoalRejectsUnknownGoal(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	svc := NewService(db)

	_, err := svc.ToggleGoal(users[0], roomID, uuid.New(), true, testMonday)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("got %v, want ErrGoalNotFound", err)
	}

	// Nothing was written on the rejected toggle.
	var count int64
	db.Model(&models.DailyProgress{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected toggle created %d daily records", count)
	}
}

func TestToggleGoalRejectsOtherMembersGoal(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 2)
	svc := NewService(db)

	goals, err := svc.DefineGoals(users[0], roomID, []string{"Read"})
	if err != nil {
		t.Fatalf("DefineGoals: %v", err)
	}

	_, err = svc.ToggleGoal(users[1], roomID, goals[0].ID, true, testMonday)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("got %v, want ErrGoalNotFound", err)
	}
}

func TestToggleSharedGoalFullFlow(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 2)
	svc := NewService(db)

	goals, err := svc.DefineSharedGoals(roomID, []string{"Walk", "Hydrate"})
	if err != nil {
		t.Fatalf("DefineSharedGoals: %v", err)
	}

	result, err := svc.ToggleSharedGoal(roomID, goals[0].ID, users[0], true, testMonday)
	if err != nil {
		t.Fatalf("ToggleSharedGoal: %v", err)
	}

	if result.RoomRecord.DailyPercentage != 25 {
		t.Errorf("room pct = %v, want 25", result.RoomRecord.DailyPercentage)
	}
	if result.RoomWeeklySummary.Scope != models.SummaryScopeRoom {
		t.Errorf("scope = %s, want room", result.RoomWeeklySummary.Scope)
	}
	if len(result.RoomWeeklySummary.WeeklyPercentages) != 1 {
		t.Fatalf("got %d weekly entries, want 1", len(result.RoomWeeklySummary.WeeklyPercentages))
	}
	if !almostEqual(result.RoomWeeklySummary.WeeklyPercentages[0].Percentage, 25) {
		t.Errorf("week pct = %v, want 25", result.RoomWeeklySummary.WeeklyPercentages[0].Percentage)
	}
}

func TestMemberAndRoomSummariesAreIndependent(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)
	userID := users[0]
	svc := NewService(db)

	personal, err := svc.DefineGoals(userID, roomID, []string{"Read"})
	if err != nil {
		t.Fatalf("DefineGoals: %v", err)
	}
	if _, err := svc.ToggleGoal(userID, roomID, personal[0].ID, true, testMonday); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}

	memberSummary, err := svc.Summary(roomID, &userID)
	if err != nil {
		t.Fatalf("member summary: %v", err)
	}
	roomSummary, err := svc.Summary(roomID, nil)
	if err != nil {
		t.Fatalf("room summary: %v", err)
	}

	if memberSummary.ID == roomSummary.ID {
		t.Error("member and room scopes should have separate summaries")
	}
	if len(roomSummary.WeeklyPercentages) != 0 {
		t.Errorf("room summary should be untouched by personal toggles, got %d entries",
			len(roomSummary.WeeklyPercentages))
	}
}

func TestSummaryDefaults(t *testing.T) {
	db := testDB(t)
	roomID, users := seedRoom(t, db, 1)

	summary, err := NewService(db).Summary(roomID, &users[0])
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.CurrentWeek != 1 {
		t.Errorf("currentWeek = %d, want 1", summary.CurrentWeek)
	}
	if summary.TotalWeeks != 12 {
		t.Errorf("totalWeeks = %d, want 12", summary.TotalWeeks)
	}
	if summary.OverallPercentage != 0 {
		t.Errorf("overall = %v, want 0", summary.OverallPercentage)
	}
}
