package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fixed reference days: 2025-01-05 is a Sunday.
var (
	testSunday    = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	testMonday    = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	testWednesday = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	testSaturday  = time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)
)

// testDB opens an isolated in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.RoomInvite{},
		&models.Goal{},
		&models.DailyProgress{},
		&models.GoalCompletion{},
		&models.RoomDailyProgress{},
		&models.RoomGoalCompletion{},
		&models.ProgressSummary{},
		&models.WeeklyPercentage{},
		&models.Activity{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedRoom creates a room with memberCount members (the first one is the
// admin) and returns the room ID and member user IDs.
func seedRoom(t *testing.T, db *gorm.DB, memberCount int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	if memberCount < 1 {
		t.Fatalf("seedRoom needs at least one member")
	}

	admin := models.User{Email: uuid.NewString() + "@example.com", Name: "Admin"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	room := models.Room{UserID: admin.ID, Title: "Test Room", TotalWeeks: 12}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	userIDs := []uuid.UUID{admin.ID}
	members := []models.RoomMember{{RoomID: room.ID, UserID: admin.ID, Role: "admin"}}
	for i := 1; i < memberCount; i++ {
		user := models.User{Email: uuid.NewString() + "@example.com", Name: fmt.Sprintf("Member %d", i)}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("failed to create member: %v", err)
		}
		userIDs = append(userIDs, user.ID)
		members = append(members, models.RoomMember{RoomID: room.ID, UserID: user.ID, Role: "member"})
	}
	if err := db.Create(&members).Error; err != nil {
		t.Fatalf("failed to create memberships: %v", err)
	}

	return room.ID, userIDs
}

// seedDaily inserts a daily record with a precomputed percentage.
func seedDaily(t *testing.T, db *gorm.DB, userID, roomID uuid.UUID, day time.Time, pct float64) models.DailyProgress {
	t.Helper()

	record := models.DailyProgress{
		UserID:          userID,
		RoomID:          roomID,
		Date:            DateKey(day),
		DailyPercentage: pct,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to create daily record: %v", err)
	}
	return record
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.0001
}
