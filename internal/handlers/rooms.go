package handlers

import (
	"time"

	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateRoom(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	room := models.Room{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TotalWeeks:  12,
	}

	// Creator becomes the first member so the room's participant count is
	// never zero.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		member := models.RoomMember{
			RoomID:   room.ID,
			UserID:   userID,
			Role:     "admin",
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create room",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

func GetRooms(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var rooms []models.Room
	err := database.DB.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ? AND room_members.deleted_at IS NULL", userID).
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch rooms",
		})
	}

	if len(rooms) == 0 {
		return c.JSON([]models.RoomSummary{})
	}

	roomIDs := make([]uuid.UUID, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	// One grouped count and one summary fetch for all rooms instead of a
	// pair of queries per room.
	var counts []struct {
		RoomID uuid.UUID
		Count  int
	}
	err = database.DB.Model(&models.RoomMember{}).
		Select("room_id, COUNT(*) as count").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Find(&counts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch rooms",
		})
	}
	countByRoom := make(map[uuid.UUID]int, len(counts))
	for _, row := range counts {
		countByRoom[row.RoomID] = row.Count
	}

	var roomSummaries []models.ProgressSummary
	err = database.DB.
		Where("room_id IN ? AND scope = ?", roomIDs, models.SummaryScopeRoom).
		Find(&roomSummaries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch rooms",
		})
	}
	summaryByRoom := make(map[uuid.UUID]models.ProgressSummary, len(roomSummaries))
	for _, s := range roomSummaries {
		summaryByRoom[s.RoomID] = s
	}

	summaries := make([]models.RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = models.RoomSummary{
			ID:          room.ID,
			Title:       room.Title,
			MemberCount: countByRoom[room.ID],
			CurrentWeek: 1,
			TotalWeeks:  room.TotalWeeks,
		}
		if s, ok := summaryByRoom[room.ID]; ok {
			summaries[i].CurrentWeek = s.CurrentWeek
			summaries[i].OverallPercentage = s.OverallPercentage
		}
	}

	return c.JSON(summaries)
}

func GetRoom(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	if !isRoomMember(roomID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	var room models.Room
	err = database.DB.
		Where("id = ?", roomID).
		Preload("Members").
		Preload("Members.User").
		Preload("Goals", "is_active = ?", true).
		First(&room).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	return c.JSON(room)
}

func GetMembers(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	if !isRoomMember(roomID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	var members []models.RoomMember
	if err := database.DB.Where("room_id = ?", roomID).Preload("User").Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch members",
		})
	}

	return c.JSON(members)
}

func LeaveRoom(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	var member models.RoomMember
	if err := database.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "You are not a member of this room",
		})
	}

	if member.Role == "admin" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Room admin cannot leave the room",
		})
	}

	if err := database.DB.Delete(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to leave room",
		})
	}

	LogActivity(roomID, userID, "member_left", nil, nil)

	return c.JSON(fiber.Map{"message": "Left room"})
}

// isRoomMember reports whether the user has a membership row in the room.
func isRoomMember(roomID, userID uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count)
	return count > 0
}

// isRoomAdmin reports whether the user is an admin of the room.
func isRoomAdmin(roomID, userID uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ? AND role = ?", roomID, userID, "admin").
		Count(&count)
	return count > 0
}
