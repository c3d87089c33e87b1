package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetRoomActivity returns paginated activity for a room
func GetRoomActivity(c *fiber.Ctx) error {
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

	// Pagination
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var activities []models.Activity
	database.DB.Where("room_id = ?", roomID).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities)

	var total int64
	database.DB.Model(&models.Activity{}).Where("room_id = ?", roomID).Count(&total)

	return c.JSON(fiber.Map{
		"activities": activities,
		"page":       page,
		"limit":      limit,
		"total":      total,
	})
}

// LogActivity records a room event. Best effort; failures are ignored.
func LogActivity(roomID, userID uuid.UUID, actionType string, targetID *uuid.UUID, metadata map[string]interface{}) {
	activity := models.Activity{
		RoomID:     roomID,
		UserID:     userID,
		ActionType: actionType,
		TargetID:   targetID,
	}

	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err == nil {
			s := string(data)
			activity.Metadata = &s
		}
	}

	database.DB.Create(&activity)
}
