package handlers

import (
	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/progress"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetMyProgress returns the caller's weekly summary for a room.
func GetMyProgress(c *fiber.Ctx) error {
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

	summary, err := progress.NewService(database.DB).Summary(roomID, &userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	return c.JSON(summary)
}

// GetRoomProgress returns the room-wide weekly summary.
func GetRoomProgress(c *fiber.Ctx) error {
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

	summary, err := progress.NewService(database.DB).Summary(roomID, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	return c.JSON(summary)
}

// GetDailyProgress returns the caller's percentage for one day
// (?date=YYYY-MM-DD, default today).
func GetDailyProgress(c *fiber.Ctx) error {
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

	day, err := toggleDay(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	pct, err := progress.NewService(database.DB).DailyPercentage(userID, roomID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	return c.JSON(fiber.Map{
		"date":            progress.DateKey(day),
		"dailyPercentage": pct,
	})
}
