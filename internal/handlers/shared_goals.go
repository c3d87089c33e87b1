package handlers

import (
	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/arnold/roomgoals-api/internal/progress"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DefineSharedGoals creates the room's shared goal set for the current week
// (admin only).
func DefineSharedGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	if !isRoomAdmin(roomID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found or you are not an admin",
		})
	}

	var req models.DefineGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goals, err := progress.NewService(database.DB).DefineSharedGoals(roomID, req.Labels)
	if err != nil {
		return progressError(c, err)
	}

	LogActivity(roomID, userID, "goals_defined", nil, map[string]interface{}{
		"scope": models.ScopeShared,
		"count": len(goals),
	})

	return c.Status(fiber.StatusCreated).JSON(goals)
}

// GetSharedGoals returns a room's active shared goals.
func GetSharedGoals(c *fiber.Ctx) error {
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

	goals, err := progress.NewStore(database.DB).ActiveSharedGoals(roomID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	return c.JSON(goals)
}

// ToggleSharedGoal flips the caller's checkmark on a shared goal and
// returns the updated room record and room weekly summary.
func ToggleSharedGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}
	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	if !isRoomMember(roomID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	var req models.ToggleGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	day, err := toggleDay(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	result, err := progress.NewService(database.DB).ToggleSharedGoal(roomID, goalID, userID, req.Completed, day)
	if err != nil {
		return progressError(c, err)
	}

	if req.Completed {
		LogActivity(roomID, userID, "goal_completed", &goalID, map[string]interface{}{
			"scope": models.ScopeShared,
			"date":  progress.DateKey(day),
		})
	}
	if result.WeekAdvanced {
		LogActivity(roomID, userID, "week_advanced", nil, map[string]interface{}{
			"scope":       models.SummaryScopeRoom,
			"currentWeek": result.RoomWeeklySummary.CurrentWeek,
		})
	}

	return c.JSON(result)
}
