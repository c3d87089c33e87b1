package handlers

import (
	"errors"
	"time"

	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/arnold/roomgoals-api/internal/progress"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DefineGoals creates the caller's personal goal set for the current week.
func DefineGoals(c *fiber.Ctx) error {
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

	var req models.DefineGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goals, err := progress.NewService(database.DB).DefineGoals(userID, roomID, req.Labels)
	if err != nil {
		return progressError(c, err)
	}

	LogActivity(roomID, userID, "goals_defined", nil, map[string]interface{}{
		"scope": models.ScopePersonal,
		"count": len(goals),
	})

	return c.Status(fiber.StatusCreated).JSON(goals)
}

// GetGoals returns the caller's active personal goals for a room.
func GetGoals(c *fiber.Ctx) error {
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

	goals, err := progress.NewStore(database.DB).ActivePersonalGoals(userID, roomID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	return c.JSON(goals)
}

// ToggleGoal flips one personal goal checkmark and returns the updated
// daily record and weekly summary.
func ToggleGoal(c *fiber.Ctx) error {
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

	result, err := progress.NewService(database.DB).ToggleGoal(userID, roomID, goalID, req.Completed, day)
	if err != nil {
		return progressError(c, err)
	}

	if req.Completed {
		LogActivity(roomID, userID, "goal_completed", &goalID, map[string]interface{}{
			"scope": models.ScopePersonal,
			"date":  progress.DateKey(day),
		})
	}
	if result.WeekAdvanced {
		LogActivity(roomID, userID, "week_advanced", nil, map[string]interface{}{
			"scope":       models.SummaryScopeMember,
			"currentWeek": result.WeeklySummary.CurrentWeek,
		})
	}

	return c.JSON(result)
}

// toggleDay resolves the target day for a toggle: today unless the request
// carries an explicit YYYY-MM-DD date.
func toggleDay(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	return progress.ParseDateKey(date)
}

// progressError maps engine errors onto HTTP responses. Rejections carry a
// machine-readable reason code; everything else is a persistence failure.
func progressError(c *fiber.Ctx, err error) error {
	var rej *progress.Rejection
	if errors.As(err, &rej) {
		status := fiber.StatusBadRequest
		switch rej {
		case progress.ErrGoalNotFound, progress.ErrRoomNotFound, progress.ErrMemberNotFound:
			status = fiber.StatusNotFound
		case progress.ErrGoalsAlreadyDefined:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": rej.Message,
			"code":  rej.Code,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to update progress",
	})
}
