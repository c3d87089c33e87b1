package routes

import (
	"github.com/arnold/roomgoals-api/internal/handlers"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	rooms := protected.Group("/rooms")
	rooms.Get("/", handlers.GetRooms)
	rooms.Post("/", handlers.CreateRoom)
	rooms.Get("/:id", handlers.GetRoom)
	rooms.Get("/:id/members", handlers.GetMembers)
	rooms.Post("/:id/leave", handlers.LeaveRoom)

	// Room invites
	rooms.Post("/:id/invites", handlers.CreateInvite)
	protected.Post("/invites/:code/join", handlers.JoinRoom)

	// Personal goals
	rooms.Post("/:id/goals", handlers.DefineGoals)
	rooms.Get("/:id/goals", handlers.GetGoals)
	rooms.Post("/:id/goals/:goalId/toggle", handlers.ToggleGoal)

	// Shared goals
	rooms.Post("/:id/shared-goals", handlers.DefineSharedGoals)
	rooms.Get("/:id/shared-goals", handlers.GetSharedGoals)
	rooms.Post("/:id/shared-goals/:goalId/toggle", handlers.ToggleSharedGoal)

	// Progress summaries
	rooms.Get("/:id/progress", handlers.GetMyProgress)
	rooms.Get("/:id/progress/daily", handlers.GetDailyProgress)
	rooms.Get("/:id/room-progress", handlers.GetRoomProgress)

	// Room activity
	rooms.Get("/:id/activity", handlers.GetRoomActivity)
}
