package handlers

import (
	"time"

	"github.com/arnold/roomgoals-api/internal/database"
	"github.com/arnold/roomgoals-api/internal/middleware"
	"github.com/arnold/roomgoals-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateInvite generates an invite code for a room (admin only)
func CreateInvite(c *fiber.Ctx) error {
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

	var req models.CreateInviteRequest
	c.BodyParser(&req) // optional body

	invite := models.RoomInvite{
		RoomID:    roomID,
		InviterID: userID,
		MaxUses:   req.MaxUses,
	}

	if req.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresIn) * time.Hour)
		invite.ExpiresAt = &exp
	}

	if err := database.DB.Create(&invite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invite",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invite)
}

// JoinRoom joins a room via invite code
func JoinRoom(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	code := c.Params("code")

	var invite models.RoomInvite
	if err := database.DB.Where("invite_code = ?", code).First(&invite).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invite not found",
		})
	}

	if invite.Expired() {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Invite has expired",
		})
	}
	if invite.Exhausted() {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Invite has reached its use limit",
		})
	}

	if isRoomMember(invite.RoomID, userID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Already a member of this room",
		})
	}

	member := models.RoomMember{
		RoomID:   invite.RoomID,
		UserID:   userID,
		Role:     "member",
		JoinedAt: time.Now(),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join room",
		})
	}

	database.DB.Model(&invite).Update("used_count", invite.UsedCount+1)

	LogActivity(invite.RoomID, userID, "member_joined", nil, nil)

	var room models.Room
	database.DB.First(&room, invite.RoomID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"room":   room,
		"member": member,
	})
}
