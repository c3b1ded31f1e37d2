package handlers

import (
	"errors"
	"log"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
	"acaciacamp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles HTTP requests for rooms.
type RoomHandler struct {
	roomService *services.RoomService
	validate    *validator.Validate
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only room routes.
func (h *RoomHandler) RegisterPublicRoutes(router fiber.Router) {
	roomRoutes := router.Group("/rooms")
	roomRoutes.Get("/", h.HandleGetAll)
	roomRoutes.Get("/:id", h.HandleGetByID)
}

// RegisterAdminRoutes registers the mutating room routes. The caller is
// responsible for gating them behind the admin role.
func (h *RoomHandler) RegisterAdminRoutes(router fiber.Router) {
	roomRoutes := router.Group("/rooms")
	roomRoutes.Post("/", h.HandleCreate)
	roomRoutes.Put("/:id", h.HandleUpdate)
	roomRoutes.Delete("/:id", h.HandleDelete)
}

// HandleGetAll returns all rooms.
func (h *RoomHandler) HandleGetAll(c *fiber.Ctx) error {
	rooms, err := h.roomService.GetAllRooms()
	if err != nil {
		log.Printf("Error getting rooms: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get rooms",
		})
	}
	return c.JSON(fiber.Map{"rooms": rooms})
}

// HandleGetByID returns a single room.
func (h *RoomHandler) HandleGetByID(c *fiber.Ctx) error {
	room, err := h.roomService.GetRoomByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Room not found",
			})
		}
		log.Printf("Error getting room %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get room",
		})
	}
	return c.JSON(fiber.Map{"room": room})
}

// HandleCreate creates a new room.
func (h *RoomHandler) HandleCreate(c *fiber.Ctx) error {
	var room models.Room
	if err := c.BodyParser(&room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.roomService.CreateRoom(&room); err != nil {
		log.Printf("Error creating room: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create room",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Room created successfully",
		"room":    room,
	})
}

// HandleUpdate updates an existing room.
func (h *RoomHandler) HandleUpdate(c *fiber.Ctx) error {
	var room models.Room
	if err := c.BodyParser(&room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	room.ID = c.Params("id")
	if err := h.validate.Struct(room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.roomService.UpdateRoom(&room); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Room not found",
			})
		}
		log.Printf("Error updating room %s: %v", room.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update room",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// HandleDelete removes a room.
func (h *RoomHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.roomService.DeleteRoom(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Room not found",
			})
		}
		log.Printf("Error deleting room %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete room",
		})
	}
	return c.JSON(fiber.Map{"message": "Room deleted successfully"})
}
