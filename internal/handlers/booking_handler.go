package handlers

import (
	"errors"
	"log"
	"time"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
	"acaciacamp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *services.BookingService
	validate       *validator.Validate
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the booking routes. All of them require an
// authenticated user; the status update is additionally gated to admin by
// the caller.
func (h *BookingHandler) RegisterRoutes(router fiber.Router) {
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Post("/", h.HandleCreate)
	bookingRoutes.Get("/", h.HandleListMine)
	bookingRoutes.Get("/:id", h.HandleGetByID)
}

// RegisterAdminRoutes registers the admin-only booking routes.
func (h *BookingHandler) RegisterAdminRoutes(router fiber.Router) {
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Put("/:id/status", h.HandleUpdateStatus)
}

// CreateBookingRequest represents the request body for creating a booking.
type CreateBookingRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required"`  // YYYY-MM-DD
	CheckOut string `json:"check_out" validate:"required"` // YYYY-MM-DD
}

// HandleCreate books a room for the authenticated user.
func (h *BookingHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "check_in must be a date in YYYY-MM-DD format",
		})
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "check_out must be a date in YYYY-MM-DD format",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	booking, err := h.bookingService.CreateBooking(userID, req.RoomID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": services.ErrInvalidDateRange.Error(),
			})
		case errors.Is(err, services.ErrRoomUnavailable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": services.ErrRoomUnavailable.Error(),
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Room not found",
			})
		default:
			log.Printf("Error creating booking: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create booking",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// HandleListMine returns the authenticated user's bookings, newest first.
func (h *BookingHandler) HandleListMine(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	bookings, err := h.bookingService.ListUserBookings(userID)
	if err != nil {
		log.Printf("Error listing bookings for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list bookings",
		})
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

// HandleGetByID returns a single booking. Guests can only see their own.
func (h *BookingHandler) HandleGetByID(c *fiber.Ctx) error {
	booking, err := h.bookingService.GetBookingByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Booking not found",
			})
		}
		log.Printf("Error getting booking %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get booking",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	if booking.UserID != userID && models.Role(role) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not your booking",
		})
	}
	return c.JSON(fiber.Map{"booking": booking})
}

// UpdateBookingStatusRequest represents the request body for a status change.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// HandleUpdateStatus updates a booking's status.
func (h *BookingHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.bookingService.UpdateBookingStatus(c.Params("id"), models.BookingStatus(req.Status)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Booking not found",
			})
		}
		log.Printf("Error updating booking %s status: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update booking status",
		})
	}
	return c.JSON(fiber.Map{"message": "Booking status updated successfully"})
}
