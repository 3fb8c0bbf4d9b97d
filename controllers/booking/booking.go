package booking

import (
	"errors"
	"strconv"

	"tour-booking/logger"
	"tour-booking/middleware"
	bookingService "tour-booking/services/booking"
	"tour-booking/types"
	bookingTypes "tour-booking/types/booking"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles the customer-facing booking routes.
type BookingController struct {
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(service *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		Service: service,
		Logger:  asyncLogger,
	}
}

func parseBookingID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("bookingId"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("booking ID is required")
	}
	return uint(id), nil
}

// Store creates a new booking in PENDING for the authenticated customer.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: validationErr,
		})
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	travelDate, err := utils.ParseTravelDate(req.TravelDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid travel date",
		})
	}

	booking, err := bc.Service.Create(c.Context(), userID, bookingService.CreateInput{
		TourPackageID:   req.TourPackageID,
		TravelDate:      travelDate,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
		Phone:           req.Phone,
		Country:         req.Country,
	})
	if err != nil {
		if errors.Is(err, bookingService.ErrPackageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Tour package not found",
			})
		}
		logger.Error("Failed to create booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Booking created with status PENDING")

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    booking,
	})
}

// Index lists the customer's bookings, excluding cancelled ones.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	bookings, err := bc.Service.ListForCustomer(c.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    bookings,
	})
}

// Details returns one booking, ownership-scoped.
func (bc *BookingController) Details(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	booking, err := bc.Service.Details(c.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, bookingService.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to fetch booking details", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking fetched successfully",
		Data:    booking,
	})
}

// Update applies a customer edit; the engine recomputes the total and
// resets the status to PENDING.
func (bc *BookingController) Update(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	var req bookingTypes.BookingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: validationErr,
		})
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	travelDate, err := utils.ParseTravelDate(req.TravelDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid travel date",
		})
	}

	booking, err := bc.Service.Update(c.Context(), bookingID, userID, bookingService.UpdateInput{
		TourPackageID:   req.TourPackageID,
		TravelDate:      travelDate,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		case errors.Is(err, bookingService.ErrPackageNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Tour package not found",
			})
		}
		logger.Error("Failed to update booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking updated successfully",
		Data:    booking,
	})
}

// Destroy soft-deletes the customer's booking by moving it to CANCELLED.
func (bc *BookingController) Destroy(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	if err := bc.Service.CancelByCustomer(c.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		case errors.Is(err, bookingService.ErrBookingFinalized):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Booking can no longer be cancelled",
			})
		}
		logger.Error("Failed to cancel booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking deleted successfully",
	})
}

// AdminDestroy soft-deletes any booking regardless of ownership.
func (bc *BookingController) AdminDestroy(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	if err := bc.Service.CancelByAdmin(c.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		case errors.Is(err, bookingService.ErrBookingFinalized):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Booking can no longer be cancelled",
			})
		}
		logger.Error("Failed to cancel booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking deleted successfully",
	})
}
