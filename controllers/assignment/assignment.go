package assignment

import (
	"errors"
	"strconv"

	"tour-booking/logger"
	"tour-booking/middleware"
	assignmentModel "tour-booking/models/assignment"
	assignmentService "tour-booking/services/assignment"
	"tour-booking/types"
	bookingTypes "tour-booking/types/booking"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// AssignmentController handles the staff and admin booking routes.
type AssignmentController struct {
	Service *assignmentService.Service
	Logger  *logger.AsyncLogger
}

func NewAssignmentController(service *assignmentService.Service, asyncLogger *logger.AsyncLogger) *AssignmentController {
	return &AssignmentController{
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

// Assign binds an employee to a booking and mirrors the booking status.
func (ac *AssignmentController) Assign(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	var req bookingTypes.AssignEmployeeRequest
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

	a, err := ac.Service.Bind(c.Context(), bookingID, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, assignmentService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		case errors.Is(err, assignmentService.ErrInvalidEmployee):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid employee",
			})
		case errors.Is(err, assignmentService.ErrAlreadyAssigned):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Booking already assigned",
			})
		case errors.Is(err, assignmentService.ErrBookingFinalized):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Booking can no longer be assigned",
			})
		}
		logger.Error("Failed to assign employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Employee assigned to booking")

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Employee assigned successfully",
		Data:    a,
	})
}

// UpdateStatus records the employee decision for a booking.
func (ac *AssignmentController) UpdateStatus(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	var req bookingTypes.UpdateStatusRequest
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

	decision := assignmentModel.AssignmentStatus(req.Status)
	if err := ac.Service.Dispose(c.Context(), bookingID, decision, req.Notes); err != nil {
		switch {
		case errors.Is(err, assignmentService.ErrInvalidDecision):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Status must be ACCEPTED or REJECTED",
			})
		case errors.Is(err, assignmentService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		case errors.Is(err, assignmentService.ErrAssignmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Assignment not found",
			})
		case errors.Is(err, assignmentService.ErrBookingFinalized):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Booking already has a final status",
			})
		}
		logger.Error("Failed to update booking status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Booking status updated to " + req.Status)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking status updated successfully",
	})
}

// Unassigned lists all bookings with no assignment, newest first.
func (ac *AssignmentController) Unassigned(c *fiber.Ctx) error {
	bookings, err := ac.Service.ListUnassigned(c.Context())
	if err != nil {
		logger.Error("Failed to fetch unassigned bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Unassigned bookings fetched successfully",
		Data:    bookings,
	})
}

// Assigned lists all assignments with booking and employee detail.
func (ac *AssignmentController) Assigned(c *fiber.Ctx) error {
	assignments, err := ac.Service.ListAssigned(c.Context())
	if err != nil {
		logger.Error("Failed to fetch assigned bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Assigned bookings fetched successfully",
		Data:    assignments,
	})
}

// EmployeeAssigned lists the authenticated employee's assignments.
func (ac *AssignmentController) EmployeeAssigned(c *fiber.Ctx) error {
	employeeID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	assignments, err := ac.Service.EmployeeView(c.Context(), employeeID)
	if err != nil {
		logger.Error("Failed to fetch employee assignments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Assignments fetched successfully",
		Data:    assignments,
	})
}

// EmployeeBookingDetails returns one assignment scoped to the employee.
func (ac *AssignmentController) EmployeeBookingDetails(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID is required",
		})
	}

	employeeID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	a, err := ac.Service.EmployeeBookingDetails(c.Context(), employeeID, bookingID)
	if err != nil {
		if errors.Is(err, assignmentService.ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Assignment not found",
			})
		}
		logger.Error("Failed to fetch assignment details", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Assignment fetched successfully",
		Data:    a,
	})
}
