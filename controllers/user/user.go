package user

import (
	"errors"
	"strconv"

	"tour-booking/constants"
	"tour-booking/logger"
	"tour-booking/middleware"
	userModel "tour-booking/models/user"
	"tour-booking/types"
	userTypes "tour-booking/types/user"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles profile and employee administration routes.
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

// Me returns the authenticated user's profile.
func (uc *UserController) Me(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByID(uc.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"name":       account.Name,
		"email":      account.Email,
		"role":       account.Role,
		"created_at": account.CreatedAt,
		"updated_at": account.UpdatedAt,
	})
}

// UpdateProfile changes the user's name and optionally their password.
// The current password is always re-verified.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req userTypes.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	account, err := utils.GetUserByID(uc.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, account.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Current password is incorrect",
			Status:  fiber.StatusBadRequest,
		})
	}

	account.Name = req.Name
	if req.NewPassword != "" {
		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			logger.Error("Failed to hash password", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Internal server error",
				Status:  fiber.StatusInternalServerError,
			})
		}
		account.Password = hashed
	}

	if err := uc.DB.Save(account).Error; err != nil {
		logger.Error("Failed to update profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    account.Public(),
	})
}

// DeleteAccount soft-deletes the authenticated account and clears the
// session cookie. The row stays addressable for existing bookings.
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByID(uc.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}

	if err := uc.DB.Model(account).Update("status", constants.UserStatusInactive).Error; err != nil {
		logger.Error("Failed to deactivate account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		HTTPOnly: true,
		SameSite: "Strict",
		MaxAge:   -1,
		Path:     "/",
	})

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Account deactivated: " + account.Email)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Account deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// Employees lists all employee accounts.
func (uc *UserController) Employees(c *fiber.Ctx) error {
	var employees []userModel.User
	err := uc.DB.
		Select("id", "name", "email", "role", "status", "created_at").
		Where("role = ?", constants.RoleEmployee).
		Find(&employees).Error
	if err != nil {
		logger.Error("Failed to fetch employees", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Employees fetched successfully",
		Status:  fiber.StatusOK,
		Data:    employees,
	})
}

// CreateEmployee registers a staff account.
func (uc *UserController) CreateEmployee(c *fiber.Ctx) error {
	var req userTypes.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "All fields are required",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing userModel.User
	if err := uc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Employee already exists",
			Status:  fiber.StatusBadRequest,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	employee := userModel.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
		Status:   constants.UserStatusActive,
	}
	if err := uc.DB.Create(&employee).Error; err != nil {
		logger.Error("Failed to create employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Employee created: " + employee.Email)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Employee created successfully",
		Status:  fiber.StatusCreated,
		Data:    employee.Public(),
	})
}

// DeleteEmployee soft-deletes a staff account.
func (uc *UserController) DeleteEmployee(c *fiber.Ctx) error {
	employeeID, err := strconv.ParseUint(c.Params("employeeId"), 10, 32)
	if err != nil || employeeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Employee ID is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	employee, err := utils.GetUserByID(uc.DB, uint(employeeID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Employee not found",
			Status:  fiber.StatusNotFound,
		})
	}

	if err := uc.DB.Model(employee).Update("status", constants.UserStatusInactive).Error; err != nil {
		logger.Error("Failed to deactivate employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Employee deleted successfully",
		Status:  fiber.StatusOK,
	})
}
