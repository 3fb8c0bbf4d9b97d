package auth

import (
	"errors"
	"fmt"
	"os"

	"tour-booking/constants"
	"tour-booking/logger"
	"tour-booking/middleware"
	"tour-booking/models/user"
	otpService "tour-booking/services/otp"
	"tour-booking/types"
	authTypes "tour-booking/types/auth"
	otpTypes "tour-booking/types/otp"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration, both login paths and session checks.
type AuthController struct {
	db             *gorm.DB
	otpService     *otpService.Service
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, otp *otpService.Service, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, otpService: otp, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a new principal. Only allow-listed elevated roles are
// honored; anything else registers as CUSTOMER.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Missing required fields",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		logger.Error(validationErr, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	finalRole := constants.RoleCustomer
	if constants.IsElevatedRole(req.Role) {
		finalRole = req.Role
	}

	var existing user.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Email already exists",
			Status:  fiber.StatusBadRequest,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     finalRole,
		Status:   constants.UserStatusActive,
	}
	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Error creating user",
			Status:  fiber.StatusBadRequest,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User registered successfully: " + newUser.Email)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "User registered",
		Status:  fiber.StatusCreated,
		Data:    newUser.Public(),
	})
}

// Login is the password path. A successful login mints a session token and
// stores it in the HTTP-only session cookie.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Missing required fields",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		logger.Error(validationErr, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var account user.User
	err := h.db.Where("email = ?", req.Email).First(&account).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, account.Password) {
		// One message for both failures so emails cannot be probed.
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !account.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Account is inactive",
			Status:  fiber.StatusForbidden,
		})
	}

	return h.establishSession(c, &account, "Login successful")
}

// establishSession mints the session token, sets the cookie and writes the
// standard login response. Shared by the password and OTP paths.
func (h *AuthController) establishSession(c *fiber.Ctx, account *user.User, message string) error {
	token, err := utils.GenerateToken(account.ID, account.Role)
	if err != nil {
		logger.Error("Failed to generate session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "token", token, int(utils.SessionTTL.Seconds()))

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("User %d logged in successfully", account.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusOK,
		Data:    account.Public(),
	})
}

// ForgotPassword is the first half of the password-less path: issue a
// one-time code and deliver it out-of-band.
func (h *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req authTypes.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Missing required fields",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var account user.User
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "No account with this email",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Database error while looking up account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !account.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Account is inactive",
			Status:  fiber.StatusForbidden,
		})
	}

	rec, err := h.otpService.IssueCode(c.Context(), account.Email)
	if err != nil {
		if rec == nil {
			logger.Error("Failed to issue one-time code", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to send code",
				Status:  fiber.StatusInternalServerError,
			})
		}
		// Code stored but delivery failed; it is still usable.
		logger.Error("One-time code delivery failed", err)
	}

	logger.Success("One-time code issued for " + account.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Verification code sent",
		Status:  fiber.StatusOK,
		Data: otpTypes.OTPResponse{
			Message:   "Code sent to your email",
			ExpiresAt: rec.ExpiresAt.Format("2006-01-02 15:04:05"),
			Success:   true,
		},
	})
}

// VerifyOTPLogin is the second half of the password-less path: verify the
// code and mint a session exactly as the password path does.
func (h *AuthController) VerifyOTPLogin(c *fiber.Ctx) error {
	var req authTypes.VerifyOTPLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Missing required fields",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := h.otpService.VerifyCode(c.Context(), req.Email, req.Code); err != nil {
		var invalidCode *otpService.InvalidCodeError
		switch {
		case errors.As(err, &invalidCode):
			remaining := invalidCode.Remaining
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "Invalid code",
				Status:  fiber.StatusBadRequest,
				Data: otpTypes.OTPResponse{
					Message:           err.Error(),
					RemainingAttempts: &remaining,
					Success:           false,
				},
			})
		case errors.Is(err, otpService.ErrCodeNotFound),
			errors.Is(err, otpService.ErrCodeExpired),
			errors.Is(err, otpService.ErrTooManyAttempts):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusBadRequest,
			})
		default:
			logger.Error("Failed to verify one-time code", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Internal server error",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	// Re-check the principal is still active; the account may have been
	// deactivated between issuance and verification.
	var account user.User
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "No account with this email",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Database error while looking up account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !account.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Account is inactive",
			Status:  fiber.StatusForbidden,
		})
	}

	return h.establishSession(c, &account, "Login successful")
}

// Verify reports the authenticated principal back to the client.
func (h *AuthController) Verify(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByID(h.db, userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"valid": true,
		"user":  account.Public(),
	})
}

// LogOut clears the client-held credential. The token itself stays valid
// until expiry; there is no server-side revocation list.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "token", "", -1) // Expire immediately

	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
	})
}
