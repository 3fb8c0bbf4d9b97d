package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tour-booking/models/user"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches the cost the rest of the platform issues hashes with.
const bcryptCost = 10

// Fields stripped from logged request bodies.
var sensitiveBodyFields = []string{"password", "current_password", "new_password", "code"}

// HashPassword returns the bcrypt hash for a plaintext password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetUserByID retrieves a user by primary key.
func GetUserByID(db *gorm.DB, id uint) (*user.User, error) {
	var userModel user.User
	if err := db.First(&userModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &userModel, nil
}

// ParseTravelDate parses the travel date from a booking payload. Accepts the
// common date and datetime layouts and normalizes to the beginning of the day.
func ParseTravelDate(value string) (time.Time, error) {
	parsed, err := now.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid travel date %q: %w", value, err)
	}
	return now.With(parsed).BeginningOfDay(), nil
}

// sanitizeRequestBody strips credential fields from a JSON request body
// before it is persisted to the request log.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		// Non-JSON bodies are logged as-is.
		return string(append([]byte(nil), body...))
	}

	for _, field := range sensitiveBodyFields {
		if _, ok := payload[field]; ok {
			payload[field] = "[REDACTED]"
		}
	}

	if jsonBytes, err := json.Marshal(payload); err == nil {
		return string(jsonBytes)
	}
	return "[UNLOGGABLE_BODY]"
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
