package otp

// OTPResponse represents the response for OTP operations
type OTPResponse struct {
	Message           string `json:"message"`
	ExpiresAt         string `json:"expires_at,omitempty"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
	Success           bool   `json:"success"`
}
