package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	// CodeTTL is the validity window of an issued code.
	CodeTTL = 10 * time.Minute
	// MaxAttempts is the number of failed comparisons before a code is
	// irrecoverably invalidated.
	MaxAttempts = 3
	codeDigits  = 6
)

// Verification failures. InvalidCodeError carries the remaining attempts.
var (
	ErrCodeNotFound    = errors.New("no one-time code is pending for this email")
	ErrCodeExpired     = errors.New("one-time code has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts, request a new code")
)

// InvalidCodeError is returned on a code mismatch that still leaves attempts.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code, %d attempts remaining", e.Remaining)
}

// Sender delivers an issued code to the principal out-of-band. The transport
// is irrelevant to the registry's correctness.
type Sender interface {
	SendCode(ctx context.Context, email, code string) error
}

// Service is the OTP registry for the password-less login path. It owns code
// state only; principal existence and status checks belong to the caller.
type Service struct {
	Store  Store
	Sender Sender
}

// NewOTPService creates a new OTP service.
func NewOTPService(store Store, sender Sender) *Service {
	return &Service{
		Store:  store,
		Sender: sender,
	}
}

// GenerateCode generates a uniformly random 6-digit code.
func (s *Service) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// IssueCode creates a fresh code for the email, overwriting any pending one
// (the stale code is thereby invalidated), and hands it to the sender.
func (s *Service) IssueCode(ctx context.Context, email string) (*Record, error) {
	code, err := s.GenerateCode()
	if err != nil {
		return nil, err
	}

	rec := Record{
		Code:      code,
		ExpiresAt: time.Now().Add(CodeTTL),
		Attempts:  0,
	}
	if err := s.Store.Put(ctx, email, rec, CodeTTL); err != nil {
		return nil, fmt.Errorf("store code: %w", err)
	}

	if err := s.Sender.SendCode(ctx, email, code); err != nil {
		// The code is already stored and usable; delivery failures must not
		// strand the login flow during outages of the delivery channel.
		return &rec, fmt.Errorf("deliver code: %w", err)
	}

	return &rec, nil
}

// VerifyCode checks the submitted code. The record is consumed on success,
// and deleted on expiry or attempt exhaustion; a mismatch only increments
// the attempt counter. The mismatch that spends the last attempt still
// reports InvalidCodeError (with Remaining 0); ErrTooManyAttempts is
// returned on the attempt after that, when the exhausted record is found.
func (s *Service) VerifyCode(ctx context.Context, email, code string) error {
	rec, err := s.Store.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}
	if rec == nil {
		return ErrCodeNotFound
	}

	if rec.IsExpired() {
		if err := s.Store.Delete(ctx, email); err != nil {
			return fmt.Errorf("drop expired code: %w", err)
		}
		return ErrCodeExpired
	}

	// A 4th attempt is refused even with the correct code.
	if rec.Attempts >= MaxAttempts {
		if err := s.Store.Delete(ctx, email); err != nil {
			return fmt.Errorf("drop exhausted code: %w", err)
		}
		return ErrTooManyAttempts
	}

	if rec.Code != code {
		rec.Attempts++
		ttl := time.Until(rec.ExpiresAt)
		if err := s.Store.Put(ctx, email, *rec, ttl); err != nil {
			return fmt.Errorf("record failed attempt: %w", err)
		}
		return &InvalidCodeError{Remaining: MaxAttempts - rec.Attempts}
	}

	if err := s.Store.Delete(ctx, email); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}
