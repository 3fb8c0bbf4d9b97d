package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures issued codes instead of delivering them.
type recordingSender struct {
	email string
	code  string
	err   error
}

func (s *recordingSender) SendCode(_ context.Context, email, code string) error {
	s.email = email
	s.code = code
	return s.err
}

func newTestService() (*Service, *recordingSender) {
	sender := &recordingSender{}
	return NewOTPService(NewMemoryStore(), sender), sender
}

func TestGenerateCode_SixDigits(t *testing.T) {
	service, _ := newTestService()

	for i := 0; i < 50; i++ {
		code, err := service.GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestIssueCode_StoresAndDelivers(t *testing.T) {
	service, sender := newTestService()
	ctx := context.Background()

	rec, err := service.IssueCode(ctx, "amina@example.com")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "amina@example.com", sender.email)
	assert.Equal(t, rec.Code, sender.code)
	assert.Equal(t, 0, rec.Attempts)
	assert.WithinDuration(t, time.Now().Add(CodeTTL), rec.ExpiresAt, 5*time.Second)
}

func TestIssueCode_OverwritesPendingCode(t *testing.T) {
	service, sender := newTestService()
	ctx := context.Background()

	_, err := service.IssueCode(ctx, "amina@example.com")
	require.NoError(t, err)
	first := sender.code

	_, err = service.IssueCode(ctx, "amina@example.com")
	require.NoError(t, err)
	second := sender.code

	// The old code is invalidated even when the two happen to collide; only
	// the latest record exists.
	if first != second {
		err := service.VerifyCode(ctx, "amina@example.com", first)
		var invalid *InvalidCodeError
		assert.ErrorAs(t, err, &invalid)
	}
	assert.NoError(t, service.VerifyCode(ctx, "amina@example.com", second))
}

func TestIssueCode_DeliveryFailureStillStoresCode(t *testing.T) {
	service, sender := newTestService()
	sender.err = errors.New("smtp gateway down")
	ctx := context.Background()

	rec, err := service.IssueCode(ctx, "amina@example.com")

	// The caller learns about the failure but the code is live.
	assert.Error(t, err)
	require.NotNil(t, rec)
	assert.NoError(t, service.VerifyCode(ctx, "amina@example.com", rec.Code))
}

func TestVerifyCode_ConsumedOnSuccess(t *testing.T) {
	service, sender := newTestService()
	ctx := context.Background()

	_, err := service.IssueCode(ctx, "amina@example.com")
	require.NoError(t, err)

	assert.NoError(t, service.VerifyCode(ctx, "amina@example.com", sender.code))

	// Single use: the same code cannot authenticate twice.
	err = service.VerifyCode(ctx, "amina@example.com", sender.code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerifyCode_NoPendingCode(t *testing.T) {
	service, _ := newTestService()

	err := service.VerifyCode(context.Background(), "nobody@example.com", "123456")

	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerifyCode_MismatchCountsAttempts(t *testing.T) {
	service, sender := newTestService()
	ctx := context.Background()

	_, err := service.IssueCode(ctx, "amina@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}

	for want := MaxAttempts - 1; want >= 1; want-- {
		err := service.VerifyCode(ctx, "amina@example.com", wrong)
		var invalid *InvalidCodeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, want, invalid.Remaining)
	}

	// The third failure exhausts the counter; even the correct code is
	// refused afterwards.
	err = service.VerifyCode(ctx, "amina@example.com", wrong)
	var invalid *InvalidCodeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.Remaining)

	err = service.VerifyCode(ctx, "amina@example.com", sender.code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestVerifyCode_SurvivingAttemptsDoNotBlockCorrectCode(t *testing.T) {
	service, sender := newTestService()
	ctx := context.Background()

	_, err := service.IssueCode(ctx, "amina@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}
	_ = service.VerifyCode(ctx, "amina@example.com", wrong)
	_ = service.VerifyCode(ctx, "amina@example.com", wrong)

	assert.NoError(t, service.VerifyCode(ctx, "amina@example.com", sender.code))
}

func TestVerifyCode_Expired(t *testing.T) {
	store := NewMemoryStore()
	service := NewOTPService(store, &recordingSender{})
	ctx := context.Background()

	// Seed an already-expired record; the store TTL has not fired yet.
	err := store.Put(ctx, "amina@example.com", Record{
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, time.Hour)
	require.NoError(t, err)

	err = service.VerifyCode(ctx, "amina@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)

	// The expired record is dropped, not left to absorb more attempts.
	err = service.VerifyCode(ctx, "amina@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestMemoryStore_TTLEviction(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, "amina@example.com", Record{Code: "123456"}, -time.Second)
	require.NoError(t, err)

	rec, err := store.Get(ctx, "amina@example.com")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryStore_DeleteAbsentIsNoError(t *testing.T) {
	store := NewMemoryStore()

	assert.NoError(t, store.Delete(context.Background(), "nobody@example.com"))
}
