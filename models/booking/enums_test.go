package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsValid(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}

	assert.False(t, BookingStatus("CONFIRMED").IsValid())
	assert.False(t, BookingStatus("pending").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		BookingStatusPending:   false,
		BookingStatusAssigned:  false,
		BookingStatusAccepted:  true,
		BookingStatusRejected:  true,
		BookingStatusCancelled: true,
	}

	for status, want := range terminal {
		assert.Equal(t, want, status.IsTerminal(), "IsTerminal(%s)", status)
	}
}

func TestBookingStatus_CanBeCancelled(t *testing.T) {
	cancellable := map[BookingStatus]bool{
		BookingStatusPending:   true,
		BookingStatusAssigned:  true,
		BookingStatusAccepted:  false,
		BookingStatusRejected:  false,
		BookingStatusCancelled: false,
	}

	for status, want := range cancellable {
		assert.Equal(t, want, status.CanBeCancelled(), "CanBeCancelled(%s)", status)
	}
}

func TestBookingStatus_CanBeAssigned(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		assert.Equal(t, !status.IsTerminal(), status.CanBeAssigned(), "CanBeAssigned(%s)", status)
	}
}
