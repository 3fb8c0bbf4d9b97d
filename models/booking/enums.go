package booking

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusAssigned  BookingStatus = "ASSIGNED"
	BookingStatusAccepted  BookingStatus = "ACCEPTED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusAssigned, BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for absorbing states: no transition may leave them.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusAccepted || bs == BookingStatusRejected || bs == BookingStatusCancelled
}

// CanBeCancelled returns true if the booking may still move to CANCELLED.
func (bs BookingStatus) CanBeCancelled() bool {
	return bs == BookingStatusPending || bs == BookingStatusAssigned
}

// CanBeAssigned returns true if a staff member may still be bound to the
// booking. Assignment existence is checked separately; a REJECTED booking is
// blocked by its existing assignment, not by status.
func (bs BookingStatus) CanBeAssigned() bool {
	return !bs.IsTerminal()
}

// GetAllBookingStatuses returns all valid booking statuses.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusAssigned,
		BookingStatusAccepted,
		BookingStatusRejected,
		BookingStatusCancelled,
	}
}
