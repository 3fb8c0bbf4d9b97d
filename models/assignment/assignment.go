package assignment

import (
	"time"

	bookingModel "tour-booking/models/booking"
	"tour-booking/models/user"
)

// AssignmentStatus is the staff-side disposition of a booking.
type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "ASSIGNED"
	AssignmentStatusAccepted AssignmentStatus = "ACCEPTED"
	AssignmentStatusRejected AssignmentStatus = "REJECTED"
)

func (as AssignmentStatus) String() string {
	return string(as)
}

func (as AssignmentStatus) IsValid() bool {
	switch as {
	case AssignmentStatusAssigned, AssignmentStatusAccepted, AssignmentStatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision returns true for the two dispositions an employee may record.
func (as AssignmentStatus) IsDecision() bool {
	return as == AssignmentStatusAccepted || as == AssignmentStatusRejected
}

// BookingStatus returns the booking status mirrored from this assignment
// status. The two enums share values so a single read of the booking row
// reflects the externally visible state.
func (as AssignmentStatus) BookingStatus() bookingModel.BookingStatus {
	return bookingModel.BookingStatus(as)
}

// Assignment binds exactly one employee to a booking. BookingID carries a
// unique index: at most one assignment per booking.
type Assignment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint                 `gorm:"not null;uniqueIndex" json:"booking_id"`
	Booking   bookingModel.Booking `gorm:"foreignKey:BookingID" json:"booking"`

	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	Employee   user.User `gorm:"foreignKey:EmployeeID" json:"employee"`

	Status AssignmentStatus `gorm:"type:varchar(50);not null" json:"status"`
	Notes  string           `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
