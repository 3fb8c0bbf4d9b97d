package booking

import (
	"tour-booking/types"
)

// BookingCreateRequest is the payload for creating a booking. TravelDate is
// an RFC 3339 date or datetime string; total amount is never accepted from
// the client.
type BookingCreateRequest struct {
	TourPackageID   uint   `json:"tour_package_id" validate:"required"`
	TravelDate      string `json:"travel_date" validate:"required"`
	NumberOfPeople  int    `json:"number_of_people" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=2000"`
	Phone           string `json:"phone" validate:"omitempty,min=7,max=20"`
	Country         string `json:"country" validate:"omitempty,max=100"`
}

func (b BookingCreateRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(b))
}

// BookingUpdateRequest is the payload for a customer editing their booking.
// Every edit recomputes the total and resets the booking to PENDING.
type BookingUpdateRequest struct {
	TourPackageID   uint   `json:"tour_package_id" validate:"required"`
	TravelDate      string `json:"travel_date" validate:"required"`
	NumberOfPeople  int    `json:"number_of_people" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=2000"`
}

func (b BookingUpdateRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(b))
}

// AssignEmployeeRequest is the payload for POST /api/bookings/:bookingId/assign.
type AssignEmployeeRequest struct {
	EmployeeID uint `json:"employee_id" validate:"required"`
}

func (a AssignEmployeeRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(a))
}

// UpdateStatusRequest is the payload for the employee disposition route.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

func (u UpdateStatusRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(u))
}
