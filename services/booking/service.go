package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingModel "tour-booking/models/booking"
	tourPackage "tour-booking/models/tour_package"
)

// Lifecycle failures surfaced to the handler boundary. Ownership failures and
// absence are both ErrBookingNotFound so booking existence never leaks across
// customers.
var (
	ErrPackageNotFound  = errors.New("tour package not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingFinalized = errors.New("booking is in a terminal state")
)

// Repository abstracts booking persistence for the lifecycle engine.
type Repository interface {
	FindPackage(ctx context.Context, id uint) (*tourPackage.TourPackage, error)
	Create(ctx context.Context, b *bookingModel.Booking) error
	Save(ctx context.Context, b *bookingModel.Booking) error
	// FindForCustomer returns nil when the booking is absent or owned by
	// someone else.
	FindForCustomer(ctx context.Context, bookingID, customerID uint) (*bookingModel.Booking, error)
	FindByID(ctx context.Context, bookingID uint) (*bookingModel.Booking, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]bookingModel.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uint, status bookingModel.BookingStatus) error
}

// CreateInput carries the customer-provided fields of a new booking.
type CreateInput struct {
	TourPackageID   uint
	TravelDate      time.Time
	NumberOfPeople  int
	SpecialRequests string
	Phone           string
	Country         string
}

// UpdateInput carries the editable fields of an existing booking.
type UpdateInput struct {
	TourPackageID   uint
	TravelDate      time.Time
	NumberOfPeople  int
	SpecialRequests string
}

// Service owns the booking state machine from creation through terminal
// disposition. Status changes driven by staff go through the assignment
// coordinator, never through this service.
type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// Create inserts a new PENDING booking. The total amount is computed from
// the package price at creation time and frozen until the customer edits.
func (s *Service) Create(ctx context.Context, customerID uint, input CreateInput) (*bookingModel.Booking, error) {
	pkg, err := s.Repo.FindPackage(ctx, input.TourPackageID)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	booking := &bookingModel.Booking{
		UserID:          customerID,
		TourPackageID:   pkg.ID,
		TravelDate:      input.TravelDate,
		NumberOfPeople:  input.NumberOfPeople,
		TotalAmount:     pkg.Prices * float64(input.NumberOfPeople),
		SpecialRequests: input.SpecialRequests,
		Phone:           input.Phone,
		Country:         input.Country,
		Status:          bookingModel.BookingStatusPending,
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// Update applies a customer edit. Any edit invalidates prior assignment or
// approval: the total is recomputed and the status drops back to PENDING.
func (s *Service) Update(ctx context.Context, bookingID, customerID uint, input UpdateInput) (*bookingModel.Booking, error) {
	booking, err := s.Repo.FindForCustomer(ctx, bookingID, customerID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	pkg, err := s.Repo.FindPackage(ctx, input.TourPackageID)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	booking.TourPackageID = pkg.ID
	booking.TravelDate = input.TravelDate
	booking.NumberOfPeople = input.NumberOfPeople
	booking.SpecialRequests = input.SpecialRequests
	booking.TotalAmount = pkg.Prices * float64(input.NumberOfPeople)
	booking.Status = bookingModel.BookingStatusPending

	if err := s.Repo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}
	return booking, nil
}

// Details returns a single booking under the same ownership scoping as Update.
func (s *Service) Details(ctx context.Context, bookingID, customerID uint) (*bookingModel.Booking, error) {
	booking, err := s.Repo.FindForCustomer(ctx, bookingID, customerID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListForCustomer returns the customer's bookings excluding CANCELLED,
// newest first.
func (s *Service) ListForCustomer(ctx context.Context, customerID uint) ([]bookingModel.Booking, error) {
	return s.Repo.ListForCustomer(ctx, customerID)
}

// CancelByCustomer soft-deletes a booking owned by the customer.
func (s *Service) CancelByCustomer(ctx context.Context, bookingID, customerID uint) error {
	booking, err := s.Repo.FindForCustomer(ctx, bookingID, customerID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	return s.cancel(ctx, booking)
}

// CancelByAdmin soft-deletes any booking regardless of ownership.
func (s *Service) CancelByAdmin(ctx context.Context, bookingID uint) error {
	booking, err := s.Repo.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	return s.cancel(ctx, booking)
}

func (s *Service) cancel(ctx context.Context, booking *bookingModel.Booking) error {
	// Cancellation is absorbing: re-cancelling succeeds silently.
	if booking.Status == bookingModel.BookingStatusCancelled {
		return nil
	}
	if !booking.Status.CanBeCancelled() {
		return ErrBookingFinalized
	}
	if err := s.Repo.UpdateStatus(ctx, booking.ID, bookingModel.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
