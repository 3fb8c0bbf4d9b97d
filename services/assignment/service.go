package assignment

import (
	"context"
	"errors"
	"fmt"

	assignmentModel "tour-booking/models/assignment"
	bookingModel "tour-booking/models/booking"
	"tour-booking/models/user"
)

// Coordinator failures surfaced to the handler boundary.
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidEmployee    = errors.New("employee is absent, inactive or not an employee")
	ErrAlreadyAssigned    = errors.New("booking already has an assignment")
	ErrBookingFinalized   = errors.New("booking is in a terminal state")
	ErrInvalidDecision    = errors.New("decision must be ACCEPTED or REJECTED")
)

// Repository abstracts assignment persistence. Bind and UpdateDisposition
// mutate the assignment and the booking inside one transaction so the
// mirrored booking status can never drift from the assignment.
type Repository interface {
	FindBooking(ctx context.Context, bookingID uint) (*bookingModel.Booking, error)
	FindEmployee(ctx context.Context, employeeID uint) (*user.User, error)
	FindAssignment(ctx context.Context, bookingID uint) (*assignmentModel.Assignment, error)
	// Bind creates the assignment and mirrors the booking status to ASSIGNED.
	// It re-checks inside the transaction that the booking is still
	// non-terminal and returns ErrBookingFinalized otherwise, so a concurrent
	// cancel cannot end up stitched to a fresh assignment.
	Bind(ctx context.Context, a *assignmentModel.Assignment) error
	// UpdateDisposition updates assignment status and notes and mirrors the
	// booking status, transactionally. Like Bind, the booking UPDATE only
	// matches non-terminal rows and ErrBookingFinalized is returned on zero
	// rows, so a cancel that commits after the service's read wins.
	UpdateDisposition(ctx context.Context, bookingID uint, status assignmentModel.AssignmentStatus, notes string) error
	ListUnassigned(ctx context.Context) ([]bookingModel.Booking, error)
	ListAssigned(ctx context.Context) ([]assignmentModel.Assignment, error)
	ListForEmployee(ctx context.Context, employeeID uint) ([]assignmentModel.Assignment, error)
	FindForEmployee(ctx context.Context, employeeID, bookingID uint) (*assignmentModel.Assignment, error)
}

// Service binds staff to bookings and mirrors assignment state onto the
// booking's own status so a single read of the booking reflects the
// externally visible state.
type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// Bind creates the one assignment a booking may have. There is no implicit
// reassignment through this path.
func (s *Service) Bind(ctx context.Context, bookingID, employeeID uint) (*assignmentModel.Assignment, error) {
	booking, err := s.Repo.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	employee, err := s.Repo.FindEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if employee == nil || !employee.IsEmployee() || !employee.IsActive() {
		return nil, ErrInvalidEmployee
	}

	existing, err := s.Repo.FindAssignment(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyAssigned
	}

	a := &assignmentModel.Assignment{
		BookingID:  bookingID,
		EmployeeID: employeeID,
		Status:     assignmentModel.AssignmentStatusAssigned,
	}
	if err := s.Repo.Bind(ctx, a); err != nil {
		if errors.Is(err, ErrBookingFinalized) {
			return nil, ErrBookingFinalized
		}
		return nil, fmt.Errorf("bind assignment: %w", err)
	}
	return a, nil
}

// Dispose records the employee decision and mirrors it onto the booking.
// The caller's identity is not matched against the assignment's employee;
// any authenticated staff member may record the disposition.
func (s *Service) Dispose(ctx context.Context, bookingID uint, decision assignmentModel.AssignmentStatus, notes string) error {
	if !decision.IsDecision() {
		return ErrInvalidDecision
	}

	booking, err := s.Repo.FindBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.Status.IsTerminal() {
		return ErrBookingFinalized
	}

	existing, err := s.Repo.FindAssignment(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if existing == nil {
		return ErrAssignmentNotFound
	}

	if err := s.Repo.UpdateDisposition(ctx, bookingID, decision, notes); err != nil {
		if errors.Is(err, ErrBookingFinalized) {
			return ErrBookingFinalized
		}
		return fmt.Errorf("update disposition: %w", err)
	}
	return nil
}

// ListUnassigned returns all bookings with no assignment row, newest first.
func (s *Service) ListUnassigned(ctx context.Context) ([]bookingModel.Booking, error) {
	return s.Repo.ListUnassigned(ctx)
}

// ListAssigned returns all assignments with booking and employee detail.
func (s *Service) ListAssigned(ctx context.Context) ([]assignmentModel.Assignment, error) {
	return s.Repo.ListAssigned(ctx)
}

// EmployeeView returns the assignments bound to one employee.
func (s *Service) EmployeeView(ctx context.Context, employeeID uint) ([]assignmentModel.Assignment, error) {
	return s.Repo.ListForEmployee(ctx, employeeID)
}

// EmployeeBookingDetails returns one assignment scoped to the employee it
// is bound to.
func (s *Service) EmployeeBookingDetails(ctx context.Context, employeeID, bookingID uint) (*assignmentModel.Assignment, error) {
	a, err := s.Repo.FindForEmployee(ctx, employeeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	if a == nil {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}
