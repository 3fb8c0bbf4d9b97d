package assignment

import (
	"context"
	"errors"
	"testing"

	"tour-booking/constants"
	assignmentModel "tour-booking/models/assignment"
	bookingModel "tour-booking/models/booking"
	"tour-booking/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindBooking(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModel.Booking), args.Error(1)
}

func (m *MockRepository) FindEmployee(ctx context.Context, employeeID uint) (*user.User, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockRepository) FindAssignment(ctx context.Context, bookingID uint) (*assignmentModel.Assignment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentModel.Assignment), args.Error(1)
}

func (m *MockRepository) Bind(ctx context.Context, a *assignmentModel.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) UpdateDisposition(ctx context.Context, bookingID uint, status assignmentModel.AssignmentStatus, notes string) error {
	args := m.Called(ctx, bookingID, status, notes)
	return args.Error(0)
}

func (m *MockRepository) ListUnassigned(ctx context.Context) ([]bookingModel.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]bookingModel.Booking), args.Error(1)
}

func (m *MockRepository) ListAssigned(ctx context.Context) ([]assignmentModel.Assignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]assignmentModel.Assignment), args.Error(1)
}

func (m *MockRepository) ListForEmployee(ctx context.Context, employeeID uint) ([]assignmentModel.Assignment, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]assignmentModel.Assignment), args.Error(1)
}

func (m *MockRepository) FindForEmployee(ctx context.Context, employeeID, bookingID uint) (*assignmentModel.Assignment, error) {
	args := m.Called(ctx, employeeID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentModel.Assignment), args.Error(1)
}

func activeEmployee() *user.User {
	return &user.User{
		ID:     5,
		Name:   "Rafiq",
		Role:   constants.RoleEmployee,
		Status: constants.UserStatusActive,
	}
}

func TestService_Bind_Success(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusPending}
	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindEmployee", ctx, uint(5)).Return(activeEmployee(), nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(nil, nil).Once()
	repo.On("Bind", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()

	a, err := service.Bind(ctx, 11, 5)

	assert.NoError(t, err)
	assert.NotNil(t, a)
	assert.Equal(t, assignmentModel.AssignmentStatusAssigned, a.Status)
	assert.Equal(t, uint(11), a.BookingID)
	assert.Equal(t, uint(5), a.EmployeeID)

	repo.AssertExpectations(t)
}

func TestService_Bind_BookingNotFound(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	repo.On("FindBooking", ctx, uint(99)).Return(nil, nil).Once()

	a, err := service.Bind(ctx, 99, 5)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, a)
	repo.AssertNotCalled(t, "Bind")
}

func TestService_Bind_RejectsUnsuitableEmployee(t *testing.T) {
	cases := []struct {
		name     string
		employee *user.User
	}{
		{"absent", nil},
		{"customer role", &user.User{ID: 5, Role: constants.RoleCustomer, Status: constants.UserStatusActive}},
		{"super admin role", &user.User{ID: 5, Role: constants.RoleSuperAdmin, Status: constants.UserStatusActive}},
		{"inactive", &user.User{ID: 5, Role: constants.RoleEmployee, Status: constants.UserStatusInactive}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockRepository{}
			service := NewService(repo)
			ctx := context.Background()

			booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusPending}
			repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
			if tc.employee == nil {
				repo.On("FindEmployee", ctx, uint(5)).Return(nil, nil).Once()
			} else {
				repo.On("FindEmployee", ctx, uint(5)).Return(tc.employee, nil).Once()
			}

			a, err := service.Bind(ctx, 11, 5)

			assert.ErrorIs(t, err, ErrInvalidEmployee)
			assert.Nil(t, a)
			repo.AssertNotCalled(t, "Bind")
		})
	}
}

func TestService_Bind_AlreadyAssigned(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusAssigned}
	existing := &assignmentModel.Assignment{ID: 3, BookingID: 11, EmployeeID: 6}

	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindEmployee", ctx, uint(5)).Return(activeEmployee(), nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(existing, nil).Once()

	a, err := service.Bind(ctx, 11, 5)

	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Nil(t, a)
	repo.AssertNotCalled(t, "Bind")
}

func TestService_Bind_ConcurrentCancelSurfacesFinalized(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	// The booking looked assignable at read time but was cancelled before
	// the transaction ran; the repository reports that as ErrBookingFinalized.
	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusPending}
	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindEmployee", ctx, uint(5)).Return(activeEmployee(), nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(nil, nil).Once()
	repo.On("Bind", ctx, mock.Anything).Return(ErrBookingFinalized).Once()

	a, err := service.Bind(ctx, 11, 5)

	assert.ErrorIs(t, err, ErrBookingFinalized)
	assert.Nil(t, a)
	repo.AssertExpectations(t)
}

func TestService_Dispose_Success(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusAssigned}
	existing := &assignmentModel.Assignment{ID: 3, BookingID: 11, EmployeeID: 5, Status: assignmentModel.AssignmentStatusAssigned}

	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(existing, nil).Once()
	repo.On("UpdateDisposition", ctx, uint(11), assignmentModel.AssignmentStatusAccepted, "all documents in order").Return(nil).Once()

	err := service.Dispose(ctx, 11, assignmentModel.AssignmentStatusAccepted, "all documents in order")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Dispose_RejectsNonDecisionStatus(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	err := service.Dispose(ctx, 11, assignmentModel.AssignmentStatusAssigned, "")

	assert.ErrorIs(t, err, ErrInvalidDecision)
	repo.AssertNotCalled(t, "FindBooking")
	repo.AssertNotCalled(t, "UpdateDisposition")
}

func TestService_Dispose_TerminalBookingIsImmutable(t *testing.T) {
	for _, status := range []bookingModel.BookingStatus{
		bookingModel.BookingStatusAccepted,
		bookingModel.BookingStatusRejected,
		bookingModel.BookingStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &MockRepository{}
			service := NewService(repo)
			ctx := context.Background()

			booking := &bookingModel.Booking{ID: 11, Status: status}
			repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()

			err := service.Dispose(ctx, 11, assignmentModel.AssignmentStatusRejected, "")

			assert.ErrorIs(t, err, ErrBookingFinalized)
			repo.AssertNotCalled(t, "UpdateDisposition")
		})
	}
}

func TestService_Dispose_ConcurrentCancelSurfacesFinalized(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	// The booking was still ASSIGNED at read time but a cancel committed
	// before the disposition transaction; the guarded booking UPDATE matches
	// zero rows and the repository reports ErrBookingFinalized.
	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusAssigned}
	existing := &assignmentModel.Assignment{ID: 3, BookingID: 11, EmployeeID: 5, Status: assignmentModel.AssignmentStatusAssigned}

	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(existing, nil).Once()
	repo.On("UpdateDisposition", ctx, uint(11), assignmentModel.AssignmentStatusAccepted, "").Return(ErrBookingFinalized).Once()

	err := service.Dispose(ctx, 11, assignmentModel.AssignmentStatusAccepted, "")

	assert.ErrorIs(t, err, ErrBookingFinalized)
	repo.AssertExpectations(t)
}

func TestService_Dispose_AssignmentMissing(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	booking := &bookingModel.Booking{ID: 11, Status: bookingModel.BookingStatusPending}
	repo.On("FindBooking", ctx, uint(11)).Return(booking, nil).Once()
	repo.On("FindAssignment", ctx, uint(11)).Return(nil, nil).Once()

	err := service.Dispose(ctx, 11, assignmentModel.AssignmentStatusAccepted, "")

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	repo.AssertNotCalled(t, "UpdateDisposition")
}

func TestService_EmployeeBookingDetails_ScopedToEmployee(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	// Assignment exists but belongs to another employee; the scoped lookup
	// returns nil and the caller sees not-found.
	repo.On("FindForEmployee", ctx, uint(5), uint(11)).Return(nil, nil).Once()

	a, err := service.EmployeeBookingDetails(ctx, 5, 11)

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	assert.Nil(t, a)
}

func TestService_ListUnassigned_PropagatesRepositoryError(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	repo.On("ListUnassigned", ctx).Return([]bookingModel.Booking{}, dbErr).Once()

	_, err := service.ListUnassigned(ctx)

	assert.ErrorIs(t, err, dbErr)
}
