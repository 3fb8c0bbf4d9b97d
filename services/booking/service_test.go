package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingModel "tour-booking/models/booking"
	tourPackage "tour-booking/models/tour_package"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindPackage(ctx context.Context, id uint) (*tourPackage.TourPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tourPackage.TourPackage), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, b *bookingModel.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) Save(ctx context.Context, b *bookingModel.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) FindForCustomer(ctx context.Context, bookingID, customerID uint) (*bookingModel.Booking, error) {
	args := m.Called(ctx, bookingID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModel.Booking), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModel.Booking), args.Error(1)
}

func (m *MockRepository) ListForCustomer(ctx context.Context, customerID uint) ([]bookingModel.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]bookingModel.Booking), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, bookingID uint, status bookingModel.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func testPackage() *tourPackage.TourPackage {
	return &tourPackage.TourPackage{
		ID:     7,
		Title:  "Sundarbans Explorer",
		Prices: 150.50,
	}
}

func TestService_Create_Success(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	repo.On("FindPackage", ctx, uint(7)).Return(testPackage(), nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

	created, err := service.Create(ctx, 42, CreateInput{
		TourPackageID:  7,
		TravelDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		NumberOfPeople: 4,
		Phone:          "+8801712345678",
		Country:        "Bangladesh",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, bookingModel.BookingStatusPending, created.Status)
	assert.Equal(t, uint(42), created.UserID)
	assert.Equal(t, 150.50*4, created.TotalAmount)

	repo.AssertExpectations(t)
}

func TestService_Create_PackageNotFound(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	repo.On("FindPackage", ctx, uint(99)).Return(nil, nil).Once()

	created, err := service.Create(ctx, 42, CreateInput{TourPackageID: 99, NumberOfPeople: 2})

	assert.ErrorIs(t, err, ErrPackageNotFound)
	assert.Nil(t, created)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create")
}

func TestService_Update_RecomputesTotalAndResetsStatus(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	existing := &bookingModel.Booking{
		ID:             11,
		UserID:         42,
		TourPackageID:  7,
		NumberOfPeople: 2,
		TotalAmount:    301.00,
		Status:         bookingModel.BookingStatusAccepted,
	}

	repo.On("FindForCustomer", ctx, uint(11), uint(42)).Return(existing, nil).Once()
	repo.On("FindPackage", ctx, uint(7)).Return(testPackage(), nil).Once()
	repo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

	updated, err := service.Update(ctx, 11, 42, UpdateInput{
		TourPackageID:  7,
		TravelDate:     time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC),
		NumberOfPeople: 5,
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	// An edit invalidates prior approval and reprices the booking.
	assert.Equal(t, bookingModel.BookingStatusPending, updated.Status)
	assert.Equal(t, 150.50*5, updated.TotalAmount)

	repo.AssertExpectations(t)
}

func TestService_Update_ForeignBookingLooksAbsent(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	// The repository reports nil for a booking owned by another customer;
	// the caller must not be able to distinguish that from true absence.
	repo.On("FindForCustomer", ctx, uint(11), uint(999)).Return(nil, nil).Once()

	updated, err := service.Update(ctx, 11, 999, UpdateInput{TourPackageID: 7, NumberOfPeople: 2})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, updated)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Save")
}

func TestService_CancelByCustomer_PendingAndAssigned(t *testing.T) {
	for _, status := range []bookingModel.BookingStatus{
		bookingModel.BookingStatusPending,
		bookingModel.BookingStatusAssigned,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &MockRepository{}
			service := NewService(repo)
			ctx := context.Background()

			existing := &bookingModel.Booking{ID: 11, UserID: 42, Status: status}
			repo.On("FindForCustomer", ctx, uint(11), uint(42)).Return(existing, nil).Once()
			repo.On("UpdateStatus", ctx, uint(11), bookingModel.BookingStatusCancelled).Return(nil).Once()

			err := service.CancelByCustomer(ctx, 11, 42)

			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_CancelByCustomer_AlreadyCancelled(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	existing := &bookingModel.Booking{ID: 11, UserID: 42, Status: bookingModel.BookingStatusCancelled}
	repo.On("FindForCustomer", ctx, uint(11), uint(42)).Return(existing, nil).Once()

	err := service.CancelByCustomer(ctx, 11, 42)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestService_CancelByCustomer_FinalizedBooking(t *testing.T) {
	for _, status := range []bookingModel.BookingStatus{
		bookingModel.BookingStatusAccepted,
		bookingModel.BookingStatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &MockRepository{}
			service := NewService(repo)
			ctx := context.Background()

			existing := &bookingModel.Booking{ID: 11, UserID: 42, Status: status}
			repo.On("FindForCustomer", ctx, uint(11), uint(42)).Return(existing, nil).Once()

			err := service.CancelByCustomer(ctx, 11, 42)

			assert.ErrorIs(t, err, ErrBookingFinalized)
			repo.AssertNotCalled(t, "UpdateStatus")
		})
	}
}

func TestService_CancelByAdmin_IgnoresOwnership(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	existing := &bookingModel.Booking{ID: 11, UserID: 42, Status: bookingModel.BookingStatusPending}
	repo.On("FindByID", ctx, uint(11)).Return(existing, nil).Once()
	repo.On("UpdateStatus", ctx, uint(11), bookingModel.BookingStatusCancelled).Return(nil).Once()

	err := service.CancelByAdmin(ctx, 11)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "FindForCustomer")
}

func TestService_Details_RepositoryError(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	repo.On("FindForCustomer", ctx, uint(11), uint(42)).Return(nil, dbErr).Once()

	booking, err := service.Details(ctx, 11, 42)

	assert.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, booking)
}
