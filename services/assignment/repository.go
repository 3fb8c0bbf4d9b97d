package assignment

import (
	"context"
	"errors"
	"fmt"

	assignmentModel "tour-booking/models/assignment"
	bookingModel "tour-booking/models/booking"
	"tour-booking/models/user"

	"gorm.io/gorm"
)

// GormRepository is the postgres-backed Repository.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) FindBooking(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	var booking bookingModel.Booking
	err := r.DB.WithContext(ctx).First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return &booking, nil
}

func (r *GormRepository) FindEmployee(ctx context.Context, employeeID uint) (*user.User, error) {
	var employee user.User
	err := r.DB.WithContext(ctx).First(&employee, employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return &employee, nil
}

func (r *GormRepository) FindAssignment(ctx context.Context, bookingID uint) (*assignmentModel.Assignment, error) {
	var a assignmentModel.Assignment
	err := r.DB.WithContext(ctx).Where("booking_id = ?", bookingID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query assignment: %w", err)
	}
	return &a, nil
}

func (r *GormRepository) Bind(ctx context.Context, a *assignmentModel.Assignment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Mirror the booking status first, guarding against a concurrent
		// cancel: the UPDATE only matches non-terminal rows.
		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status IN ?", a.BookingID, []bookingModel.BookingStatus{
				bookingModel.BookingStatusPending,
				bookingModel.BookingStatusAssigned,
			}).
			Update("status", bookingModel.BookingStatusAssigned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingFinalized
		}

		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *GormRepository) UpdateDisposition(ctx context.Context, bookingID uint, status assignmentModel.AssignmentStatus, notes string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Mirror the booking status first, with the same non-terminal guard
		// as Bind: a cancel committing after the service's read must not be
		// overwritten by the disposition.
		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status IN ?", bookingID, []bookingModel.BookingStatus{
				bookingModel.BookingStatusPending,
				bookingModel.BookingStatusAssigned,
			}).
			Update("status", status.BookingStatus())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingFinalized
		}

		return tx.Model(&assignmentModel.Assignment{}).
			Where("booking_id = ?", bookingID).
			Updates(map[string]interface{}{
				"status": status,
				"notes":  notes,
			}).Error
	})
}

func (r *GormRepository) ListUnassigned(ctx context.Context) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("TourPackage").
		Where("status <> ?", bookingModel.BookingStatusCancelled).
		Where("id NOT IN (?)", r.DB.Model(&assignmentModel.Assignment{}).Select("booking_id")).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list unassigned bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormRepository) ListAssigned(ctx context.Context) ([]assignmentModel.Assignment, error) {
	var assignments []assignmentModel.Assignment
	err := r.DB.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.User").
		Preload("Booking.TourPackage").
		Preload("Employee").
		Joins("JOIN bookings ON bookings.id = assignments.booking_id").
		Order("bookings.created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("list assigned bookings: %w", err)
	}
	return assignments, nil
}

func (r *GormRepository) ListForEmployee(ctx context.Context, employeeID uint) ([]assignmentModel.Assignment, error) {
	var assignments []assignmentModel.Assignment
	err := r.DB.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.User").
		Preload("Booking.TourPackage").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("list employee assignments: %w", err)
	}
	return assignments, nil
}

func (r *GormRepository) FindForEmployee(ctx context.Context, employeeID, bookingID uint) (*assignmentModel.Assignment, error) {
	var a assignmentModel.Assignment
	err := r.DB.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.User").
		Preload("Booking.TourPackage").
		Preload("Booking.TourPackage.Locations").
		Preload("Booking.TourPackage.TourPlanDays").
		Where("booking_id = ? AND employee_id = ?", bookingID, employeeID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query assignment: %w", err)
	}
	return &a, nil
}
