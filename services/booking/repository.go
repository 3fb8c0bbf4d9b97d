package booking

import (
	"context"
	"errors"
	"fmt"

	bookingModel "tour-booking/models/booking"
	tourPackage "tour-booking/models/tour_package"

	"gorm.io/gorm"
)

// GormRepository is the postgres-backed Repository.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) FindPackage(ctx context.Context, id uint) (*tourPackage.TourPackage, error) {
	var pkg tourPackage.TourPackage
	err := r.DB.WithContext(ctx).First(&pkg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query package: %w", err)
	}
	return &pkg, nil
}

func (r *GormRepository) Create(ctx context.Context, b *bookingModel.Booking) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepository) Save(ctx context.Context, b *bookingModel.Booking) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepository) FindForCustomer(ctx context.Context, bookingID, customerID uint) (*bookingModel.Booking, error) {
	var booking bookingModel.Booking
	err := r.DB.WithContext(ctx).
		Preload("TourPackage").
		Preload("TourPackage.Locations").
		Preload("TourPackage.TourPlanDays").
		Where("id = ? AND user_id = ?", bookingID, customerID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return &booking, nil
}

func (r *GormRepository) FindByID(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
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

func (r *GormRepository) ListForCustomer(ctx context.Context, customerID uint) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := r.DB.WithContext(ctx).
		Preload("TourPackage").
		Where("user_id = ? AND status <> ?", customerID, bookingModel.BookingStatusCancelled).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormRepository) UpdateStatus(ctx context.Context, bookingID uint, status bookingModel.BookingStatus) error {
	return r.DB.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}
