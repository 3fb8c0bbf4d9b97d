package revenue

import (
	"tour-booking/logger"
	bookingModel "tour-booking/models/booking"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// RevenueController reports booking revenue for the admin dashboard.
// Only accepted bookings count towards revenue.
type RevenueController struct {
	DB *gorm.DB
}

func NewRevenueController(db *gorm.DB) *RevenueController {
	return &RevenueController{DB: db}
}

type packageRevenue struct {
	TourPackageID uint    `json:"tour_package_id"`
	Title         string  `json:"title"`
	Bookings      int64   `json:"bookings"`
	Revenue       float64 `json:"revenue"`
}

// Overview returns total and current-month revenue plus booking counts
// per status.
func (rc *RevenueController) Overview(c *fiber.Ctx) error {
	var totalRevenue float64
	err := rc.DB.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusAccepted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		logger.Error("Failed to compute total revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()

	var monthRevenue float64
	err = rc.DB.Model(&bookingModel.Booking{}).
		Where("status = ? AND created_at BETWEEN ? AND ?",
			bookingModel.BookingStatusAccepted, monthStart, monthEnd).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&monthRevenue).Error
	if err != nil {
		logger.Error("Failed to compute monthly revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	statusCounts := make(map[string]int64)
	for _, status := range bookingModel.GetAllBookingStatuses() {
		var count int64
		if err := rc.DB.Model(&bookingModel.Booking{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			logger.Error("Failed to count bookings by status", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Internal server error",
				Status:  fiber.StatusInternalServerError,
			})
		}
		statusCounts[string(status)] = count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Revenue overview fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"total_revenue":       totalRevenue,
			"month_revenue":       monthRevenue,
			"month_start":         monthStart,
			"month_end":           monthEnd,
			"bookings_per_status": statusCounts,
		},
	})
}

// PerPackage groups accepted-booking revenue by tour package.
func (rc *RevenueController) PerPackage(c *fiber.Ctx) error {
	var rows []packageRevenue
	err := rc.DB.Model(&bookingModel.Booking{}).
		Select("bookings.tour_package_id, tour_packages.title, COUNT(bookings.id) AS bookings, COALESCE(SUM(bookings.total_amount), 0) AS revenue").
		Joins("JOIN tour_packages ON tour_packages.id = bookings.tour_package_id").
		Where("bookings.status = ?", bookingModel.BookingStatusAccepted).
		Group("bookings.tour_package_id, tour_packages.title").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to compute per-package revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Per-package revenue fetched successfully",
		Status:  fiber.StatusOK,
		Data:    rows,
	})
}
