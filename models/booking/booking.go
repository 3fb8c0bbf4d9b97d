package booking

import (
	"time"

	tourPackage "tour-booking/models/tour_package"
	"tour-booking/models/user"
)

// Booking represents a customer's request to purchase a tour package.
// TotalAmount is computed from the package price at creation time and only
// recomputed when the owning customer edits the booking.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the owning customer
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"customer"`

	// Foreign key for the booked package
	TourPackageID uint                    `gorm:"not null;index" json:"tour_package_id"`
	TourPackage   tourPackage.TourPackage `gorm:"foreignKey:TourPackageID" json:"tour_package"`

	TravelDate      time.Time `gorm:"not null" json:"travel_date"`
	NumberOfPeople  int       `gorm:"not null" json:"number_of_people"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	Phone           string    `gorm:"type:varchar(20)" json:"phone"`
	Country         string    `gorm:"type:varchar(100)" json:"country"`

	Status BookingStatus `gorm:"type:varchar(50);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
