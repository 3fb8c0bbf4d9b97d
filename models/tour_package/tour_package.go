package tour_package

import (
	"time"
)

// TourPackage represents a sellable tour with its destinations and day plan.
type TourPackage struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string  `gorm:"type:varchar(255);not null" json:"title"`
	Country          string  `gorm:"type:varchar(100);not null" json:"country"`
	PackageType      string  `gorm:"type:varchar(100);not null" json:"package_type"`
	Prices           float64 `gorm:"not null" json:"prices"`
	Image            string  `gorm:"type:varchar(2048)" json:"image"`
	Alt              string  `gorm:"type:varchar(255)" json:"alt"`
	ShortDescription string  `gorm:"type:varchar(500)" json:"short_description"`
	Description      string  `gorm:"type:text" json:"description"`

	Locations    []Destination `gorm:"many2many:tour_package_destinations" json:"locations"`
	TourPlanDays []TourPlanDay `gorm:"foreignKey:TourPackageID" json:"tour_plan_days"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Destination is a location a package visits. Destinations are shared
// between packages and looked up by name on package creation.
type Destination struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;unique" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(2048)" json:"image"`

	TourPackages []TourPackage `gorm:"many2many:tour_package_destinations" json:"tour_packages,omitempty"`
}

// TourPlanDay is one day of a package itinerary.
type TourPlanDay struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TourPackageID uint   `gorm:"not null;index" json:"tour_package_id"`
	Title         string `gorm:"type:varchar(255);not null" json:"title"`
	Activity      string `gorm:"type:text;not null" json:"activity"`
	Description   string `gorm:"type:text" json:"description"`
	EndOfTheDay   string `gorm:"type:varchar(255)" json:"end_of_the_day"`
}
