package tour_package

import (
	"tour-booking/types"
)

// LocationRequest is a nested destination in a package creation payload.
type LocationRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
	Image       string `json:"image" validate:"omitempty"`
}

// TourPlanDayRequest is one nested itinerary day.
type TourPlanDayRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Activity    string `json:"activity" validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=10"`
	EndOfTheDay string `json:"end_of_the_day" validate:"required,min=3"`
}

// CreateTourPackageRequest mirrors the catalog creation payload.
type CreateTourPackageRequest struct {
	Title            string               `json:"title" validate:"required,min=3,max=255"`
	Country          string               `json:"country" validate:"required,min=2,max=100"`
	PackageType      string               `json:"package_type" validate:"required,min=3,max=100"`
	Prices           float64              `json:"prices" validate:"required,gt=0"`
	Image            string               `json:"image" validate:"omitempty"`
	Alt              string               `json:"alt" validate:"required,min=3,max=255"`
	ShortDescription string               `json:"short_description" validate:"required,min=10,max=500"`
	Description      string               `json:"description" validate:"required,min=20"`
	Locations        []LocationRequest    `json:"locations" validate:"required,min=1,dive"`
	TourPlanDays     []TourPlanDayRequest `json:"tour_plan_days" validate:"required,min=1,dive"`
}

func (r CreateTourPackageRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}
