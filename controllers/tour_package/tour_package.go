package tour_package

import (
	"errors"
	"strconv"

	"tour-booking/logger"
	tourPackageModel "tour-booking/models/tour_package"
	"tour-booking/types"
	tourPackageTypes "tour-booking/types/tour_package"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TourPackageController serves the package and destination catalog.
type TourPackageController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewTourPackageController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TourPackageController {
	return &TourPackageController{DB: db, Logger: asyncLogger}
}

// Index lists all tour packages with destinations and day plans.
func (tc *TourPackageController) Index(c *fiber.Ctx) error {
	var packages []tourPackageModel.TourPackage
	err := tc.DB.
		Preload("Locations").
		Preload("TourPlanDays").
		Order("created_at DESC").
		Find(&packages).Error
	if err != nil {
		logger.Error("Failed to fetch tour packages", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Tour packages fetched successfully",
		Status:  fiber.StatusOK,
		Data:    packages,
	})
}

// Store creates a package. Destinations are matched by name and reused
// when they already exist, so the same destination can belong to many
// packages without duplicate rows.
func (tc *TourPackageController) Store(c *fiber.Ctx) error {
	var req tourPackageTypes.CreateTourPackageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var created tourPackageModel.TourPackage
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		locations := make([]tourPackageModel.Destination, 0, len(req.Locations))
		for _, loc := range req.Locations {
			var dest tourPackageModel.Destination
			err := tx.Where("name = ?", loc.Name).First(&dest).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				dest = tourPackageModel.Destination{
					Name:        loc.Name,
					Description: loc.Description,
					Image:       loc.Image,
				}
				if err := tx.Create(&dest).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			locations = append(locations, dest)
		}

		days := make([]tourPackageModel.TourPlanDay, 0, len(req.TourPlanDays))
		for _, day := range req.TourPlanDays {
			days = append(days, tourPackageModel.TourPlanDay{
				Title:       day.Title,
				Activity:    day.Activity,
				Description: day.Description,
				EndOfTheDay: day.EndOfTheDay,
			})
		}

		created = tourPackageModel.TourPackage{
			Title:            req.Title,
			Country:          req.Country,
			PackageType:      req.PackageType,
			Prices:           req.Prices,
			Image:            req.Image,
			Alt:              req.Alt,
			ShortDescription: req.ShortDescription,
			Description:      req.Description,
			Locations:        locations,
			TourPlanDays:     days,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		logger.Error("Failed to create tour package", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Tour package created: " + created.Title)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Tour package created successfully",
		Status:  fiber.StatusCreated,
		Data:    created,
	})
}

// Destinations lists all destinations.
func (tc *TourPackageController) Destinations(c *fiber.Ctx) error {
	var destinations []tourPackageModel.Destination
	if err := tc.DB.Order("name ASC").Find(&destinations).Error; err != nil {
		logger.Error("Failed to fetch destinations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Destinations fetched successfully",
		Status:  fiber.StatusOK,
		Data:    destinations,
	})
}

// DestinationDetails returns a destination with the packages that visit it.
func (tc *TourPackageController) DestinationDetails(c *fiber.Ctx) error {
	destinationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || destinationID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Destination ID is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	var dest tourPackageModel.Destination
	err = tc.DB.
		Preload("TourPackages").
		First(&dest, uint(destinationID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Destination not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if err != nil {
		logger.Error("Failed to fetch destination", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Destination fetched successfully",
		Status:  fiber.StatusOK,
		Data:    dest,
	})
}
