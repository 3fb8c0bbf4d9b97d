package routes

import (
	"os"
	"strconv"

	"tour-booking/constants"
	"tour-booking/controllers/assignment"
	"tour-booking/controllers/auth"
	"tour-booking/controllers/booking"
	"tour-booking/controllers/revenue"
	"tour-booking/controllers/tour_package"
	"tour-booking/controllers/user"
	"tour-booking/httpServices/mailer"
	"tour-booking/logger"
	"tour-booking/middleware"
	assignmentService "tour-booking/services/assignment"
	bookingService "tour-booking/services/booking"
	otpService "tour-booking/services/otp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// newOTPStore picks the code store backend. Redis is used when
// OTP_STORE=redis so codes survive restarts and are shared between
// instances; the in-memory store is the default for single-node runs.
func newOTPStore() otpService.Store {
	if os.Getenv("OTP_STORE") != "redis" {
		return otpService.NewMemoryStore()
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}
	logger.Info("Using redis OTP store at " + os.Getenv("REDIS_ADDR"))
	return otpService.NewRedisStore(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), redisDB)
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)

	otpSvc := otpService.NewOTPService(newOTPStore(), mailer.NewClientFromEnv())
	bookingSvc := bookingService.NewService(bookingService.NewGormRepository(db))
	assignmentSvc := assignmentService.NewService(assignmentService.NewGormRepository(db))

	authController := auth.NewAuthController(db, otpSvc, asyncLogger)
	bookingController := booking.NewBookingController(bookingSvc, asyncLogger)
	assignmentController := assignment.NewAssignmentController(assignmentSvc, asyncLogger)
	userController := user.NewUserController(db, asyncLogger)
	tourPackageController := tour_package.NewTourPackageController(db, asyncLogger)
	revenueController := revenue.NewRevenueController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	api := app.Group("/api")

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)
	authGroup.Post("/forgot-password", authController.ForgotPassword)
	authGroup.Post("/verify-otp-login", authController.VerifyOTPLogin)
	authGroup.Get("/verify", middleware.RequireAuth(), authController.Verify)
	authGroup.Post("/logout", middleware.RequireAuth(), authController.LogOut)

	/*=============================================================================
	| User Routes
	===============================================================================*/
	userGroup := api.Group("/users").Use(middleware.RequireAuth())
	userGroup.Get("/me", userController.Me)
	userGroup.Put("/me", userController.UpdateProfile)
	userGroup.Delete("/me", userController.DeleteAccount)

	userGroup.Get("/employees", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), userController.Employees)
	userGroup.Post("/employees", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), userController.CreateEmployee)
	userGroup.Delete("/employees/:employeeId", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), userController.DeleteEmployee)

	/*=============================================================================
	| Tour Package Routes
	===============================================================================*/
	packageGroup := api.Group("/tour-packages")
	packageGroup.Get("/get-tour-packages", tourPackageController.Index)
	packageGroup.Get("/get-destinations", tourPackageController.Destinations)
	packageGroup.Get("/get-destinations/:id", tourPackageController.DestinationDetails)
	packageGroup.Post("/create-tour-package", middleware.RequireAuth(), middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), tourPackageController.Store)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings").Use(middleware.RequireAuth())

	// Customer booking routes
	bookingGroup.Post("/createbooking", middleware.RequireRoles(
		constants.RoleCustomer,
	), bookingController.Store)
	bookingGroup.Get("/get-bookings", middleware.RequireRoles(
		constants.RoleCustomer,
	), bookingController.Index)
	bookingGroup.Put("/customer/:bookingId", middleware.RequireRoles(
		constants.RoleCustomer,
	), bookingController.Update)
	bookingGroup.Delete("/customer/:bookingId", middleware.RequireRoles(
		constants.RoleCustomer,
	), bookingController.Destroy)

	// Admin booking routes
	bookingGroup.Get("/get-all-unassigned-bookings", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), assignmentController.Unassigned)
	bookingGroup.Get("/get-all-assigned-bookings", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), assignmentController.Assigned)

	// Employee booking routes
	bookingGroup.Get("/employee/assigned-bookings", middleware.RequireRoles(
		constants.RoleEmployee,
	), assignmentController.EmployeeAssigned)
	bookingGroup.Get("/employee/:bookingId/details", middleware.RequireRoles(
		constants.RoleEmployee,
	), assignmentController.EmployeeBookingDetails)
	bookingGroup.Put("/employee/:bookingId/status", middleware.RequireRoles(
		constants.StaffRoles...,
	), assignmentController.UpdateStatus)

	bookingGroup.Get("/:bookingId/details", middleware.RequireRoles(
		constants.RoleCustomer,
	), bookingController.Details)
	bookingGroup.Post("/:bookingId/assign", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), assignmentController.Assign)
	bookingGroup.Delete("/:bookingId", middleware.RequireRoles(
		constants.RoleSuperAdmin,
	), bookingController.AdminDestroy)

	/*=============================================================================
	| Revenue Routes
	===============================================================================*/
	revenueGroup := api.Group("/revenue").Use(middleware.RequireAuth()).Use(middleware.RequireRoles(
		constants.RoleSuperAdmin,
	))
	revenueGroup.Get("/overview", revenueController.Overview)
	revenueGroup.Get("/packages", revenueController.PerPackage)
}
