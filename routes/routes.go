package routes

import (
	"github.com/gofiber/fiber/v2"

	"parcel-delivery/controllers/parcel"
	"parcel-delivery/controllers/payment"
	"parcel-delivery/controllers/rider"
	"parcel-delivery/controllers/server"
	"parcel-delivery/controllers/tracking"
	"parcel-delivery/controllers/user"
	"parcel-delivery/httpServices/identity"
	paymentService "parcel-delivery/httpServices/payment"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	"parcel-delivery/repository"
	"parcel-delivery/services"
)

// Dependencies are the collaborators shared by every controller.
type Dependencies struct {
	ServiceName string
	Store       repository.Store
	Verifier    identity.Verifier
	Processor   paymentService.Processor
	Logger      *logger.AsyncLogger
	Currency    string
	// StrictDeliveryTransitions turns on ownership and lifecycle checks for
	// rider status updates.
	StrictDeliveryTransitions bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	permissions := services.NewPermissionService(deps.Store.Users())
	mw := middleware.New(deps.Verifier, permissions)

	serverController := server.NewServerController(deps.ServiceName)
	parcelController := parcel.NewParcelController(deps.Store, permissions, deps.Logger)
	parcelController.StrictTransitions = deps.StrictDeliveryTransitions
	userController := user.NewUserController(deps.Store, permissions, deps.Logger)
	riderController := rider.NewRiderController(deps.Store, deps.Logger)
	trackingController := tracking.NewTrackingController(deps.Store, deps.Logger)
	paymentController := payment.NewPaymentController(deps.Store, deps.Processor, permissions, deps.Logger, deps.Currency)

	app.Get("/", serverController.Liveness)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcels := app.Group("/parcels")
	parcels.Get("/delivery/status-count", parcelController.StatusCount)
	parcels.Get("/", mw.RequireAuth(), parcelController.Index)
	parcels.Post("/", mw.RequireAuth(), parcelController.Store)
	parcels.Get("/:id", parcelController.Show)
	parcels.Delete("/:id", mw.RequireAuth(), parcelController.Delete)
	parcels.Patch("/:id/assign", mw.RequireAuth(), mw.RequireAdmin(), parcelController.AssignRider)
	parcels.Patch("/:id/status", mw.RequireAuth(), mw.RequireRider(), parcelController.UpdateStatus)
	parcels.Patch("/:id/cashout", mw.RequireAuth(), parcelController.Cashout)

	/*=============================================================================
	| Rider Dashboard Routes
	===============================================================================*/
	riderOnly := []fiber.Handler{mw.RequireAuth(), mw.RequireRider()}
	app.Get("/rider/parcels", append(riderOnly, parcelController.RiderParcels)...)
	app.Get("/rider/completed-parcels", append(riderOnly, parcelController.RiderCompletedParcels)...)
	app.Get("/rider/earnings", append(riderOnly, parcelController.RiderEarnings)...)

	/*=============================================================================
	| User Routes
	===============================================================================*/
	users := app.Group("/users")
	users.Post("/", userController.Store)
	users.Get("/search", mw.RequireAuth(), mw.RequireAdmin(), userController.Search)
	users.Get("/:email/role", userController.Role)
	users.Patch("/:id/role", mw.RequireAuth(), mw.RequireAdmin(), userController.UpdateRole)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	riders := app.Group("/riders")
	riders.Post("/", mw.RequireAuth(), riderController.Store)
	riders.Get("/available", riderController.Available)
	riders.Get("/pending", mw.RequireAuth(), mw.RequireAdmin(), riderController.Pending)
	riders.Get("/active", mw.RequireAuth(), mw.RequireAdmin(), riderController.Active)
	riders.Patch("/:id/status", mw.RequireAuth(), mw.RequireAdmin(), riderController.UpdateStatus)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	app.Post("/trackings", trackingController.Store)
	app.Get("/trackings/:trackingId", trackingController.Show)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	app.Post("/create-payment-intent", paymentController.CreateIntent)
	app.Post("/payments", mw.RequireAuth(), paymentController.Store)
	app.Get("/payments", mw.RequireAuth(), paymentController.Index)
}
