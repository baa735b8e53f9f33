package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	paymentService "parcel-delivery/httpServices/payment"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	paymentModel "parcel-delivery/models/payment"
	"parcel-delivery/repository"
	"parcel-delivery/services"
	"parcel-delivery/services/tracking_event"
	"parcel-delivery/types"
	paymentTypes "parcel-delivery/types/payment"
	"parcel-delivery/utils"
)

type PaymentController struct {
	DB              repository.Store
	Processor       paymentService.Processor
	Permissions     *services.PermissionService
	Logger          *logger.AsyncLogger
	DefaultCurrency string
	now             func() time.Time
}

func NewPaymentController(store repository.Store, processor paymentService.Processor, permissions *services.PermissionService, asyncLogger *logger.AsyncLogger, currency string) *PaymentController {
	return &PaymentController{
		DB:              store,
		Processor:       processor,
		Permissions:     permissions,
		Logger:          asyncLogger,
		DefaultCurrency: currency,
		now:             time.Now,
	}
}

func (pc *PaymentController) logAPIRequest(c *fiber.Ctx) {
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

func (pc *PaymentController) badRequest(c *fiber.Ctx, message string) error {
	return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
	})
}

// CreateIntent asks the payment processor for a client secret.
func (pc *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var req paymentTypes.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.badRequest(c, "Invalid request body")
	}
	if req.AmountInCents <= 0 {
		return pc.badRequest(c, "amountInCents must be greater than 0")
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = pc.DefaultCurrency
	}

	secret, err := pc.Processor.CreateIntent(c.UserContext(), req.AmountInCents, currency)
	if err != nil {
		logger.Error("Failed to create payment intent", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusInternalServerError,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Payment intent created",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"clientSecret": secret},
	})
}

// Store marks a parcel paid and records the payment together. A parcel that
// is missing or already paid gets a 404 and no payment record.
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return pc.badRequest(c, err.Error())
	}
	parcelID, err := repository.ParseID(req.ParcelID)
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	caller, _ := middleware.GetIdentity(c)
	now := pc.now()
	p := paymentModel.Payment{
		ParcelID:      parcelID,
		Email:         caller.Email,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		PaidAt:        now,
	}

	err = pc.DB.WithTransaction(c.UserContext(), func(ctx context.Context) error {
		if err := pc.DB.Parcels().MarkPaid(ctx, parcelID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.NewStatusError(fiber.StatusNotFound, "Parcel not found or already paid")
			}
			return err
		}
		if _, err := pc.DB.Payments().Create(ctx, &p); err != nil {
			return err
		}
		parcel, err := pc.DB.Parcels().FindByID(ctx, parcelID)
		if err != nil {
			return repository.Named(err, "Parcel")
		}
		return tracking_event.RecordEvent(ctx, pc.DB.Trackings(), parcel.TrackingID,
			tracking_event.EventPaymentDone, "Paid via "+req.PaymentMethod, caller.Email, now)
	})
	if err != nil {
		status, response := utils.ErrorResponse(err, "Failed to record payment")
		return pc.sendResponseWithLog(c, status, response)
	}

	logger.Success("Payment recorded for parcel " + parcelID.Hex())
	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Payment recorded successfully",
		Status:  fiber.StatusCreated,
		Data:    fiber.Map{"insertedId": p.ID.Hex()},
	})
}

// Index lists payments newest first. Admins may filter by ?email= or see all;
// everyone else only sees their own.
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	caller, _ := middleware.GetIdentity(c)
	isAdmin, err := pc.Permissions.IsAdmin(c.UserContext(), caller.Email)
	if err != nil {
		status, response := utils.ErrorResponse(err, "Failed to check permissions")
		return pc.sendResponseWithLog(c, status, response)
	}

	email := c.Query("email")
	if !isAdmin {
		email = caller.Email
	}

	payments, err := pc.DB.Payments().List(c.UserContext(), email)
	if err != nil {
		status, response := utils.ErrorResponse(err, "Failed to fetch payments")
		return pc.sendResponseWithLog(c, status, response)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Payments fetched successfully",
		Status:  fiber.StatusOK,
		Data:    payments,
	})
}
