package rider

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	riderModel "parcel-delivery/models/rider"
	"parcel-delivery/repository"
	"parcel-delivery/types"
	riderTypes "parcel-delivery/types/rider"
	"parcel-delivery/utils"
)

// RiderController handles rider applications and their approval.
type RiderController struct {
	DB     repository.Store
	Logger *logger.AsyncLogger
	now    func() time.Time
}

func NewRiderController(store repository.Store, asyncLogger *logger.AsyncLogger) *RiderController {
	return &RiderController{
		DB:     store,
		Logger: asyncLogger,
		now:    time.Now,
	}
}

func (rc *RiderController) logAPIRequest(c *fiber.Ctx) {
	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

func (rc *RiderController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.logAPIRequest(c)
	return result
}

func (rc *RiderController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status, response := utils.ErrorResponse(err, fallback)
	return rc.sendResponseWithLog(c, status, response)
}

func (rc *RiderController) badRequest(c *fiber.Ctx, message string) error {
	return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
	})
}

// Store files a rider application in pending status.
func (rc *RiderController) Store(c *fiber.Ctx) error {
	var req riderTypes.RegisterRiderRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return rc.badRequest(c, err.Error())
	}

	email := req.Email
	if email == "" {
		caller, _ := middleware.GetIdentity(c)
		email = caller.Email
	}

	r := riderModel.Rider{
		Name:             req.Name,
		Email:            email,
		Phone:            req.Phone,
		Age:              req.Age,
		Region:           req.Region,
		District:         req.District,
		NID:              req.NID,
		BikeBrand:        req.BikeBrand,
		BikeRegistration: req.BikeRegistration,
		Status:           riderModel.StatusPending,
		WorkStatus:       riderModel.WorkStatusIdle,
		CreatedAt:        rc.now(),
	}
	id, err := rc.DB.Riders().Create(c.UserContext(), &r)
	if err != nil {
		return rc.sendError(c, err, "Failed to submit rider application")
	}

	logger.Success("Rider application received from " + email)
	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Rider application submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    fiber.Map{"insertedId": id.Hex()},
	})
}

// Available lists riders in ?district=, or every rider when it is omitted.
func (rc *RiderController) Available(c *fiber.Ctx) error {
	district := strings.TrimSpace(c.Query("district"))
	return rc.list(c, repository.RiderFilter{District: district}, "Available riders fetched successfully")
}

func (rc *RiderController) Pending(c *fiber.Ctx) error {
	return rc.list(c, repository.RiderFilter{Status: riderModel.StatusPending}, "Pending riders fetched successfully")
}

func (rc *RiderController) Active(c *fiber.Ctx) error {
	return rc.list(c, repository.RiderFilter{Status: riderModel.StatusActive}, "Active riders fetched successfully")
}

func (rc *RiderController) list(c *fiber.Ctx, filter repository.RiderFilter, message string) error {
	riders, err := rc.DB.Riders().List(c.UserContext(), filter)
	if err != nil {
		return rc.sendError(c, err, "Failed to fetch riders")
	}
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: message,
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// UpdateStatus approves or rejects a rider. Activating a rider with an email
// also grants that user the rider role.
func (rc *RiderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return rc.badRequest(c, "Invalid rider ID")
	}

	var req riderTypes.UpdateRiderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return rc.badRequest(c, err.Error())
	}
	status := riderModel.Status(req.Status)
	if !status.IsValid() {
		return rc.badRequest(c, "Invalid rider status")
	}

	err = rc.DB.WithTransaction(c.UserContext(), func(ctx context.Context) error {
		if err := rc.DB.Riders().UpdateStatus(ctx, id, status); err != nil {
			return repository.Named(err, "Rider")
		}
		if status == riderModel.StatusActive && req.Email != "" {
			if err := rc.DB.Users().UpdateRoleByEmail(ctx, req.Email, constants.RoleRider); err != nil {
				return repository.Named(err, "User")
			}
		}
		return nil
	})
	if err != nil {
		return rc.sendError(c, err, "Failed to update rider status")
	}

	logger.Info("Rider " + id.Hex() + " is now " + req.Status)
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider status updated successfully",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"status": status},
	})
}
