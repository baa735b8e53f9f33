package parcel

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/logger"
	parcelModel "parcel-delivery/models/parcel"
	riderModel "parcel-delivery/models/rider"
	"parcel-delivery/middleware"
	"parcel-delivery/repository"
	"parcel-delivery/services"
	"parcel-delivery/services/tracking_event"
	"parcel-delivery/types"
	parcelTypes "parcel-delivery/types/parcel"
	"parcel-delivery/utils"
)

// ParcelController handles parcel HTTP requests, including the rider views.
type ParcelController struct {
	DB          repository.Store
	Permissions *services.PermissionService
	Logger      *logger.AsyncLogger
	// StrictTransitions enforces rider ownership and the lifecycle table on
	// status updates.
	StrictTransitions bool
	now               func() time.Time
}

func NewParcelController(store repository.Store, permissions *services.PermissionService, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:          store,
		Permissions: permissions,
		Logger:      asyncLogger,
		now:         time.Now,
	}
}

func (pc *ParcelController) logAPIRequest(c *fiber.Ctx) {
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

func (pc *ParcelController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status, response := utils.ErrorResponse(err, fallback)
	return pc.sendResponseWithLog(c, status, response)
}

func (pc *ParcelController) badRequest(c *fiber.Ctx, message string) error {
	return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
	})
}

// Index lists parcels newest first. Admins may filter by any creator;
// everyone else only sees their own parcels.
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	caller, _ := middleware.GetIdentity(c)
	isAdmin, err := pc.Permissions.IsAdmin(c.UserContext(), caller.Email)
	if err != nil {
		return pc.sendError(c, err, "Failed to check permissions")
	}

	filter := repository.ParcelFilter{
		CreatedBy:      c.Query("email"),
		PaymentStatus:  c.Query("payment_status"),
		DeliveryStatus: c.Query("delivery_status"),
	}
	if !isAdmin {
		filter.CreatedBy = caller.Email
	}

	parcels, err := pc.DB.Parcels().List(c.UserContext(), filter)
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcels fetched successfully",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

func (pc *ParcelController) Show(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	p, err := pc.DB.Parcels().FindByID(c.UserContext(), id)
	if err != nil {
		return pc.sendError(c, repository.Named(err, "Parcel"), "Failed to fetch parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel fetched successfully",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Store creates a parcel owned by the caller and opens its tracking history.
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcelTypes.CreateParcelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return pc.badRequest(c, err.Error())
	}

	caller, _ := middleware.GetIdentity(c)
	now := pc.now()
	p := parcelModel.Parcel{
		TrackingID:       utils.GenerateTrackingID(now),
		Title:            req.Title,
		Type:             req.Type,
		Weight:           req.Weight,
		Cost:             req.Cost,
		SenderName:       req.SenderName,
		SenderPhone:      req.SenderPhone,
		SenderRegion:     req.SenderRegion,
		SenderDistrict:   req.SenderDistrict,
		SenderAddress:    req.SenderAddress,
		ReceiverName:     req.ReceiverName,
		ReceiverPhone:    req.ReceiverPhone,
		ReceiverRegion:   req.ReceiverRegion,
		ReceiverDistrict: req.ReceiverDistrict,
		ReceiverAddress:  req.ReceiverAddress,
		Instructions:     req.Instructions,
		CreatedBy:        caller.Email,
		CreatedAt:        now,
		PaymentStatus:    parcelModel.PaymentStatusUnpaid,
		DeliveryStatus:   parcelModel.DeliveryStatusPending,
	}

	err := pc.DB.WithTransaction(c.UserContext(), func(ctx context.Context) error {
		if _, err := pc.DB.Parcels().Create(ctx, &p); err != nil {
			return err
		}
		return tracking_event.RecordEvent(ctx, pc.DB.Trackings(), p.TrackingID,
			tracking_event.EventParcelCreated, "Parcel created by "+caller.Email, caller.Email, now)
	})
	if err != nil {
		return pc.sendError(c, err, "Failed to create parcel")
	}

	logger.Success("Parcel created: " + p.TrackingID)
	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Parcel created successfully",
		Status:  fiber.StatusCreated,
		Data: fiber.Map{
			"insertedId":  p.ID.Hex(),
			"tracking_id": p.TrackingID,
		},
	})
}

func (pc *ParcelController) Delete(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	if err := pc.DB.Parcels().Delete(c.UserContext(), id); err != nil {
		return pc.sendError(c, repository.Named(err, "Parcel"), "Failed to delete parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel deleted successfully",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"deletedCount": 1},
	})
}

// AssignRider hands a parcel to a rider and marks the rider busy. A rider the
// parcel is taken away from goes back to idle.
func (pc *ParcelController) AssignRider(c *fiber.Ctx) error {
	parcelID, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	var req parcelTypes.AssignRiderRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return pc.badRequest(c, err.Error())
	}
	riderID, err := repository.ParseID(req.RiderID)
	if err != nil {
		return pc.badRequest(c, "Invalid rider ID")
	}

	caller, _ := middleware.GetIdentity(c)
	now := pc.now()
	err = pc.DB.WithTransaction(c.UserContext(), func(ctx context.Context) error {
		p, err := pc.DB.Parcels().FindByID(ctx, parcelID)
		if err != nil {
			return repository.Named(err, "Parcel")
		}
		err = pc.DB.Parcels().AssignRider(ctx, parcelID, parcelModel.Assignment{
			RiderID:    riderID,
			RiderEmail: req.RiderEmail,
			RiderName:  req.RiderName,
			AssignedAt: now,
		})
		if err != nil {
			return repository.Named(err, "Parcel")
		}
		if err := pc.DB.Riders().UpdateWorkStatus(ctx, riderID, riderModel.WorkStatusInDelivery); err != nil {
			return repository.Named(err, "Rider")
		}
		if previous := p.AssignedRiderID; !previous.IsZero() && previous != riderID {
			if err := pc.DB.Riders().UpdateWorkStatus(ctx, previous, riderModel.WorkStatusIdle); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		return tracking_event.RecordEvent(ctx, pc.DB.Trackings(), p.TrackingID,
			tracking_event.EventRiderAssigned, "Assigned to "+req.RiderEmail, caller.Email, now)
	})
	if err != nil {
		return pc.sendError(c, err, "Failed to assign rider")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider assigned successfully",
		Status:  fiber.StatusOK,
	})
}

// UpdateStatus records the delivery status a rider reports. The status is
// stored as sent unless StrictTransitions is set, in which case only the
// assigned rider may move the parcel and only along the delivery lifecycle.
// Finishing a delivery frees the rider.
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	var req parcelTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return pc.badRequest(c, err.Error())
	}
	next := parcelModel.DeliveryStatus(req.Status)
	if pc.StrictTransitions && !next.IsValid() {
		return pc.badRequest(c, "Invalid delivery status")
	}

	caller, _ := middleware.GetIdentity(c)
	now := pc.now()
	err = pc.DB.WithTransaction(c.UserContext(), func(ctx context.Context) error {
		p, err := pc.DB.Parcels().FindByID(ctx, id)
		if err != nil {
			return repository.Named(err, "Parcel")
		}

		var from parcelModel.DeliveryStatus
		if pc.StrictTransitions {
			if p.AssignedRiderEmail != caller.Email {
				return utils.NewStatusError(fiber.StatusForbidden, "Parcel is not assigned to you")
			}
			if !p.DeliveryStatus.CanTransitionTo(next) {
				return utils.NewStatusError(fiber.StatusBadRequest,
					"Cannot move parcel from "+p.DeliveryStatus.String()+" to "+next.String())
			}
			from = p.DeliveryStatus
		}

		if err := pc.DB.Parcels().UpdateDeliveryStatus(ctx, id, from, next, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.NewStatusError(fiber.StatusConflict, "Parcel status changed, please retry")
			}
			return err
		}
		if next.IsCompleted() && !p.AssignedRiderID.IsZero() {
			if err := pc.DB.Riders().UpdateWorkStatus(ctx, p.AssignedRiderID, riderModel.WorkStatusIdle); err != nil {
				return repository.Named(err, "Rider")
			}
		}
		return tracking_event.RecordEvent(ctx, pc.DB.Trackings(), p.TrackingID,
			next.String(), "Status updated to "+next.String(), caller.Email, now)
	})
	if err != nil {
		return pc.sendError(c, err, "Failed to update parcel status")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel status updated successfully",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"delivery_status": next},
	})
}

func (pc *ParcelController) Cashout(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return pc.badRequest(c, "Invalid parcel ID")
	}

	if err := pc.DB.Parcels().Cashout(c.UserContext(), id, pc.now()); err != nil {
		return pc.sendError(c, repository.Named(err, "Parcel"), "Failed to cash out parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel cashed out successfully",
		Status:  fiber.StatusOK,
	})
}

func (pc *ParcelController) StatusCount(c *fiber.Ctx) error {
	counts, err := pc.DB.Parcels().CountByDeliveryStatus(c.UserContext())
	if err != nil {
		return pc.sendError(c, err, "Failed to count parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel status counts fetched successfully",
		Status:  fiber.StatusOK,
		Data:    counts,
	})
}
