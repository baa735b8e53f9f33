package tracking

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/logger"
	"parcel-delivery/repository"
	"parcel-delivery/services/tracking_event"
	"parcel-delivery/types"
	trackingTypes "parcel-delivery/types/tracking"
	"parcel-delivery/utils"
)

type TrackingController struct {
	DB     repository.Store
	Logger *logger.AsyncLogger
	now    func() time.Time
}

func NewTrackingController(store repository.Store, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{DB: store, Logger: asyncLogger, now: time.Now}
}

func (tc *TrackingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Store appends a manual entry to a parcel's tracking history.
func (tc *TrackingController) Store(c *fiber.Ctx) error {
	var req trackingTypes.AppendEventRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	err := tracking_event.RecordEvent(c.UserContext(), tc.DB.Trackings(),
		req.TrackingID, req.Status, req.Message, req.UpdateBy, tc.now())
	if err != nil {
		status, response := utils.ErrorResponse(err, "Failed to add tracking event")
		return tc.sendResponseWithLog(c, status, response)
	}

	return tc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Tracking event added",
		Status:  fiber.StatusCreated,
	})
}

// Show returns the tracking history for :trackingId, oldest first.
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	events, err := tc.DB.Trackings().ListByTrackingID(c.UserContext(), c.Params("trackingId"))
	if err != nil {
		status, response := utils.ErrorResponse(err, "Failed to fetch tracking history")
		return tc.sendResponseWithLog(c, status, response)
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Tracking history fetched successfully",
		Status:  fiber.StatusOK,
		Data:    events,
	})
}
