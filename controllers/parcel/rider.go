package parcel

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"parcel-delivery/middleware"
	parcelModel "parcel-delivery/models/parcel"
	"parcel-delivery/types"
	parcelTypes "parcel-delivery/types/parcel"
)

const (
	sameDistrictShare  = 0.8
	crossDistrictShare = 0.3
)

// RiderShare is what a rider earns for delivering p.
func RiderShare(p parcelModel.Parcel) float64 {
	if p.SenderDistrict == p.ReceiverDistrict {
		return p.Cost * sameDistrictShare
	}
	return p.Cost * crossDistrictShare
}

// periodStart returns the beginning of period relative to at, or nil for "all".
func periodStart(period string, at time.Time) (*time.Time, bool) {
	var start time.Time
	switch period {
	case "", "all":
		return nil, true
	case "day":
		start = now.With(at).BeginningOfDay()
	case "week":
		start = now.With(at).BeginningOfWeek()
	case "month":
		start = now.With(at).BeginningOfMonth()
	default:
		return nil, false
	}
	return &start, true
}

func summarizeEarnings(period string, since *time.Time, parcels []parcelModel.Parcel) parcelTypes.EarningsSummary {
	summary := parcelTypes.EarningsSummary{Period: period, Since: since}
	for _, p := range parcels {
		if since != nil && (p.DeliveredAt == nil || p.DeliveredAt.Before(*since)) {
			continue
		}
		share := RiderShare(p)
		summary.Deliveries++
		summary.TotalEarned += share
		if p.CashoutStatus == parcelModel.CashoutStatusCashedOut {
			summary.CashedOut += share
		} else {
			summary.Pending += share
		}
	}
	return summary
}

// RiderParcels lists the parcels the calling rider still has to deliver.
func (pc *ParcelController) RiderParcels(c *fiber.Ctx) error {
	caller, _ := middleware.GetIdentity(c)
	parcels, err := pc.DB.Parcels().ListByRider(c.UserContext(), caller.Email, parcelModel.ActiveRiderStatuses())
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch rider parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider parcels fetched successfully",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

func (pc *ParcelController) RiderCompletedParcels(c *fiber.Ctx) error {
	caller, _ := middleware.GetIdentity(c)
	parcels, err := pc.DB.Parcels().ListByRider(c.UserContext(), caller.Email, parcelModel.CompletedRiderStatuses())
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch completed parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Completed parcels fetched successfully",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

// RiderEarnings totals the calling rider's share of completed deliveries for
// ?period=day|week|month|all.
func (pc *ParcelController) RiderEarnings(c *fiber.Ctx) error {
	period := c.Query("period", "all")
	since, ok := periodStart(period, pc.now())
	if !ok {
		return pc.badRequest(c, "period must be one of: day, week, month, all")
	}

	caller, _ := middleware.GetIdentity(c)
	parcels, err := pc.DB.Parcels().ListByRider(c.UserContext(), caller.Email, parcelModel.CompletedRiderStatuses())
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch completed parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider earnings fetched successfully",
		Status:  fiber.StatusOK,
		Data:    summarizeEarnings(period, since, parcels),
	})
}
