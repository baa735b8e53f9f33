package parcel

import "time"

// CreateParcelRequest is the client payload for a new parcel. Ownership,
// timestamps and statuses are always set by the server.
type CreateParcelRequest struct {
	Title  string  `json:"title" validate:"required"`
	Type   string  `json:"type" validate:"required,oneof=document non-document"`
	Weight float64 `json:"weight" validate:"gte=0"`
	Cost   float64 `json:"cost" validate:"gte=0"`

	SenderName     string `json:"sender_name" validate:"required"`
	SenderPhone    string `json:"sender_phone"`
	SenderRegion   string `json:"sender_region" validate:"required"`
	SenderDistrict string `json:"sender_district" validate:"required"`
	SenderAddress  string `json:"sender_address"`

	ReceiverName     string `json:"receiver_name" validate:"required"`
	ReceiverPhone    string `json:"receiver_phone"`
	ReceiverRegion   string `json:"receiver_region" validate:"required"`
	ReceiverDistrict string `json:"receiver_district" validate:"required"`
	ReceiverAddress  string `json:"receiver_address"`
	Instructions     string `json:"instructions"`
}

type AssignRiderRequest struct {
	RiderID    string `json:"riderId" validate:"required,mongodb"`
	RiderEmail string `json:"riderEmail" validate:"required,email"`
	RiderName  string `json:"riderName"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// EarningsSummary is a rider's share of completed deliveries in a period.
type EarningsSummary struct {
	Period      string     `json:"period"`
	Since       *time.Time `json:"since,omitempty"`
	Deliveries  int        `json:"deliveries"`
	TotalEarned float64    `json:"total_earned"`
	CashedOut   float64    `json:"cashed_out"`
	Pending     float64    `json:"pending"`
}
