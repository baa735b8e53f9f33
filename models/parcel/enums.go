package parcel

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryStatusPending                DeliveryStatus = "pending"
	DeliveryStatusRiderAssigned          DeliveryStatus = "rider_assigned"
	DeliveryStatusInTransit              DeliveryStatus = "in_transit"
	DeliveryStatusDelivered              DeliveryStatus = "delivered"
	DeliveryStatusServiceCenterDelivered DeliveryStatus = "service_center_delivered"
)

type CashoutStatus string

const CashoutStatusCashedOut CashoutStatus = "cashed_out"

// riderTransitions lists the delivery statuses a rider may move a parcel to.
var riderTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusRiderAssigned: {DeliveryStatusInTransit},
	DeliveryStatusInTransit:     {DeliveryStatusDelivered, DeliveryStatusServiceCenterDelivered},
}

func (ds DeliveryStatus) String() string {
	return string(ds)
}

func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case DeliveryStatusPending, DeliveryStatusRiderAssigned, DeliveryStatusInTransit,
		DeliveryStatusDelivered, DeliveryStatusServiceCenterDelivered:
		return true
	default:
		return false
	}
}

// IsCompleted returns true once the parcel has left the rider's hands.
func (ds DeliveryStatus) IsCompleted() bool {
	return ds == DeliveryStatusDelivered || ds == DeliveryStatusServiceCenterDelivered
}

// CanTransitionTo reports whether a rider may move a parcel from ds to next.
func (ds DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range riderTransitions[ds] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveRiderStatuses are the statuses of parcels a rider is still carrying.
func ActiveRiderStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryStatusRiderAssigned, DeliveryStatusInTransit}
}

// CompletedRiderStatuses are the statuses of parcels a rider has finished.
func CompletedRiderStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryStatusDelivered, DeliveryStatusServiceCenterDelivered}
}
