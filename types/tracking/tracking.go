package tracking

type AppendEventRequest struct {
	TrackingID string `json:"tracking_id" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Message    string `json:"message"`
	UpdateBy   string `json:"update_by"`
}
