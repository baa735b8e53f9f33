package rider

type RegisterRiderRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"required"`
	Age              int    `json:"age" validate:"gte=0"`
	Region           string `json:"region" validate:"required"`
	District         string `json:"district" validate:"required"`
	NID              string `json:"nid"`
	BikeBrand        string `json:"bike_brand"`
	BikeRegistration string `json:"bike_registration"`
}

type UpdateRiderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
}
