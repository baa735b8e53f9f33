package payment

type CreateIntentRequest struct {
	AmountInCents int64  `json:"amountInCents"`
	Currency      string `json:"currency"`
}

type RecordPaymentRequest struct {
	ParcelID      string  `json:"parcelId" validate:"required,mongodb"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId" validate:"required"`
}
