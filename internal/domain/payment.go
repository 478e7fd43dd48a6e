package domain

// PaymentIntent is the slice of the processor's payment intent this service reads.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type CreatePaymentIntentRequest struct {
	Email       string       `json:"email" validate:"required"`
	Amount      float64      `json:"amount" validate:"required,gt=0"`
	CarDetails  *CarDetails  `json:"carDetails" validate:"required"`
	PlanDetails *PlanDetails `json:"planDetails" validate:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string       `json:"paymentIntentId" validate:"required"`
	Email           string       `json:"email" validate:"required"`
	CarDetails      *CarDetails  `json:"carDetails" validate:"required"`
	PlanDetails     *PlanDetails `json:"planDetails" validate:"required"`
	Amount          float64      `json:"amount"`
	Token           string       `json:"token"`
}
