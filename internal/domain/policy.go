package domain

import "time"

const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

type CarDetails struct {
	Make  string `json:"make" dynamodbav:"make" validate:"required"`
	Model string `json:"model" dynamodbav:"model" validate:"required"`
	Year  Year   `json:"year" dynamodbav:"year" validate:"required"`
}

type PlanDetails struct {
	Type     string `json:"type" dynamodbav:"type" validate:"required"`
	Coverage string `json:"coverage" dynamodbav:"coverage" validate:"required"`
}

type Policy struct {
	PolicyID        string      `json:"id" dynamodbav:"policy_id"`
	PolicyNumber    string      `json:"policyNumber" dynamodbav:"policy_number"`
	UserID          *string     `json:"userId,omitempty" dynamodbav:"user_id,omitempty"`
	Email           string      `json:"email" dynamodbav:"email"`
	CarDetails      CarDetails  `json:"carDetails" dynamodbav:"car_details"`
	PlanDetails     PlanDetails `json:"planDetails" dynamodbav:"plan_details"`
	Amount          float64     `json:"amount" dynamodbav:"amount"`
	PaymentStatus   string      `json:"paymentStatus" dynamodbav:"payment_status"`
	PaymentIntentID string      `json:"-" dynamodbav:"payment_intent_id"`
	DocumentKey     string      `json:"-" dynamodbav:"document_key"`
	ValidFrom       time.Time   `json:"validFrom" dynamodbav:"valid_from"`
	ValidUpto       time.Time   `json:"validUpto" dynamodbav:"valid_upto"`
	CreatedAt       time.Time   `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" dynamodbav:"updated_at"`
}
