package domain

import "time"

const (
	NotificationPaymentCompleted = "payment_completed"
	NotificationPolicyPurchased  = "policy_purchased"
	NotificationPolicyApproved   = "policy_approved"
	NotificationPaymentFailed    = "payment_failed"

	NotificationUnread = "unread"
	NotificationRead   = "read"
)

type NotificationMetadata struct {
	PolicyNumber  string     `json:"policyNumber" dynamodbav:"policy_number"`
	CarDetails    CarDetails `json:"carDetails" dynamodbav:"car_details"`
	PlanType      string     `json:"planType" dynamodbav:"plan_type"`
	Amount        float64    `json:"amount" dynamodbav:"amount"`
	PaymentStatus string     `json:"paymentStatus" dynamodbav:"payment_status"`
}

type Notification struct {
	NotificationID string               `json:"id" dynamodbav:"notification_id"`
	UserID         *string              `json:"userId,omitempty" dynamodbav:"user_id,omitempty"`
	Email          string               `json:"email" dynamodbav:"email"`
	PolicyID       string               `json:"policyId" dynamodbav:"policy_id"`
	Type           string               `json:"type" dynamodbav:"type"`
	Title          string               `json:"title" dynamodbav:"title"`
	Message        string               `json:"message" dynamodbav:"message"`
	Status         string               `json:"status" dynamodbav:"status"`
	Metadata       NotificationMetadata `json:"metadata" dynamodbav:"metadata"`
	CreatedAt      time.Time            `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time            `json:"updatedAt" dynamodbav:"updated_at"`
}
