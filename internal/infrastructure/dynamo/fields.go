package dynamo

// DynamoDB attribute names used in key and update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail          = "email"
	fieldUserID         = "user_id"
	fieldOTPCode        = "otp_code"
	fieldOTPExpiresAt   = "otp_expires_at"
	fieldOTPAttempts    = "otp_attempts"
	fieldIsVerified     = "is_verified"
	fieldCreatedAt      = "created_at"
	fieldUpdatedAt      = "updated_at"
	fieldPolicyID       = "policy_id"
	fieldDocumentKey    = "document_key"
	fieldNotificationID = "notification_id"
	fieldStatus         = "status"
	fieldCounterName    = "counter_name"
	fieldCounterValue   = "counter_value"
)
