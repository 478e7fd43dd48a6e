package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSTopicARN    string // optional; notifications are only fanned out when set

	JWTSecret string
	JWTExpiry time.Duration

	OTPExpiry                 time.Duration
	OTPMaxAttempts            int  // 0 disables the cap
	OTPClearOnDeliveryFailure bool // false keeps the code stored when the email could not be sent

	SendGridAPIKey string
	SenderEmail    string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string

	StripeSecretKey string
	StripeBaseURL   string
	PaymentCurrency string

	PolicyValidity time.Duration
	AllowedOrigins []string       // CORS allowed origins
	TrustedProxies []netip.Prefix // peers whose X-Forwarded-For is believed
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Policies      string
	Notifications string
	Counters      string
}

// Load reads all configuration from environment variables.
// JWT_SECRET has no default and must be set.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	jwtExpiry, err := ParseDuration(getEnv("JWT_EXPIRY", "7d"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRY: %w", err)
	}
	trusted, err := ParsePrefixes(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	return &Config{
		AppPort:        getEnv("APP_PORT", "5000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Policies:      getEnv("DYNAMO_TABLE_POLICIES", "policies"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Counters:      getEnv("DYNAMO_TABLE_COUNTERS", "counters"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "insurance-policy-documents"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		JWTSecret: secret,
		JWTExpiry: jwtExpiry,

		OTPExpiry:                 time.Duration(getEnvInt("OTP_EXPIRY", 300000)) * time.Millisecond,
		OTPMaxAttempts:            getEnvInt("OTP_MAX_ATTEMPTS", 0),
		OTPClearOnDeliveryFailure: getEnvBool("OTP_CLEAR_ON_DELIVERY_FAILURE", false),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@insurancepro.com"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeBaseURL:   getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "inr"),

		PolicyValidity: time.Duration(getEnvInt("POLICY_VALIDITY_DAYS", 365)) * 24 * time.Hour,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustedProxies: trusted,
	}, nil
}

// ParseDuration accepts anything time.ParseDuration does plus a whole-day
// suffix ("7d"), which is how token lifetimes are usually written.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// ParsePrefixes reads a comma-separated list of CIDRs or bare addresses.
// A bare address is a single-host prefix.
func ParsePrefixes(s string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
