package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":   7 * 24 * time.Hour,
		"0d":   0,
		"15m":  15 * time.Minute,
		"168h": 168 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"xd", "-1d", "seven days", ""} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OTP_EXPIRY", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("OTP_MAX_ATTEMPTS", "")
	t.Setenv("OTP_CLEAR_ON_DELIVERY_FAILURE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.OTPExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 0, cfg.OTPMaxAttempts)
	assert.False(t, cfg.OTPClearOnDeliveryFailure)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OTP_EXPIRY", "60000")
	t.Setenv("JWT_EXPIRY", "12h")
	t.Setenv("OTP_MAX_ATTEMPTS", "5")
	t.Setenv("OTP_CLEAR_ON_DELIVERY_FAILURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.OTPExpiry)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.True(t, cfg.OTPClearOnDeliveryFailure)
}

func TestLoad_BadJWTExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "forever")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_EXPIRY")
}

func TestParsePrefixes(t *testing.T) {
	got, err := ParsePrefixes(" 10.0.0.0/8, 192.168.1.7 ,,::1")
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("::1/128"),
	}, got)

	none, err := ParsePrefixes("")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoad_BadTrustedProxies(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,not-an-ip")
	_, err := Load()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}
