// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// RateLimitConfig provides settings for the public endpoint rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CloudAPIConfig provides settings for the WhatsApp Business Cloud API gateway.
type CloudAPIConfig interface {
	GetWhatsAppPhoneNumberID() string
	GetWhatsAppAccessToken() string
	GetWhatsAppAPIVersion() string
}

// TwilioConfig provides settings for the Twilio-mediated WhatsApp gateway.
type TwilioConfig interface {
	GetTwilioAccountSID() string
	GetTwilioAuthToken() string
	GetWhatsAppFrom() string
}

// SMTPConfig provides settings for the SMTP owner-alert channel.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetSMTPFromAddress() string
	GetSMTPFromName() string
}

// PhoneConfig provides settings for phone number normalization.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
	GetPhoneDefaultPrefix() string
	GetPhoneIntlPrefixes() []string
}

// BookingConfig provides settings for the booking notification module.
type BookingConfig interface {
	GetOwnerPhone() string
	GetOwnerChannel() string
	GetOwnerEmail() string
	GetDateLocale() string
	GetBusinessName() string
	GetBusinessLocation() string
	GetBusinessContact() string
}

// Owner channel values accepted by OWNER_CHANNEL.
const (
	OwnerChannelWhatsApp = "whatsapp"
	OwnerChannelEmail    = "email"
	OwnerChannelNone     = "none"
)

// Messaging provider values accepted by NOTIFY_PROVIDER.
const (
	ProviderCloud  = "cloud"
	ProviderTwilio = "twilio"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	RateLimitRPS          float64
	RateLimitBurst        int
	NotifyProvider        string
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
	WhatsAppAPIVersion    string
	TwilioAccountSID      string
	TwilioAuthToken       string
	WhatsAppFrom          string
	OwnerPhone            string
	OwnerChannel          string
	OwnerEmail            string
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	SMTPFromAddress       string
	SMTPFromName          string
	PhoneDefaultRegion    string
	PhoneDefaultPrefix    string
	PhoneIntlPrefixes     []string
	DateLocale            string
	BusinessName          string
	BusinessLocation      string
	BusinessContact       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CloudAPIConfig implementation
func (c *Config) GetWhatsAppPhoneNumberID() string { return c.WhatsAppPhoneNumberID }
func (c *Config) GetWhatsAppAccessToken() string   { return c.WhatsAppAccessToken }
func (c *Config) GetWhatsAppAPIVersion() string    { return c.WhatsAppAPIVersion }

// TwilioConfig implementation
func (c *Config) GetTwilioAccountSID() string { return c.TwilioAccountSID }
func (c *Config) GetTwilioAuthToken() string  { return c.TwilioAuthToken }
func (c *Config) GetWhatsAppFrom() string     { return c.WhatsAppFrom }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string        { return c.SMTPHost }
func (c *Config) GetSMTPPort() int           { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string    { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string    { return c.SMTPPassword }
func (c *Config) GetSMTPFromAddress() string { return c.SMTPFromAddress }
func (c *Config) GetSMTPFromName() string    { return c.SMTPFromName }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string  { return c.PhoneDefaultRegion }
func (c *Config) GetPhoneDefaultPrefix() string  { return c.PhoneDefaultPrefix }
func (c *Config) GetPhoneIntlPrefixes() []string { return c.PhoneIntlPrefixes }

// BookingConfig implementation
func (c *Config) GetOwnerPhone() string       { return c.OwnerPhone }
func (c *Config) GetOwnerChannel() string     { return c.OwnerChannel }
func (c *Config) GetOwnerEmail() string       { return c.OwnerEmail }
func (c *Config) GetDateLocale() string       { return c.DateLocale }
func (c *Config) GetBusinessName() string     { return c.BusinessName }
func (c *Config) GetBusinessLocation() string { return c.BusinessLocation }
func (c *Config) GetBusinessContact() string  { return c.BusinessContact }

// Load reads configuration from environment variables.
//
// Messaging credentials are deliberately NOT required here: a deployment with
// unset credentials must still start and answer every booking request with a
// configuration error, so the credential check lives in the dispatcher.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		RateLimitRPS:          mustFloat(getEnv("RATE_LIMIT_RPS", "1")),
		RateLimitBurst:        mustInt(getEnv("RATE_LIMIT_BURST", "5")),
		NotifyProvider:        strings.ToLower(getEnv("NOTIFY_PROVIDER", ProviderCloud)),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppAPIVersion:    getEnv("WHATSAPP_API_VERSION", "v18.0"),
		TwilioAccountSID:      getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:       getEnv("TWILIO_AUTH_TOKEN", ""),
		WhatsAppFrom:          getEnv("WHATSAPP_FROM", ""),
		OwnerPhone:            getEnv("OWNER_PHONE", "61401818848"),
		OwnerChannel:          strings.ToLower(getEnv("OWNER_CHANNEL", OwnerChannelWhatsApp)),
		OwnerEmail:            getEnv("OWNER_EMAIL", ""),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		SMTPFromAddress:       getEnv("SMTP_FROM_ADDRESS", ""),
		SMTPFromName:          getEnv("SMTP_FROM_NAME", "Thai Massage on Harvey"),
		PhoneDefaultRegion:    strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "AU")),
		PhoneDefaultPrefix:    getEnv("PHONE_DEFAULT_PREFIX", "61"),
		PhoneIntlPrefixes:     splitCSV(getEnv("PHONE_INTL_PREFIXES", "61,39")),
		DateLocale:            getEnv("DATE_LOCALE", "en-AU"),
		BusinessName:          getEnv("BUSINESS_NAME", "Thai Massage on Harvey"),
		BusinessLocation:      getEnv("BUSINESS_LOCATION", "4 Harvey Cct, Mawson Lakes, SA 5095"),
		BusinessContact:       getEnv("BUSINESS_CONTACT", "0401 818 848"),
	}

	switch cfg.NotifyProvider {
	case ProviderCloud, ProviderTwilio:
	default:
		return nil, fmt.Errorf("NOTIFY_PROVIDER must be %q or %q, got %q", ProviderCloud, ProviderTwilio, cfg.NotifyProvider)
	}

	switch cfg.OwnerChannel {
	case OwnerChannelWhatsApp, OwnerChannelEmail, OwnerChannelNone:
	default:
		return nil, fmt.Errorf("OWNER_CHANNEL must be whatsapp, email or none, got %q", cfg.OwnerChannel)
	}

	if cfg.OwnerChannel == OwnerChannelEmail {
		if cfg.OwnerEmail == "" || cfg.SMTPHost == "" || cfg.SMTPFromAddress == "" {
			return nil, fmt.Errorf("OWNER_EMAIL, SMTP_HOST and SMTP_FROM_ADDRESS are required when OWNER_CHANNEL is email")
		}
	}

	if cfg.PhoneDefaultPrefix == "" {
		return nil, fmt.Errorf("PHONE_DEFAULT_PREFIX cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
