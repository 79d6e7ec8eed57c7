package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// MinTokenSecretLength is the minimum required length for the auth token secret in production
	MinTokenSecretLength = 32
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	AppURL      string
	// Auth
	AuthTokenSecret      string
	CorporateEmailDomain string
	// Cal.com webhook
	CalcomWebhookSecret string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Google Contacts sync
	GoogleContactsEnabled bool
	GoogleContactsToken   string
	// Cloudflare R2 Storage (falls back to local UploadDir when unset)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	UploadDir         string
	// Other
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	tokenSecret := getEnv("AUTH_TOKEN_SECRET", "")
	ValidateTokenSecret(tokenSecret, environment)

	webhookSecret := getEnv("CALCOM_WEBHOOK_SECRET", "")
	if webhookSecret == "" && environment == "production" {
		log.Printf("[WARNING] CALCOM_WEBHOOK_SECRET is not set; webhook deliveries will be rejected in production")
	}

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "db/app.db"),
		Environment:           environment,
		AppURL:                getEnv("APP_URL", "http://localhost:8080"),
		AuthTokenSecret:       tokenSecret,
		CorporateEmailDomain:  getEnv("CORPORATE_EMAIL_DOMAIN", "@thelawshop.com"),
		CalcomWebhookSecret:   webhookSecret,
		ResendAPIKey:          getEnv("RESEND_API_KEY", ""),
		EmailFrom:             getEnv("EMAIL_FROM", "noreply@thelawshop.com"),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "The Law Shop"),
		EmailTestMode:         getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		GoogleContactsEnabled: getEnvBool("GOOGLE_CONTACTS_ENABLED", false),
		GoogleContactsToken:   getEnv("GOOGLE_CONTACTS_TOKEN", ""),
		R2AccountID:           getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:         getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:     getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:          getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:           getEnv("R2_PUBLIC_URL", ""),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		AllowedOrigins:        strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// IsProduction reports whether the app runs with production guarantees.
// Webhook signature verification is only enforced in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ValidateTokenSecret validates the auth token secret meets security requirements.
// In production it must be at least 32 bytes and not a known insecure default.
func ValidateTokenSecret(secret string, environment string) {
	insecureDefaults := []string{
		"dev-secret-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] AUTH_TOKEN_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			log.Printf("[WARNING] AUTH_TOKEN_SECRET is set to an insecure default value. This is acceptable only in development.")
			return
		}
	}

	if environment == "production" && len(secret) < MinTokenSecretLength {
		log.Fatalf("[CRITICAL] AUTH_TOKEN_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinTokenSecretLength, len(secret))
	}
}
