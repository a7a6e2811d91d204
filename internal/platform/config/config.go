package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the binary reads from the environment so main
// stays lean. Defaults favor local development; production overrides via env.
type Config struct {
	Addr     string
	LogLevel string

	// DatabaseURL selects the postgres stores when set; empty falls back to
	// the in-memory stores.
	DatabaseURL string
	RedisURL    string

	KafkaBrokers []string
	AuditTopic   string

	// SaaSURL is the base URL of the credential-issuance SaaS.
	SaaSURL        string
	GatewayTimeout time.Duration

	// The two issuer identities this deployment issues under, selected by DID.
	PhoneIssuerDID    string
	DocumentIssuerDID string

	// IssueOnAssociation gates eager issuance of every locally-known field the
	// moment a DID is associated. On by default; disable to only ever issue
	// what was explicitly requested.
	IssueOnAssociation bool

	ProveBaseURL string
	ProveAPIKey  string

	HyperVergeBaseURL string
	HyperVergeAppID   string
	HyperVergeAppKey  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	WalletURL        string

	// AdminKeyHash is the bcrypt hash of the operator key exchanged for a JWT
	// at /auth/login.
	AdminKeyHash  string
	JWTSigningKey string
	JWTTTL        time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:     envOr("KYC_GATEWAY_ADDR", ":8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   envOr("AUDIT_TOPIC", "kyc-gateway.audit"),

		SaaSURL:        envOr("SAAS_URL", "https://api.sandbox-unumid.co"),
		GatewayTimeout: envDuration("GATEWAY_TIMEOUT", 30*time.Second),

		PhoneIssuerDID:    os.Getenv("PHONE_ISSUER_DID"),
		DocumentIssuerDID: os.Getenv("DOCUMENT_ISSUER_DID"),

		IssueOnAssociation: envBool("ISSUE_ON_ASSOCIATION", true),

		ProveBaseURL: os.Getenv("PROVE_SAAS_URL"),
		ProveAPIKey:  os.Getenv("PROVE_API_KEY"),

		HyperVergeBaseURL: os.Getenv("HYPERVERGE_URL"),
		HyperVergeAppID:   os.Getenv("HYPERVERGE_APP_ID"),
		HyperVergeAppKey:  os.Getenv("HYPERVERGE_APP_KEY"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		WalletURL:        os.Getenv("WALLET_URL"),

		AdminKeyHash:  os.Getenv("ADMIN_KEY_HASH"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTTTL:        envDuration("JWT_TTL", time.Hour),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
