package config

import (
	"strings"
	"time"

	"github.com/TontonYahya/tonton-stories/internal/pkg/env"
	"golang.org/x/crypto/bcrypt"
)

// Config carries all startup configuration. It is built once in main and
// injected into the components that need it, instead of having every
// package read process-wide environment defaults.
type Config struct {
	PayPal PayPalConfig
	Admin  AdminConfig
	Shop   ShopConfig
}

// PayPalConfig holds the gateway credentials and endpoints. BaseURL points
// at the sandbox by default; tests override it with an httptest server.
type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// AdminConfig holds the admin console password hash (bcrypt).
type AdminConfig struct {
	PasswordHash string
}

// ShopConfig holds storefront settings used by the payment flow.
type ShopConfig struct {
	Currency  string
	ShopName  string
	PublicURL string
}

const defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"

// Load builds the configuration from the environment. SetupEnvFile must
// have been called before.
func Load() *Config {
	return &Config{
		PayPal: PayPalConfig{
			ClientID:     strings.TrimSpace(env.GetEnv("PAYPAL_CLIENT_ID", "")),
			ClientSecret: strings.TrimSpace(env.GetEnv("PAYPAL_CLIENT_SECRET", "")),
			BaseURL:      strings.TrimRight(env.GetEnv("PAYPAL_BASE_URL", defaultPayPalBaseURL), "/"),
			Timeout:      15 * time.Second,
		},
		Admin: AdminConfig{
			PasswordHash: adminPasswordHash(),
		},
		Shop: ShopConfig{
			Currency:  env.GetEnv("SHOP_CURRENCY", "EUR"),
			ShopName:  env.GetEnv("SHOP_NAME", "Les histoires de tonton Yahya"),
			PublicURL: strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000"), "/"),
		},
	}
}

func adminPasswordHash() string {
	if hash := env.GetEnv("ADMIN_PASSWORD_HASH", ""); hash != "" {
		return hash
	}
	// Plaintext fallback for local setups; hashed once at startup.
	password := env.GetEnv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
