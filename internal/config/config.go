package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name           string   `envconfig:"APP_NAME" default:"Vitrine"`
		Port           int      `envconfig:"PORT" default:"8080"`
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	DB struct {
		Host        string `envconfig:"DB_HOST" default:"localhost"`
		Port        int    `envconfig:"DB_PORT" default:"5432"`
		User        string `envconfig:"DB_USER" default:"postgres"`
		Password    string `envconfig:"DB_PASSWORD" default:""`
		Name        string `envconfig:"DB_NAME" default:"vitrine"`
		SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
		AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret       string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
		Issuer       string        `envconfig:"JWT_ISSUER" default:"vitrine-api"`
		CookieName   string        `envconfig:"AUTH_COOKIE_NAME" default:"token"`
		SecureCookie bool          `envconfig:"AUTH_COOKIE_SECURE" default:"false"`
	}

	// Fees charged on wallet-method sales. PercentFee is a percentage (3 = 3%).
	Commission struct {
		FixedFee   decimal.Decimal `envconfig:"COMMISSION_FIXED_FEE" default:"0.50"`
		PercentFee decimal.Decimal `envconfig:"COMMISSION_PERCENT_FEE" default:"3"`
	}

	Payment struct {
		RestockOnReversal bool   `envconfig:"PAYMENT_RESTOCK_ON_REVERSAL" default:"false"`
		FallbackBaseURL   string `envconfig:"PAYMENT_FALLBACK_BASE_URL" default:"https://pagamento.vitrine.app"`
		// WebhookSecret enables webhook calls that push a status directly.
		// Without it only gateway notifications are accepted.
		WebhookSecret     string `envconfig:"PAYMENT_WEBHOOK_SECRET"`
	}

	Gateway struct {
		AccessToken     string        `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
		NotificationURL string        `envconfig:"MERCADOPAGO_NOTIFICATION_URL"`
		Timeout         time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	}

	Notify struct {
		DiscordWebhookURL string        `envconfig:"DISCORD_WEBHOOK_URL"`
		Timeout           time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.DB.User), url.QueryEscape(c.DB.Password), c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// MigrationURL is the same database addressed through golang-migrate's pgx/v5 driver.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.DB.User), url.QueryEscape(c.DB.Password), c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	if cfg.Commission.FixedFee.IsNegative() || cfg.Commission.PercentFee.IsNegative() {
		return nil, fmt.Errorf("commission fees must not be negative")
	}

	return &cfg, nil
}
