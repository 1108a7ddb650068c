package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Shop      ShopConfig
	Printer   PrinterConfig
	Session   SessionConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points at the pizza shop backend that owns the catalog and
// invoice records. This service reaches it only over HTTP/JSON.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ShopConfig holds display settings used on invoices and printed receipts.
type ShopConfig struct {
	Name           string
	CurrencyPrefix string
}

type PrinterConfig struct {
	Type        string // "usb", "network", or "none"
	USBPath     string
	Address     string
	CharWidth   int
	SettleDelay time.Duration
}

// SessionConfig controls how long idle invoice-creation sessions are kept.
type SessionConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-admin")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8080")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SHOP_NAME", "PUZZLE PIZZA")
	viper.SetDefault("SHOP_CURRENCY_PREFIX", "Rs. ")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("PRINTER_SETTLE_DELAY_MS", 300)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS_PER_SECOND", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Shop: ShopConfig{
			Name:           viper.GetString("SHOP_NAME"),
			CurrencyPrefix: viper.GetString("SHOP_CURRENCY_PREFIX"),
		},
		Printer: PrinterConfig{
			Type:        viper.GetString("PRINTER_TYPE"),
			USBPath:     viper.GetString("PRINTER_USB_PATH"),
			Address:     viper.GetString("PRINTER_ADDRESS"),
			CharWidth:   viper.GetInt("PRINTER_CHAR_WIDTH"),
			SettleDelay: time.Duration(viper.GetInt("PRINTER_SETTLE_DELAY_MS")) * time.Millisecond,
		},
		Session: SessionConfig{
			TTL: time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_REQUESTS_PER_SECOND"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}
}
