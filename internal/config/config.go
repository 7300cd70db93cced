package config

import (
	"fmt"
	"strings"

	"github.com/aurelia-jewelry/aurelia/internal/logger"

	"github.com/spf13/viper"
)

// Config is the application configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	UserJWT  JWTConfig      `mapstructure:"user_jwt"`
	Cart     CartConfig     `mapstructure:"cart"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Backend  BackendConfig  `mapstructure:"backend"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig holds log output settings.
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts log settings for the logger package.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig holds connection pool settings.
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig holds the durable cart-slot store settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig holds the async task queue settings.
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig holds abuse-protection settings.
type SecurityConfig struct {
	PlaceOrderRateLimit RateLimitConfig `mapstructure:"place_order_rate_limit"`
}

// RateLimitConfig holds a fixed-window rate limit rule.
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// JWTConfig holds token verification settings for the optional user identity.
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// CartConfig holds cart engine policies.
type CartConfig struct {
	// MergePolicy: "clamp" silently drops quantity past a line's maximum on
	// merge-add, "fail" rejects the add instead.
	MergePolicy string `mapstructure:"merge_policy"`
	// StockFailOpen treats stock lookup errors as availability.
	StockFailOpen bool `mapstructure:"stock_fail_open"`
	// SoftQuantityCeiling caps lines without a tracked maximum.
	SoftQuantityCeiling int `mapstructure:"soft_quantity_ceiling"`
	// SlotTTLHours bounds how long an idle persisted cart survives.
	SlotTTLHours int `mapstructure:"slot_ttl_hours"`
}

// CheckoutConfig holds the checkout math and workflow settings.
type CheckoutConfig struct {
	FreeShippingThreshold string `mapstructure:"free_shipping_threshold"`
	FlatShippingFee       string `mapstructure:"flat_shipping_fee"`
	TaxRate               string `mapstructure:"tax_rate"`
	// CompensateOnPaymentInitFailure enqueues an order-cancel request when
	// payment initialization fails after the order was created. Off by
	// default: the order is left pending for a manual retry.
	CompensateOnPaymentInitFailure bool `mapstructure:"compensate_on_payment_init_failure"`
}

// BackendConfig holds the managed-backend collaborator endpoints.
type BackendConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	OrderPath   string `mapstructure:"order_path"`
	PaymentPath string `mapstructure:"payment_path"`
	TimeoutMS   int    `mapstructure:"timeout_ms"`
}

// Load reads config.yml plus environment overrides.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./")
	viper.AddConfigPath("../")
	viper.AddConfigPath("./etc")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "aurelia.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/aurelia.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "au")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default": 10,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Cart-Session",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("security.place_order_rate_limit.window_seconds", 60)
	viper.SetDefault("security.place_order_rate_limit.max_attempts", 5)
	viper.SetDefault("user_jwt.secret", "user-change-me-in-production")
	viper.SetDefault("user_jwt.expire_hours", 24)
	viper.SetDefault("cart.merge_policy", "clamp")
	viper.SetDefault("cart.stock_fail_open", true)
	viper.SetDefault("cart.soft_quantity_ceiling", 99)
	viper.SetDefault("cart.slot_ttl_hours", 168)
	viper.SetDefault("checkout.free_shipping_threshold", "75")
	viper.SetDefault("checkout.flat_shipping_fee", "10")
	viper.SetDefault("checkout.tax_rate", "0.15")
	viper.SetDefault("checkout.compensate_on_payment_init_failure", false)
	viper.SetDefault("backend.base_url", "http://127.0.0.1:9000")
	viper.SetDefault("backend.order_path", "/api/orders")
	viper.SetDefault("backend.payment_path", "/api/payment/initialize")
	viper.SetDefault("backend.timeout_ms", 10000)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config parse failed: %w", err))
	}

	return &cfg
}
