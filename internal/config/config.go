package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data sources selectable through DATA_SOURCE.
const (
	DataSourceDatabase = "database"
	DataSourceDemo     = "demo"
)

const defaultSecret = "change_me"

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origins     []string
	Environment string
	AppURL      string
	DataSource  string
	Log         LogConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Share       ShareConfig
	Redis       RedisConfig
	S3          S3Config
	Kafka       KafkaConfig
	MQTT        MQTTConfig
	RateLimit   RateLimitConfig
	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
	// UploadMaxBytes caps a single uploaded document.
	UploadMaxBytes int64
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// JWTConfig holds signing secrets and lifetimes for the three token kinds.
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	DoctorSecret           string
	ExpirationMinutes      int
	RefreshExpirationHours int
}

// ShareConfig drives the doctor-access gate.
type ShareConfig struct {
	CodeTTL         time.Duration
	DoctorAccessTTL time.Duration
	SingleUse       bool
	DemoCode        string
	DemoPatientID   string
}

// RedisConfig selects the grant store. An empty Addr keeps grants in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config selects the document blob store. An empty Bucket keeps blobs in memory.
type S3Config struct {
	Bucket string
	Prefix string
}

type KafkaConfig struct {
	Brokers       []string
	InsightsTopic string
	GroupID       string
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("ORIGIN", "http://localhost:4200")
	v.SetDefault("APP_URL", "http://localhost:3001")
	v.SetDefault("DATA_SOURCE", DataSourceDatabase)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USERNAME", "root")
	v.SetDefault("DB_NAME", "biogram")
	v.SetDefault("JWT_SECRET", defaultSecret)
	v.SetDefault("JWT_REFRESH_SECRET", defaultSecret)
	v.SetDefault("JWT_DOCTOR_SECRET", defaultSecret)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 15)
	v.SetDefault("JWT_REFRESH_EXPIRATION_HOURS", 168) // 7 days
	v.SetDefault("SHARE_CODE_TTL_MINUTES", 60)
	v.SetDefault("DOCTOR_ACCESS_TTL_MINUTES", 30)
	v.SetDefault("SHARE_SINGLE_USE", true)
	v.SetDefault("DEMO_PATIENT_ID", "demo-patient")
	v.SetDefault("KAFKA_INSIGHTS_TOPIC", "biogram.insights")
	v.SetDefault("KAFKA_GROUP_ID", "biogram-insights")
	v.SetDefault("MQTT_CLIENT_ID", "biogram-wearables")
	v.SetDefault("MQTT_TOPIC", "biogram/wearables/+/sync")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)

	dataSource := strings.ToLower(v.GetString("DATA_SOURCE"))
	demoCode := v.GetString("DEMO_ACCESS_CODE")
	if demoCode == "" && dataSource == DataSourceDemo {
		demoCode = "VH-4829"
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	dbPort := v.GetString("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
		if driver == "postgres" {
			dbPort = "5432"
		}
	}
	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     v.GetString("DB_HOST"),
		Port:     dbPort,
		Username: v.GetString("DB_USERNAME"),
		Password: v.GetString("DB_PASSWORD"),
		Name:     v.GetString("DB_NAME"),
		DSN:      v.GetString("DATABASE_DSN"),
	}
	if dbConfig.DSN == "" {
		dbConfig.DSN = dbConfig.buildDSN()
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Origins:     splitList(v.GetString("CORS_ORIGINS"), v.GetString("ORIGIN")),
		Environment: v.GetString("ENV"),
		AppURL:      strings.TrimRight(v.GetString("APP_URL"), "/"),
		DataSource:  dataSource,
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: dbConfig,
		JWT: JWTConfig{
			Secret:                 v.GetString("JWT_SECRET"),
			RefreshSecret:          v.GetString("JWT_REFRESH_SECRET"),
			DoctorSecret:           v.GetString("JWT_DOCTOR_SECRET"),
			ExpirationMinutes:      v.GetInt("JWT_EXPIRATION_MINUTES"),
			RefreshExpirationHours: v.GetInt("JWT_REFRESH_EXPIRATION_HOURS"),
		},
		Share: ShareConfig{
			CodeTTL:         time.Duration(v.GetInt("SHARE_CODE_TTL_MINUTES")) * time.Minute,
			DoctorAccessTTL: time.Duration(v.GetInt("DOCTOR_ACCESS_TTL_MINUTES")) * time.Minute,
			SingleUse:       v.GetBool("SHARE_SINGLE_USE"),
			DemoCode:        demoCode,
			DemoPatientID:   v.GetString("DEMO_PATIENT_ID"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		S3: S3Config{
			Bucket: v.GetString("S3_BUCKET"),
			Prefix: v.GetString("S3_PREFIX"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS"), ""),
			InsightsTopic: v.GetString("KAFKA_INSIGHTS_TOPIC"),
			GroupID:       v.GetString("KAFKA_GROUP_ID"),
		},
		MQTT: MQTTConfig{
			Broker:   v.GetString("MQTT_BROKER"),
			ClientID: v.GetString("MQTT_CLIENT_ID"),
			Username: v.GetString("MQTT_USERNAME"),
			Password: v.GetString("MQTT_PASSWORD"),
			Topic:    v.GetString("MQTT_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES"), ""),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d DatabaseConfig) buildDSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.Username, d.Password, d.Name)
	}
	// Build DSN (Data Source Name) for MySQL connection
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDemo reports whether health pages are served from seeded demo content.
func (c *Config) IsDemo() bool {
	return c.DataSource == DataSourceDemo
}

// Validate rejects configurations that are unsafe or incoherent.
func (c *Config) Validate() error {
	if c.DataSource != DataSourceDatabase && c.DataSource != DataSourceDemo {
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", DataSourceDatabase, DataSourceDemo, c.DataSource)
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be \"mysql\" or \"postgres\", got %q", c.Database.Driver)
	}
	if c.JWT.ExpirationMinutes <= 0 || c.JWT.RefreshExpirationHours <= 0 {
		return fmt.Errorf("JWT expirations must be positive")
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}
	if c.Share.CodeTTL <= 0 || c.Share.DoctorAccessTTL <= 0 {
		return fmt.Errorf("share code and doctor access TTLs must be positive")
	}
	if c.IsProduction() {
		if c.JWT.Secret == defaultSecret || c.JWT.RefreshSecret == defaultSecret || c.JWT.DoctorSecret == defaultSecret {
			return fmt.Errorf("JWT secrets must be set in production")
		}
		if c.Share.DemoCode != "" {
			return fmt.Errorf("DEMO_ACCESS_CODE must not be set in production")
		}
	}
	return nil
}

func splitList(raw, fallback string) []string {
	if raw == "" {
		raw = fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
