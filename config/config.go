package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string        `mapstructure:"FRONTEND_URL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Payment gateway.
	PaymentProvider       string  `mapstructure:"PAYMENT_PROVIDER"` // "razorpay" or "stripe"
	PaymentKeyID          string  `mapstructure:"PAYMENT_KEY_ID"`
	PaymentKeySecret      string  `mapstructure:"PAYMENT_KEY_SECRET"`
	PaymentCurrency       string  `mapstructure:"PAYMENT_CURRENCY"`
	DefaultAppointmentFee float64 `mapstructure:"DEFAULT_APPOINTMENT_FEE"`

	// ML prediction service.
	PredictionURL     string        `mapstructure:"PREDICTION_URL"`
	PredictionTimeout time.Duration `mapstructure:"PREDICTION_TIMEOUT"`

	// Lead time for appointment reminders.
	ReminderLead time.Duration `mapstructure:"REMINDER_LEAD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// setDefaults registers defaults for every non-secret key. Secrets are left
// unset on purpose so Validate can refuse to start without them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "asdcare")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	v.SetDefault("PAYMENT_PROVIDER", "razorpay")
	v.SetDefault("PAYMENT_CURRENCY", "INR")
	v.SetDefault("DEFAULT_APPOINTMENT_FEE", 500)
	v.SetDefault("PREDICTION_URL", "http://localhost:5001")
	v.SetDefault("PREDICTION_TIMEOUT", "30s")
	v.SetDefault("REMINDER_LEAD", "24h")
}

// Validate reports every required setting that is missing.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if strings.TrimSpace(c.PaymentKeyID) == "" {
		errs = append(errs, errors.New("PAYMENT_KEY_ID is required"))
	}
	if strings.TrimSpace(c.PaymentKeySecret) == "" {
		errs = append(errs, errors.New("PAYMENT_KEY_SECRET is required"))
	}
	switch c.PaymentProvider {
	case "razorpay", "stripe":
	default:
		errs = append(errs, fmt.Errorf("PAYMENT_PROVIDER %q is not supported", c.PaymentProvider))
	}
	if c.DefaultAppointmentFee <= 0 {
		errs = append(errs, errors.New("DEFAULT_APPOINTMENT_FEE must be positive"))
	}
	return errors.Join(errs...)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
