package config

import (
	"errors"
	"fmt"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medtour"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

type configKey struct {
	key          string
	env          string
	defaultValue interface{}
}

var internalConfigKeys = []configKey{
	{"app.env", "APP_ENV", constvars.AppEnvDevelopment},
	{"app.port", "APP_PORT", ":5000"},
	{"app.version", "APP_VERSION", "v1.0"},
	{"app.timezone", "APP_TIMEZONE", "UTC"},
	{"app.endpoint_prefix", "APP_ENDPOINT_PREFIX", "/api"},
	{"app.cors_allowed_origins", "APP_CORS_ALLOWED_ORIGINS", "http://localhost:3000"},
	{"app.max_requests", "APP_MAX_REQUESTS", 20},
	{"app.shutdown_timeout_in_seconds", "APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10},
	{"app.request_timeout_in_seconds", "APP_REQUEST_TIMEOUT_IN_SECONDS", 10},
	{"app.request_body_limit_in_megabyte", "APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 55},
	{"app.storage_driver", "APP_STORAGE_DRIVER", constvars.StorageDriverLocal},
	{"clerk.jwt_key", "CLERK_JWT_KEY", ""},
	{"clerk.authorized_parties", "CLERK_AUTHORIZED_PARTIES", ""},
	{"clerk.clock_skew_in_seconds", "CLERK_CLOCK_SKEW_IN_SECONDS", 5},
	{"daily.api_base_url", "DAILY_API_BASE_URL", "https://api.daily.co/v1"},
	{"daily.api_key", "DAILY_API_KEY", ""},
	{"daily.request_timeout_in_seconds", "DAILY_REQUEST_TIMEOUT_IN_SECONDS", 10},
	{"daily.requests_per_second", "DAILY_REQUESTS_PER_SECOND", 2.0},
	{"daily.burst", "DAILY_BURST", 5},
	{"upload.dir", "APP_UPLOAD_DIR", "uploads/medical-reports"},
	{"minio.bucket_name", "MINIO_BUCKET_NAME", "medical-reports"},
	{"rabbitmq.notification_queue", "APP_RABBITMQ_NOTIFICATION_QUEUE", "medtour.notifications"},
	{"reminder.enabled", "APP_REMINDER_ENABLED", true},
	{"reminder.cron_spec", "APP_REMINDER_CRON_SPEC", "@every 1m"},
	{"reminder.lead_minutes", "APP_REMINDER_LEAD_MINUTES", 15},
	{"reminder.batch_size", "APP_REMINDER_BATCH_SIZE", 50},
	{"reminder.lock_ttl_in_seconds", "APP_REMINDER_LOCK_TTL_IN_SECONDS", 50},
	{"rate_limit.review_request_create_quota", "APP_REVIEW_REQUEST_CREATE_QUOTA", 10},
	{"rate_limit.review_request_create_window_in_seconds", "APP_REVIEW_REQUEST_CREATE_WINDOW_IN_SECONDS", 3600},
}

func NewInternalConfig() (*InternalConfig, error) {
	v := viper.New()
	for _, k := range internalConfigKeys {
		v.SetDefault(k.key, k.defaultValue)
		if err := v.BindEnv(k.key, k.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k.env, err)
		}
	}

	internalConfig := &InternalConfig{}
	if err := v.Unmarshal(internalConfig); err != nil {
		return nil, fmt.Errorf("unmarshal internal config: %w", err)
	}

	if err := internalConfig.Validate(); err != nil {
		return nil, err
	}
	return internalConfig, nil
}

func (c *InternalConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Clerk.JWTKey) == "" {
		errs = append(errs, errors.New("CLERK_JWT_KEY is required"))
	}
	if strings.TrimSpace(c.Daily.APIKey) == "" {
		errs = append(errs, errors.New("DAILY_API_KEY is required"))
	}
	switch c.App.StorageDriver {
	case constvars.StorageDriverLocal, constvars.StorageDriverMinio:
	default:
		errs = append(errs, fmt.Errorf("APP_STORAGE_DRIVER must be %q or %q, got %q",
			constvars.StorageDriverLocal, constvars.StorageDriverMinio, c.App.StorageDriver))
	}
	if c.Reminder.LeadMinutes <= 0 {
		errs = append(errs, errors.New("APP_REMINDER_LEAD_MINUTES must be positive"))
	}
	if c.Daily.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("DAILY_REQUESTS_PER_SECOND must be positive"))
	}

	return errors.Join(errs...)
}

func (c *InternalConfig) IsProduction() bool {
	return c.App.Env == constvars.AppEnvProduction
}
