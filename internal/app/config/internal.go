package config

type InternalConfig struct {
	App       App          `mapstructure:"app"`
	Clerk     AppClerk     `mapstructure:"clerk"`
	Daily     AppDaily     `mapstructure:"daily"`
	Upload    AppUpload    `mapstructure:"upload"`
	Minio     AppMinio     `mapstructure:"minio"`
	RabbitMQ  AppRabbitMQ  `mapstructure:"rabbitmq"`
	Reminder  AppReminder  `mapstructure:"reminder"`
	RateLimit AppRateLimit `mapstructure:"rate_limit"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	CORSAllowedOrigins         string `mapstructure:"cors_allowed_origins"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	StorageDriver              string `mapstructure:"storage_driver"`
}

// AppClerk configures networkless verification of Clerk session tokens.
type AppClerk struct {
	JWTKey             string `mapstructure:"jwt_key"`
	AuthorizedParties  string `mapstructure:"authorized_parties"`
	ClockSkewInSeconds int    `mapstructure:"clock_skew_in_seconds"`
}

type AppDaily struct {
	APIBaseURL              string  `mapstructure:"api_base_url"`
	APIKey                  string  `mapstructure:"api_key"`
	RequestTimeoutInSeconds int     `mapstructure:"request_timeout_in_seconds"`
	RequestsPerSecond       float64 `mapstructure:"requests_per_second"`
	Burst                   int     `mapstructure:"burst"`
}

type AppUpload struct {
	Dir string `mapstructure:"dir"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	NotificationQueue string `mapstructure:"notification_queue"`
}

type AppReminder struct {
	Enabled          bool   `mapstructure:"enabled"`
	CronSpec         string `mapstructure:"cron_spec"`
	LeadMinutes      int    `mapstructure:"lead_minutes"`
	BatchSize        int    `mapstructure:"batch_size"`
	LockTTLInSeconds int    `mapstructure:"lock_ttl_in_seconds"`
}

// AppRateLimit holds per-resource quotas enforced through Redis.
type AppRateLimit struct {
	ReviewRequestCreateQuota           int `mapstructure:"review_request_create_quota"`
	ReviewRequestCreateWindowInSeconds int `mapstructure:"review_request_create_window_in_seconds"`
}
