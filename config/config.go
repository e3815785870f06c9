package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host     string   `envconfig:"HOST" mapstructure:"host"`
	Port     string   `envconfig:"PORT" mapstructure:"port"`
	Prefix   string   `envconfig:"PREFIX" mapstructure:"prefix"`
	Mode     Mode     `envconfig:"MODE" mapstructure:"mode"`
	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
	JWT      JWT      `mapstructure:"jwt"`
	Log      Log      `mapstructure:"log"`
	Sentry   Sentry   `mapstructure:"sentry"`
	OTel     OTel     `envconfig:"OTEL" mapstructure:"otel"`
	S3       S3       `mapstructure:"s3"`
	Polish   Polish   `mapstructure:"polish"`
	Health   Health   `mapstructure:"health"`
}

type DatabaseDriver string

const (
	DriverMysql    DatabaseDriver = "mysql"
	DriverPostgres DatabaseDriver = "postgres"
	DriverSqlite   DatabaseDriver = "sqlite"
)

type Database struct {
	Driver   DatabaseDriver `envconfig:"DRIVER" mapstructure:"driver"`
	Host     string         `envconfig:"HOST" mapstructure:"host"`
	Port     string         `envconfig:"PORT" mapstructure:"port"`
	Username string         `envconfig:"USERNAME" mapstructure:"username"`
	Password string         `envconfig:"PASSWORD" mapstructure:"password"`
	DBName   string         `envconfig:"DB_NAME" mapstructure:"db_name"`
	// DSN 非空时直接使用，忽略上面的分项配置；sqlite 模式下为数据库文件路径
	DSN string `envconfig:"DSN" mapstructure:"dsn"`
}

type Redis struct {
	Host     string `envconfig:"HOST" mapstructure:"host"`
	Port     string `envconfig:"PORT" mapstructure:"port"`
	Password string `envconfig:"PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"DB" mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // 秒
}

type Log struct {
	FilePath   string `envconfig:"FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `envconfig:"DSN" mapstructure:"dsn"`
	Environment string        `envconfig:"ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64       `envconfig:"SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `envconfig:"DB_SLOW_THRESHOLD_MS" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `envconfig:"REDIS_SLOW_THRESHOLD_MS" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `envconfig:"TRACE_HTTP_CALLS" mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"AGENT_PORT" mapstructure:"agent_port"`
}

type S3 struct {
	Endpoint        string `envconfig:"ENDPOINT" mapstructure:"endpoint"`
	BaseURL         string `envconfig:"BASE_URL" mapstructure:"base_url"`
	Bucket          string `envconfig:"BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"PATH_STYLE" mapstructure:"path_style"`
}

// Polish 活动描述润色所用的生成式文本接口
type Polish struct {
	Endpoint       string `envconfig:"ENDPOINT" mapstructure:"endpoint"`
	APIKey         string `envconfig:"API_KEY" mapstructure:"api_key"`
	Model          string `envconfig:"MODEL" mapstructure:"model"`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" mapstructure:"timeout_seconds"`
}

type Health struct {
	IntervalSeconds int `envconfig:"INTERVAL_SECONDS" mapstructure:"interval_seconds"`
}
