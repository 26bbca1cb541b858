package config

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort         string   `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost         string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment        string   `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName        string   `env:"SERVICE_NAME" envDefault:"nodedash"`
	ServiceVersion     string   `env:"SERVICE_VERSION" envDefault:"0.1.0"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// MongoDB 配置，任务/推荐数据与水龙头数据位于两个集群
	MongoTaskURI             string `env:"MONGO_TASK_URI" envDefault:"mongodb://localhost:27017"`
	MongoFaucetURI           string `env:"MONGO_FAUCET_URI" envDefault:"mongodb://localhost:27017"`
	MongoTaskDatabase        string `env:"MONGO_TASK_DATABASE" envDefault:"taskTracker"`
	MongoSubmissionColl      string `env:"MONGO_SUBMISSION_COLLECTION" envDefault:"usersubmissions"`
	MongoAffiliateDatabase   string `env:"MONGO_AFFILIATE_DATABASE" envDefault:"affiliaterewards"`
	MongoReferralColl        string `env:"MONGO_REFERRAL_COLLECTION" envDefault:"referralListForEachUser"`
	MongoAirdropColl         string `env:"MONGO_AIRDROP_COLLECTION" envDefault:"swapAirdrops"`
	MongoFaucetDatabase      string `env:"MONGO_FAUCET_DATABASE" envDefault:"test"`
	MongoFaucetColl          string `env:"MONGO_FAUCET_COLLECTION" envDefault:"userfaucets"`
	MongoQueryTimeoutSeconds int    `env:"MONGO_QUERY_TIMEOUT_SECONDS" envDefault:"30"`

	// Google Analytics (GA4) 配置
	GAPropertyID      string `env:"GA_PROPERTY_ID"`
	GACredentialsFile string `env:"GA_CREDENTIALS_FILE"`
	GATimeoutSeconds  int    `env:"GA_TIMEOUT_SECONDS" envDefault:"15"`
	GACacheTTLMinutes int    `env:"GA_CACHE_TTL_MINUTES" envDefault:"60"`

	// 审计库配置：postgres 或 sqlite
	DatabaseDriver     string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"nodedash"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"10"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"50"`
	SQLitePath         string `env:"SQLITE_PATH" envDefault:"nodedash.db"`
	// 只读副本，逗号分隔，其余连接参数与主库相同
	PostgreSQLReplicaHosts []string `env:"POSTGRESQL_REPLICA_HOSTS" envSeparator:","`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"ndash"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`
	AlertExchange    string `env:"ALERT_EXCHANGE" envDefault:"dashboard.alerts"`
	AlertQueue       string `env:"ALERT_QUEUE" envDefault:"dashboard.reconciliation.alerts"`
	AlertRoutingKey  string `env:"ALERT_ROUTING_KEY" envDefault:"reconciliation.missing"`

	// 看板配置
	ReconcileAlertRatio       float64 `env:"RECONCILE_ALERT_RATIO" envDefault:"20"` // 缺失比例（百分比）告警阈值
	ValidationWindowDays      int     `env:"VALIDATION_WINDOW_DAYS" envDefault:"30"`
	RefreshRateLimitPerMinute int     `env:"REFRESH_RATE_LIMIT_PER_MINUTE" envDefault:"6"`
	ReconcileIntervalMinutes  int     `env:"RECONCILE_INTERVAL_MINUTES" envDefault:"60"` // 定时对账间隔，0 表示只在每日 00:05 (UTC) 执行

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置，endpoint 为空时不启用
	OTelEndpoint    string  `env:"OTEL_ENDPOINT"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"0.1"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.GAPropertyID == "" || Cfg.GACredentialsFile == "" {
		log.Printf("WARN: GA_PROPERTY_ID or GA_CREDENTIALS_FILE is not set, analytics section will be unavailable")
	}

	if Cfg.ReconcileAlertRatio <= 0 || Cfg.ReconcileAlertRatio > 100 {
		log.Printf("WARN: RECONCILE_ALERT_RATIO=%v is out of (0, 100], reconciliation alerts are disabled", Cfg.ReconcileAlertRatio)
	}

	if Cfg.ValidationWindowDays <= 0 {
		log.Printf("WARN: VALIDATION_WINDOW_DAYS must be positive, falling back to 30")
		Cfg.ValidationWindowDays = 30
	}

	switch strings.ToLower(Cfg.DatabaseDriver) {
	case "postgres", "sqlite":
	default:
		log.Printf("WARN: unknown DATABASE_DRIVER %q, falling back to postgres", Cfg.DatabaseDriver)
		Cfg.DatabaseDriver = "postgres"
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) MongoQueryTimeout() time.Duration {
	return time.Duration(c.MongoQueryTimeoutSeconds) * time.Second
}

func (c *Config) GATimeout() time.Duration {
	return time.Duration(c.GATimeoutSeconds) * time.Second
}

func (c *Config) GACacheTTL() time.Duration {
	return time.Duration(c.GACacheTTLMinutes) * time.Minute
}

// AnalyticsEnabled GA 属性与凭据均配置时才请求外部报表
func (c *Config) AnalyticsEnabled() bool {
	return c.GAPropertyID != "" && c.GACredentialsFile != ""
}

func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
