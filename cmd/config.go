package cmd

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel        string
	TrackingBaseURL string
	DefaultCurrency string

	WebhookSecret    string
	WebhookRateLimit int

	RabbitMQURL        string
	RabbitMQEmailQueue string
	RabbitMQSMSQueue   string

	KafkaHost               string
	KafkaConsumerGroup      string
	KafkaCarrierEventsTopic string
	KafkaOrderChangedTopic  string

	OpsEmail        string
	PickupTeamEmail string

	OutboxBatchSize   int
	OutboxMaxAttempts int
	OutboxSchedule    string
}

var defaults = map[string]any{
	"HTTP_PORT":                  "8080",
	"DB_HOST":                    "localhost",
	"DB_PORT":                    "5432",
	"DB_USER":                    "postgres",
	"DB_PASSWORD":                "",
	"DB_NAME":                    "fulfillment",
	"DB_SSLMODE":                 "disable",
	"LOG_LEVEL":                  "info",
	"TRACKING_BASE_URL":          "https://obana.africa/track",
	"DEFAULT_CURRENCY":           "NGN",
	"WEBHOOK_SECRET":             "",
	"WEBHOOK_RATE_LIMIT":         60,
	"RABBITMQ_URL":               "",
	"RABBITMQ_EMAIL_QUEUE":       "notifications.email",
	"RABBITMQ_SMS_QUEUE":         "notifications.sms",
	"KAFKA_HOST":                 "",
	"KAFKA_CONSUMER_GROUP":       "fulfillment",
	"KAFKA_CARRIER_EVENTS_TOPIC": "carrier.tracking_events",
	"KAFKA_ORDER_CHANGED_TOPIC":  "orders.status_changed",
	"OPS_EMAIL":                  "",
	"PICKUP_TEAM_EMAIL":          "",
	"OUTBOX_BATCH_SIZE":          20,
	"OUTBOX_MAX_ATTEMPTS":        5,
	"OUTBOX_SCHEDULE":            "*/5 * * * * *",
}

// LoadConfig reads .env when present, then the optional yaml file named by
// CONFIG_FILE, then the environment. Later sources win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:   cast.ToString(v.Get("HTTP_PORT")),
		DBHost:     cast.ToString(v.Get("DB_HOST")),
		DBPort:     cast.ToString(v.Get("DB_PORT")),
		DBUser:     cast.ToString(v.Get("DB_USER")),
		DBPassword: cast.ToString(v.Get("DB_PASSWORD")),
		DBName:     cast.ToString(v.Get("DB_NAME")),
		DBSslMode:  cast.ToString(v.Get("DB_SSLMODE")),

		LogLevel:        cast.ToString(v.Get("LOG_LEVEL")),
		TrackingBaseURL: cast.ToString(v.Get("TRACKING_BASE_URL")),
		DefaultCurrency: strings.ToUpper(cast.ToString(v.Get("DEFAULT_CURRENCY"))),

		WebhookSecret: cast.ToString(v.Get("WEBHOOK_SECRET")),

		RabbitMQURL:        cast.ToString(v.Get("RABBITMQ_URL")),
		RabbitMQEmailQueue: cast.ToString(v.Get("RABBITMQ_EMAIL_QUEUE")),
		RabbitMQSMSQueue:   cast.ToString(v.Get("RABBITMQ_SMS_QUEUE")),

		KafkaHost:               cast.ToString(v.Get("KAFKA_HOST")),
		KafkaConsumerGroup:      cast.ToString(v.Get("KAFKA_CONSUMER_GROUP")),
		KafkaCarrierEventsTopic: cast.ToString(v.Get("KAFKA_CARRIER_EVENTS_TOPIC")),
		KafkaOrderChangedTopic:  cast.ToString(v.Get("KAFKA_ORDER_CHANGED_TOPIC")),

		OpsEmail:        cast.ToString(v.Get("OPS_EMAIL")),
		PickupTeamEmail: cast.ToString(v.Get("PICKUP_TEAM_EMAIL")),

		OutboxSchedule: cast.ToString(v.Get("OUTBOX_SCHEDULE")),
	}

	var err error
	if cfg.WebhookRateLimit, err = cast.ToIntE(v.Get("WEBHOOK_RATE_LIMIT")); err != nil {
		return Config{}, fmt.Errorf("WEBHOOK_RATE_LIMIT: %w", err)
	}
	if cfg.OutboxBatchSize, err = cast.ToIntE(v.Get("OUTBOX_BATCH_SIZE")); err != nil {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
	}
	if cfg.OutboxMaxAttempts, err = cast.ToIntE(v.Get("OUTBOX_MAX_ATTEMPTS")); err != nil {
		return Config{}, fmt.Errorf("OUTBOX_MAX_ATTEMPTS: %w", err)
	}

	return cfg, nil
}

// DSN is the PostgreSQL connection string for both gorm and the migrations.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means Kafka is not used.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
