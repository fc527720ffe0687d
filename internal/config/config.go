package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"github.com/Behyna/sms-services/smscampaign/pkg/mysql"
	"github.com/Behyna/sms-services/smscampaign/pkg/smsprovider"
	"github.com/spf13/viper"
)

type Config struct {
	API          API                 `mapstructure:"api"`
	Database     mysql.Config        `mapstructure:"database"`
	Schema       Schema              `mapstructure:"schema"`
	RabbitMQ     mq.Config           `mapstructure:"rabbitmq"`
	Redis        Redis               `mapstructure:"redis"`
	Provider     smsprovider.Config  `mapstructure:"provider"`
	Segmentation segmentation.Config `mapstructure:"segmentation"`
	Queue        Queue               `mapstructure:"queue"`
	Metrics      Metrics             `mapstructure:"metrics"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Schema struct {
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	SentTTL  time.Duration `mapstructure:"sent_ttl"`
}

type Queue struct {
	DispatchBatchSize    int           `mapstructure:"dispatch_batch_size"`
	DispatchInterval     time.Duration `mapstructure:"dispatch_interval"`
	ProcessingTimeout    time.Duration `mapstructure:"processing_timeout"`
	MaxAttempts          int           `mapstructure:"max_attempts"`
	BackoffBase          time.Duration `mapstructure:"backoff_base"`
	BackoffMax           time.Duration `mapstructure:"backoff_max"`
	RetentionAge         time.Duration `mapstructure:"retention_age"`
	MaintenanceInterval  time.Duration `mapstructure:"maintenance_interval"`
	CleanupInterval      time.Duration `mapstructure:"cleanup_interval"`
	SendQueueName        string        `mapstructure:"send_queue_name"`
	ConsumerPrefetch     int           `mapstructure:"consumer_prefetch"`
	DefaultSenderName    string        `mapstructure:"default_sender_name"`
	DefaultSenderAddress string        `mapstructure:"default_sender_address"`
}

type Metrics struct {
	Enabled         bool          `mapstructure:"enabled"`
	CollectInterval time.Duration `mapstructure:"collect_interval"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceVersion  string        `mapstructure:"service_version"`
}

func Load() (cfg *Config, err error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("redis.sent_ttl", 24*time.Hour)
	v.SetDefault("provider.name", "default")
	v.SetDefault("provider.timeout", 5*time.Second)
	v.SetDefault("provider.max_retry", 3)
	v.SetDefault("provider.retry_delay", 100*time.Millisecond)
	v.SetDefault("queue.dispatch_batch_size", 100)
	v.SetDefault("queue.dispatch_interval", 5*time.Second)
	v.SetDefault("queue.processing_timeout", 5*time.Minute)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.backoff_base", 30*time.Second)
	v.SetDefault("queue.backoff_max", 30*time.Minute)
	v.SetDefault("queue.retention_age", 30*24*time.Hour)
	v.SetDefault("queue.maintenance_interval", time.Minute)
	v.SetDefault("queue.cleanup_interval", time.Hour)
	v.SetDefault("queue.send_queue_name", "sms.send")
	v.SetDefault("queue.consumer_prefetch", 10)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.collect_interval", 15*time.Second)
	v.SetDefault("metrics.service_name", "smscampaign")
	v.SetDefault("metrics.service_version", "1.0.0")
}
