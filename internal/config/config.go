package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type FulfillmentConfig struct {
	Env             string `yaml:"env"`
	HTTPServer      `yaml:"http_server"`
	FulfillmentDB   `yaml:"fulfillment_db"`
	LogConfig       `yaml:"log_config"`
	KafkaService    `yaml:"kafka-service"`
	ReferralService `yaml:"referral-service"`
	Notifier        `yaml:"notifier"`
	ProofStorage    `yaml:"proof_storage"`
	FraudPolicy     `yaml:"fraud_policy"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type FulfillmentDB struct {
	Dsn           string `yaml:"dsn"`
	MigrationPath string `yaml:"migration_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type ReferralService struct {
	Address string `yaml:"address"`
}

type Notifier struct {
	CallbackURL string `yaml:"callback_url"`
}

type ProofStorage struct {
	BaseDir string `yaml:"base_dir" env-default:"uploads/delivery_proofs"`
}

type FraudPolicy struct {
	Enforce              bool          `yaml:"enforce" env-default:"true"`
	HighAmountThreshold  float64       `yaml:"high_amount_threshold" env-default:"100000"`
	CODCeiling           float64       `yaml:"cod_ceiling" env-default:"50000"`
	BlockScore           int           `yaml:"block_score" env-default:"50"`
	MaxOrdersPerWindow   int64         `yaml:"max_orders_per_window" env-default:"10"`
	OrderWindow          time.Duration `yaml:"order_window" env-default:"5m"`
	MaxAttemptsPerMinute int64         `yaml:"max_attempts_per_minute" env-default:"20"`
	VelocityPerMinute    int64         `yaml:"velocity_per_minute" env-default:"10"`
	DuplicateWindow      time.Duration `yaml:"duplicate_window" env-default:"5m"`
	MaxIPUsers           int64         `yaml:"max_ip_users" env-default:"3"`
}

func MustLoad() *FulfillmentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("FULFILLMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("FULFILLMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg FulfillmentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
