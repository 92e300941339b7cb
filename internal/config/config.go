package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Store struct {
	Name    string `yaml:"NAME" env:"STORE_NAME" env-default:"AFOS"`
	Tagline string `yaml:"TAGLINE" env:"STORE_TAGLINE" env-default:"ARMED FORCES SHOP"`
	Website string `yaml:"WEBSITE" env:"STORE_WEBSITE" env-default:"www.afos.rw"`
	Support string `yaml:"SUPPORT" env:"STORE_SUPPORT" env-default:"0788 000 000"`
}

type Auth struct {
	AccessCodes    []string      `yaml:"ACCESS_CODES" env:"ACCESS_CODES" env-default:"AFOS2024,DEMO1234,ACCESS99"`
	DefaultName    string        `yaml:"DEFAULT_NAME" env:"DEFAULT_NAME" env-default:"Wiron R"`
	DefaultBalance int64         `yaml:"DEFAULT_BALANCE" env:"DEFAULT_BALANCE" env-default:"200000"`
	JWTKey         string        `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	SessionTTL     time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"8h"`
	BcryptCost     int           `yaml:"BCRYPT_COST" env:"BCRYPT_COST" env-default:"10"`
}

type Checkout struct {
	ProcessingDwell time.Duration `yaml:"PROCESSING_DWELL" env:"CHECKOUT_PROCESSING_DWELL" env-default:"2500ms"`
	SuccessDwell    time.Duration `yaml:"SUCCESS_DWELL" env:"CHECKOUT_SUCCESS_DWELL" env-default:"2s"`
}

type Catalog struct {
	Path string `yaml:"PATH" env:"CATALOG_PATH"`
}

// Database is optional. The receipt archive is only wired when Host is set.
type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

// RedisConnect is optional. Without a host, login throttling allows every
// attempt and receipts are not cached.
type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"AFOS Receipts"`
	// Receipts are e-mailed here in addition to the slip printer.
	ReceiptTo string `yaml:"RECEIPT_TO" env:"SENDGRID_RECEIPT_TO"`
}

type Receipts struct {
	SpoolDir string        `yaml:"SPOOL_DIR" env:"RECEIPT_SPOOL_DIR" env-default:"./receipts"`
	CacheTTL time.Duration `yaml:"CACHE_TTL" env:"RECEIPT_CACHE_TTL" env-default:"24h"`
}

type Assistant struct {
	APIKey      string        `yaml:"API_KEY" env:"GEMINI_API_KEY"`
	Model       string        `yaml:"MODEL" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	Endpoint    string        `yaml:"ENDPOINT" env:"GEMINI_ENDPOINT" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Temperature float64       `yaml:"TEMPERATURE" env:"GEMINI_TEMPERATURE" env-default:"0.4"`
	Timeout     time.Duration `yaml:"TIMEOUT" env:"GEMINI_TIMEOUT" env-default:"15s"`
}

type OtelConfig struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"afos-pos"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Cache struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Store        Store        `yaml:"store"`
	Auth         Auth         `yaml:"auth"`
	Checkout     Checkout     `yaml:"checkout"`
	Catalog      Catalog      `yaml:"catalog"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Receipts     Receipts     `yaml:"receipts"`
	Assistant    Assistant    `yaml:"assistant"`
	Otel         OtelConfig   `yaml:"otel"`
	Cache        Cache        `yaml:"cache"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "./config/local.yaml"
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) Enabled() bool {
	return d.Host != ""
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) Enabled() bool {
	return r.Host != ""
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (s *SendGrid) Enabled() bool {
	return s.APIKey != "" && s.ReceiptTo != ""
}
