package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Stats    StatsConfig    `yaml:"stats"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// DatasetConfig describes where the routes table is loaded from at startup.
type DatasetConfig struct {
	Source         string `yaml:"source"`
	Path           string `yaml:"path"`
	DefaultCountry string `yaml:"default_country"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN: username:password@protocol(address)/dbname?param=value
func (m MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", m.User, m.Password, m.Host, m.Port, m.Name)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	SearchTopic string   `yaml:"search_topic"`
	GroupID     string   `yaml:"group_id"`
}

type StatsConfig struct {
	TopLimit int `yaml:"top_limit"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{Address: ":8000"},
		Dataset: DatasetConfig{
			Source:         SourceCSV,
			Path:           "data/cleaned_routes.csv",
			DefaultCountry: "India",
		},
		Kafka: KafkaConfig{SearchTopic: "route-searches", GroupID: "route-stats"},
		Stats: StatsConfig{TopLimit: 10},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from a .env file if one exists. Variables already
// present in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GRPC_ADDRESS"); v != "" {
		cfg.GRPC.Address = v
	}
	if v := os.Getenv("DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("DEFAULT_COUNTRY"); v != "" {
		cfg.Dataset.DefaultCountry = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
}

func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if strings.TrimSpace(c.Dataset.Path) == "" {
			return errors.New("dataset.path is required for csv source")
		}
	case SourcePostgres, SourceMySQL:
	default:
		return fmt.Errorf("unknown dataset.source %q", c.Dataset.Source)
	}
	if strings.TrimSpace(c.Dataset.DefaultCountry) == "" {
		return errors.New("dataset.default_country is required")
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address is required")
	}
	if c.Stats.TopLimit <= 0 {
		c.Stats.TopLimit = 10
	}
	return nil
}

// EventsEnabled reports whether search events should be published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.SearchTopic != ""
}

func (c *Config) StatsEnabled() bool {
	return c.Redis.Addr != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
