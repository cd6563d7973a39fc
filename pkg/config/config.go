package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Suggestion SuggestionConfig `yaml:"suggestion"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig HTTP服务配置
type HTTPConfig struct {
	Network string `yaml:"network"`
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	PostgreSQL PostgreSQLConfig `yaml:"postgresql"`
}

// PostgreSQLConfig PostgreSQL配置
type PostgreSQLConfig struct {
	DSN    string `yaml:"dsn"`
	DBName string `yaml:"db_name"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
}

// SuggestionConfig 好友推荐配置
type SuggestionConfig struct {
	DefaultLimit      int `yaml:"default_limit"`       // 默认返回条数
	ActivityScanLimit int `yaml:"activity_scan_limit"` // 活动扫描候选上限
}

// LoadConfig 从环境变量加载配置
func LoadConfig(serviceName string) *Config {
	var defaultHTTPPort string

	// 根据服务名称设置默认端口
	switch serviceName {
	case "user-service":
		defaultHTTPPort = "21001"
	case "catalog-service":
		defaultHTTPPort = "21002"
	case "order-service":
		defaultHTTPPort = "21003"
	case "relationship-service":
		defaultHTTPPort = "21004"
	case "notification-service":
		defaultHTTPPort = "21005"
	default:
		panic(fmt.Sprintf("未知的服务名称: %s，支持的服务名称: user-service, catalog-service, order-service, relationship-service, notification-service", serviceName))
	}

	httpPort := getEnvOrDefault("HTTP_PORT", defaultHTTPPort)

	return &Config{
		App: AppConfig{
			Name:        serviceName,
			Version:     getEnvOrDefault("APP_VERSION", "1.0.0"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
			LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{
				Network: "tcp",
				Addr:    ":" + httpPort,
				Timeout: "30s",
			},
		},
		Database: DatabaseConfig{
			PostgreSQL: PostgreSQLConfig{
				DSN:    getEnvOrDefault("POSTGRESQL_DSN", "host=localhost user=postgres password=postgres dbname=gomart port=5432 sslmode=disable TimeZone=UTC"),
				DBName: getEnvOrDefault("POSTGRESQL_DB", "gomart"),
			},
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnvOrDefault("KAFKA_BROKERS", "localhost:9092")},
			GroupID: getEnvOrDefault("KAFKA_GROUP_ID", serviceName+"-group"),
		},
		Suggestion: SuggestionConfig{
			DefaultLimit:      getEnvIntOrDefault("SUGGESTION_DEFAULT_LIMIT", 10),
			ActivityScanLimit: getEnvIntOrDefault("SUGGESTION_ACTIVITY_SCAN_LIMIT", 100),
		},
	}
}

// getEnvOrDefault 获取环境变量或默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault 获取环境变量整数值或默认值
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
