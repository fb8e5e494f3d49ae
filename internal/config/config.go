package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultMainURL is the Akwam domain used when main_url is not configured.
const DefaultMainURL = "https://ak.sv"

type Config struct {
	MainURL               string `mapstructure:"main_url"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s"
	UserAgent             string `mapstructure:"user_agent"`
	LogLevel              string `mapstructure:"log_level"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Cache struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`
		TTL      string `mapstructure:"ttl"`
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Retry struct {
		MaxAttempts int    `mapstructure:"max_attempts"`
		Delay       string `mapstructure:"delay"`
		MaxDelay    string `mapstructure:"max_delay"`
	} `mapstructure:"retry"`
	Links struct {
		Concurrency int `mapstructure:"concurrency"`
	} `mapstructure:"links"`
	Browser struct {
		Enabled  bool   `mapstructure:"enabled"`
		ExecPath string `mapstructure:"exec_path"`
		Timeout  string `mapstructure:"timeout"`
	} `mapstructure:"browser"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	ConfigureLogger(config.LogLevel)
	globalConfig = config
	logger.Debug().Str("main_url", config.MainURL).Msg("Configuration loaded successfully")
}

// ConfigureLogger sets the global zerolog level. Unknown levels fall back to info.
func ConfigureLogger(levelName string) {
	level := zerolog.InfoLevel
	if levelName != "" {
		if parsedLevel, err := zerolog.ParseLevel(levelName); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", levelName).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
}

func setDefaults() {
	viper.SetDefault("main_url", DefaultMainURL)
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("server.address", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 500)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("cache.redis.address", "localhost:6379")
	viper.SetDefault("retry.max_attempts", 3)
	viper.SetDefault("retry.delay", "500ms")
	viper.SetDefault("retry.max_delay", "5s")
	viper.SetDefault("links.concurrency", 4)
	viper.SetDefault("browser.enabled", false)
	viper.SetDefault("browser.timeout", "45s")
	viper.SetDefault("sentry.environment", "production")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("sentry.dsn", "SENTRY_DSN")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal()
}

// Reload re-reads viper state into the global config. Callers that bind
// command-line flags into viper use it after parsing.
func Reload() (*Config, error) {
	config, err := unmarshal()
	if err != nil {
		return nil, err
	}
	ConfigureLogger(config.LogLevel)
	globalConfig = config
	return config, nil
}

func unmarshal() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.MainURL == "" {
		config.MainURL = DefaultMainURL
	}
	config.MainURL = strings.TrimRight(config.MainURL, "/")

	return &config, nil
}

// ParseDuration parses a Go duration string, returning fallback (and logging) when
// the value is empty or invalid.
func ParseDuration(key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
