// Package config loads application configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the processing service. Components take
// the values they need explicitly; there is no process-wide singleton.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// PipelineConfig selects strategies and thresholds for document processing.
type PipelineConfig struct {
	Chunker           string `mapstructure:"chunker"`
	Merger            string `mapstructure:"merger"`
	ThresholdWords    int    `mapstructure:"threshold_words"`
	MaxIterations     int    `mapstructure:"max_iterations"`
	WindowSize        int    `mapstructure:"window_size"`
	MaxTokensPerChunk int    `mapstructure:"max_tokens_per_chunk"`
	InputDir          string `mapstructure:"input_dir"`
	OutputDir         string `mapstructure:"output_dir"`
	// Taggers maps tagger name to the subdirectory holding its BioC output.
	Taggers map[string]string `mapstructure:"taggers"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// RedisConfig describes the job-queue connection.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// Stream and consumer group for document-processing jobs.
	Stream string `mapstructure:"stream"`
	Group  string `mapstructure:"group"`
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// TelemetryConfig contains monitoring settings. Address is the listen
// address for the standalone metrics endpoint in processes that have no
// HTTP server of their own.
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// Validate catches obviously broken settings before anything starts.
func (c *Config) Validate() error {
	if c.Pipeline.ThresholdWords < 0 {
		return fmt.Errorf("pipeline.threshold_words cannot be negative")
	}
	if c.Pipeline.MaxIterations < 0 {
		return fmt.Errorf("pipeline.max_iterations cannot be negative")
	}
	if c.Pipeline.WindowSize < 0 {
		return fmt.Errorf("pipeline.window_size cannot be negative")
	}
	return nil
}

// LoadConfig loads config from the given file, or searches the usual places
// when path is empty. Environment variables prefixed PUBTATOR_ override file
// values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("pipeline.chunker", "sliding_window")
	v.SetDefault("pipeline.merger", "append")
	v.SetDefault("pipeline.threshold_words", 100)
	v.SetDefault("pipeline.max_iterations", 5)
	v.SetDefault("pipeline.window_size", 512)
	v.SetDefault("pipeline.max_tokens_per_chunk", 512)
	v.SetDefault("pipeline.taggers", map[string]string{
		"disease":  "taggerone_disease",
		"chemical": "nlmchem",
		"cellline": "taggerone_cellline",
		"tmvar":    "tmvar",
		"gnorm2":   "gnorm2",
	})
	v.SetDefault("server.address", ":10010")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.stream", "document.enqueued")
	v.SetDefault("redis.group", "pubtator-workers")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.address", ":9090")

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("PUBTATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults plus environment are enough to run; only a malformed
		// file is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
