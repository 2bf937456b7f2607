// Package config loads service settings from defaults, an optional YAML file
// and SUBSCAN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SUBSCAN"

type Config struct {
	GRPC   GRPCConfig   `mapstructure:"grpc"`
	Log    LogConfig    `mapstructure:"log"`
	Parser ParserConfig `mapstructure:"parser"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ParserConfig struct {
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// LLMConfig configures the optional escalation used when rule parsing fails.
// An empty BaseURL targets OpenAI; an Ollama host looks like http://host:11434/v1.
type LLMConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("parser.batch_concurrency", 8)
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max_concurrency", 3)
}

// Load reads configuration. When file is empty, config.yaml is looked up in
// the working directory and $HOME/.config/subscan; a missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "subscan"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	if c.GRPC.Addr == "" {
		return fmt.Errorf("%w: grpc.addr is empty", ErrInvalidConfig)
	}
	if c.Parser.BatchConcurrency < 1 {
		return fmt.Errorf("%w: parser.batch_concurrency must be positive", ErrInvalidConfig)
	}
	if c.LLM.Enabled {
		if c.LLM.Model == "" {
			return fmt.Errorf("%w: llm.model is empty", ErrInvalidConfig)
		}
		if c.LLM.BaseURL == "" && c.LLM.APIKey == "" {
			return fmt.Errorf("%w: llm.api_key is required without llm.base_url", ErrInvalidConfig)
		}
		if c.LLM.MaxConcurrency < 1 {
			return fmt.Errorf("%w: llm.max_concurrency must be positive", ErrInvalidConfig)
		}
	}
	return nil
}
