package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	OCR       OCRConfig       `yaml:"ocr" mapstructure:"ocr"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Collector CollectorConfig `yaml:"collector" mapstructure:"collector"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// OCRConfig configures the receipt vision gateway.
type OCRConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	Key      string `yaml:"key" mapstructure:"key"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	MaxBytes int    `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// LLMConfig configures the language-model backend used for trend summaries
// and spending reports.
type LLMConfig struct {
	Provider     string `yaml:"provider" mapstructure:"provider"` // "local" or "anthropic"
	Key          string `yaml:"key" mapstructure:"key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	Model        string `yaml:"model" mapstructure:"model"`
	MaxTokens    int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	ContextChars int    `yaml:"context_chars" mapstructure:"context_chars"`
}

// CollectorConfig configures news article collection.
type CollectorConfig struct {
	Lang         string  `yaml:"lang" mapstructure:"lang"`
	Region       string  `yaml:"region" mapstructure:"region"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinChars     int     `yaml:"min_chars" mapstructure:"min_chars"`
	MaxChars     int     `yaml:"max_chars" mapstructure:"max_chars"`
	RatePerSec   float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	AcceptedYear int     `yaml:"accepted_year" mapstructure:"accepted_year"` // 0 disables the calendar-year filter
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OPENWALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "./openwallet.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ocr.provider", "vision")
	v.SetDefault("ocr.max_bytes", 8*1024*1024)
	v.SetDefault("llm.provider", "local")
	v.SetDefault("llm.base_url", "http://127.0.0.1:8000/v1")
	v.SetDefault("llm.model", "Qwen/Qwen2.5-1.5B-Instruct")
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.context_chars", 32768)
	v.SetDefault("collector.lang", "ko")
	v.SetDefault("collector.region", "KR")
	v.SetDefault("collector.user_agent", "Mozilla/5.0 (OpenWallet-TrendSummary)")
	v.SetDefault("collector.timeout_secs", 10)
	v.SetDefault("collector.min_chars", 10)
	v.SetDefault("collector.max_chars", 25000)
	v.SetDefault("collector.rate_per_sec", 5)
	v.SetDefault("collector.accepted_year", 0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
