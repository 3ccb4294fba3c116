// Package config loads application configuration from config.yaml and
// CONTRACTRISK_* environment variables, and initializes the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/contract-risk/internal/scorer"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig    `yaml:"store" mapstructure:"store"`
	Server  ServerConfig   `yaml:"server" mapstructure:"server"`
	Serving ServingConfig  `yaml:"serving" mapstructure:"serving"`
	Scorer  scorer.Weights `yaml:"scorer" mapstructure:"scorer"`
	Log     LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`             // "sqlite" or "postgres"
	Path        string `yaml:"path" mapstructure:"path"`                 // sqlite file path
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"` // postgres DSN
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ServingConfig configures the inference shim.
type ServingConfig struct {
	ModelDir string `yaml:"model_dir" mapstructure:"model_dir"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "json" or "console"
}

// Load reads config.yaml (optional) and the environment, applying
// defaults for everything else.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CONTRACTRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "contract-risk.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("serving.model_dir", "models")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	w := scorer.DefaultWeights()
	v.SetDefault("scorer.low_deposit", w.LowDeposit)
	v.SetDefault("scorer.first_time", w.FirstTime)
	v.SetDefault("scorer.short_lead", w.ShortLead)
	v.SetDefault("scorer.overdue_deposit", w.OverdueDeposit)
	v.SetDefault("scorer.overdue_signature", w.OverdueSignature)
	v.SetDefault("scorer.financial_anomaly", w.FinancialAnomaly)
	v.SetDefault("scorer.status_risk", w.StatusRisk)
	v.SetDefault("scorer.deposit_threshold", w.DepositThreshold)
	v.SetDefault("scorer.lead_days_threshold", w.LeadDaysThreshold)

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
