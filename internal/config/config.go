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
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Tables   TablesConfig   `yaml:"tables" mapstructure:"tables"`
	Model    ModelConfig    `yaml:"model" mapstructure:"model"`
	Evaluate EvaluateConfig `yaml:"evaluate" mapstructure:"evaluate"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the local run registry.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DataConfig configures the tabular preprocessing stage.
type DataConfig struct {
	InputPath     string  `yaml:"input_path" mapstructure:"input_path"`
	OutputDir     string  `yaml:"output_dir" mapstructure:"output_dir"`
	VocabPath     string  `yaml:"vocab_path" mapstructure:"vocab_path"`
	Seed          int64   `yaml:"seed" mapstructure:"seed"`
	TrainFraction float64 `yaml:"train_fraction" mapstructure:"train_fraction"`
	ValFraction   float64 `yaml:"val_fraction" mapstructure:"val_fraction"`
}

// TablesConfig holds paths to the three static lookup artifacts.
type TablesConfig struct {
	CategoryPath    string `yaml:"category_path" mapstructure:"category_path"`
	CategoryNumPath string `yaml:"category_num_path" mapstructure:"category_num_path"`
	SourceNumPath   string `yaml:"source_num_path" mapstructure:"source_num_path"`
}

// ModelConfig configures the trained classifier used at inference time.
type ModelConfig struct {
	Path           string `yaml:"path" mapstructure:"path"`
	VectorizerPath string `yaml:"vectorizer_path" mapstructure:"vectorizer_path"`
	NumClasses     int    `yaml:"num_classes" mapstructure:"num_classes"`
}

// EvaluateConfig configures the evaluation stage and its quality gate.
type EvaluateConfig struct {
	TestPath     string  `yaml:"test_path" mapstructure:"test_path"`
	ReportPath   string  `yaml:"report_path" mapstructure:"report_path"`
	AUCThreshold float64 `yaml:"auc_threshold" mapstructure:"auc_threshold"`
	Workers      int     `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the inference HTTP server.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
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
	v.SetEnvPrefix("MLPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "mlpipe.db")
	v.SetDefault("data.input_path", "data/churndata.csv")
	v.SetDefault("data.output_dir", "data/processed")
	v.SetDefault("data.vocab_path", "data/processed/vocabulary.yaml")
	v.SetDefault("data.seed", 0)
	v.SetDefault("data.train_fraction", 0.70)
	v.SetDefault("data.val_fraction", 0.15)
	v.SetDefault("tables.category_path", "artifacts/category_mapping.yaml")
	v.SetDefault("tables.category_num_path", "artifacts/category_num_mapping.yaml")
	v.SetDefault("tables.source_num_path", "artifacts/source_num_mapping.yaml")
	v.SetDefault("model.path", "artifacts/model.xgb")
	v.SetDefault("model.vectorizer_path", "artifacts/vectorizer.yaml")
	v.SetDefault("model.num_classes", 7)
	v.SetDefault("evaluate.test_path", "data/processed/test.csv")
	v.SetDefault("evaluate.report_path", "data/processed/evaluation.json")
	v.SetDefault("evaluate.auc_threshold", 0.75)
	v.SetDefault("evaluate.workers", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
