package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// SourcesConfig describes the two store exports. The set of sources is
// deliberately closed: each store encodes its date column differently and
// the format is selected by source, never sniffed per row.
type SourcesConfig struct {
	Store1 SourceConfig `yaml:"store1" envconfig:"STORE1"`
	Store2 SourceConfig `yaml:"store2" envconfig:"STORE2"`
}

// SourceConfig describes a single input file. An empty path means the
// export is discovered in the inputs directory by source name.
type SourceConfig struct {
	Name       string `yaml:"name" envconfig:"NAME" validate:"required"`
	Path       string `yaml:"path" envconfig:"PATH"`
	DateLayout string `yaml:"date_layout" envconfig:"DATE_LAYOUT" validate:"required,oneof=mdy dmy"`
}

// AnomalyPolicy controls what happens to rows with non-positive quantities
// or negative prices.
type AnomalyPolicy string

const (
	// AnomalyFlag keeps anomalous rows in the dataset and logs a warning.
	// Suppressing such rows could hide data-entry errors upstream.
	AnomalyFlag AnomalyPolicy = "flag"
	// AnomalyExclude drops anomalous rows and counts them in the load report.
	AnomalyExclude AnomalyPolicy = "exclude"
)

// AnalysisConfig contains analysis tuning knobs
type AnalysisConfig struct {
	TopN          int           `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"min=1"`
	AnomalyPolicy AnomalyPolicy `yaml:"anomaly_policy" envconfig:"ANOMALY_POLICY" default:"flag" validate:"oneof=flag exclude"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/martcli.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and an optional YAML
// config file. Environment variables take precedence over file values.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MARTCLI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile == "" {
		configFile = defaultConfigFilePath()
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config. File values override the
// envconfig defaults; explicitly set source paths from the environment win.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Sources.Store1.Path == "" {
		envConfig.Sources.Store1 = fileConfig.Sources.Store1
	}
	if envConfig.Sources.Store2.Path == "" {
		envConfig.Sources.Store2 = fileConfig.Sources.Store2
	}
	if fileConfig.Analysis.TopN != 0 {
		envConfig.Analysis.TopN = fileConfig.Analysis.TopN
	}
	if fileConfig.Analysis.AnomalyPolicy != "" {
		envConfig.Analysis.AnomalyPolicy = fileConfig.Analysis.AnomalyPolicy
	}
	if fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if fileConfig.Paths.LogsDir != "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	return envConfig
}

// applyDefaults fills source fields that remain unset after env and file
// loading. The date layout defaults mirror the known store conventions:
// store 1 exports month/day/year, store 2 exports day/month/year.
func applyDefaults(cfg *Config) {
	if cfg.Sources.Store1.Name == "" {
		cfg.Sources.Store1.Name = "store1"
	}
	if cfg.Sources.Store1.DateLayout == "" {
		cfg.Sources.Store1.DateLayout = "mdy"
	}
	if cfg.Sources.Store2.Name == "" {
		cfg.Sources.Store2.Name = "store2"
	}
	if cfg.Sources.Store2.DateLayout == "" {
		cfg.Sources.Store2.DateLayout = "dmy"
	}
	if cfg.Analysis.TopN == 0 {
		cfg.Analysis.TopN = 10
	}
	if cfg.Analysis.AnomalyPolicy == "" {
		cfg.Analysis.AnomalyPolicy = AnomalyFlag
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "console"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = "logs/martcli.log"
	}
}

// Validate validates the configuration using struct tags plus the checks
// tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Sources.Store1.Name == c.Sources.Store2.Name {
		return fmt.Errorf("sources must have distinct names, both are %q", c.Sources.Store1.Name)
	}

	return nil
}

// defaultConfigFilePath returns the default config file location next to the
// executable, falling back to the working directory.
func defaultConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "martcli.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "martcli.yaml")
}
