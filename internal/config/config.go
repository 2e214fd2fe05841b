package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. CENSUS_INPUT_NAMES_FILE.
const EnvPrefix = "CENSUS"

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Prep      PrepConfig      `yaml:"prep" envconfig:"PREP"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig locates the two input files
type InputConfig struct {
	NamesFile string `yaml:"names_file" envconfig:"NAMES_FILE" validate:"required"`
	DataFile  string `yaml:"data_file" envconfig:"DATA_FILE" validate:"required"`
}

// OutputConfig controls what the run writes and where
type OutputConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Workbook  string `yaml:"workbook" envconfig:"WORKBOOK" validate:"omitempty,endswith=.xlsx"`
	WriteCSV  bool   `yaml:"write_csv" envconfig:"WRITE_CSV"`
	BOMPrefix bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// PrepConfig tunes schema loading and feature preparation
type PrepConfig struct {
	StrictCatalog       bool `yaml:"strict_catalog" envconfig:"STRICT_CATALOG"`
	CoerceUnknownIncome bool `yaml:"coerce_unknown_income" envconfig:"COERCE_UNKNOWN_INCOME"`
	Workers             int  `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"eq=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceFile     string  `yaml:"trace_file" envconfig:"TRACE_FILE" validate:"required_if=EnableTracing true"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string  `yaml:"metrics_file" envconfig:"METRICS_FILE" validate:"required_if=EnableMetrics true"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			NamesFile: "adult.names.txt",
			DataFile:  "adult.data.txt",
		},
		Output: OutputConfig{
			Dir:       "reports",
			Workbook:  "census_charts.xlsx",
			WriteCSV:  true,
			BOMPrefix: false,
		},
		Prep: PrepConfig{
			StrictCatalog:       true,
			CoerceUnknownIncome: false,
			Workers:             1,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/censusprep.log",
		},
		Telemetry: TelemetryConfig{
			Environment:   "development",
			EnableTracing: false,
			TraceFile:     "logs/traces.json",
			SampleRatio:   1.0,
			EnableMetrics: false,
			MetricsFile:   "reports/censusprep.prom",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then CENSUS_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no envconfig defaults, so unset variables leave the
	// file or default value in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks every section against its struct tags
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
