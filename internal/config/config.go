// =============================================================================
// EDI to CSV Converter - Configuration Module
// =============================================================================
//
// Loads and manages all configuration:
//   1. Main config (config.yaml): directories, logging, output naming,
//      concurrency. Every field can be overridden through the environment
//      with an EDICONV_ prefix (e.g. EDICONV_INPUT_DIR).
//   2. Provider configs (configs/*.yaml): per-provider file matching,
//      input encoding, decoder strictness and output formats. New providers
//      are added by dropping in a YAML file, no code change.
//
// Defaults are applied on load and the result is validated before use.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment overrides of the main config.
const envPrefix = "ediconv"

var validate = validator.New()

// =============================================================================
// MAIN CONFIGURATION
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// InputDir is scanned for raw EDI exports to process.
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`

	// OutputDir receives the generated CSV/XLSX files.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	// InputArchiveDir receives input files after successful processing.
	InputArchiveDir string `yaml:"input_archive_dir" envconfig:"INPUT_ARCHIVE_DIR"`

	// ConfigsDir contains the per-provider YAML configurations.
	ConfigsDir string `yaml:"configs_dir" envconfig:"CONFIGS_DIR"`

	// LogLevel controls logging verbosity: debug, info, warn or error.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"omitempty,oneof=text json"`

	// OutputNameFormat names generated files. Placeholders:
	//   {uuid}      random UUID
	//   {timestamp} YYYYMMDD_HHMMSS
	//   {provider}  provider code
	//   {ext}       output extension (csv, xlsx)
	OutputNameFormat string `yaml:"output_name_format" envconfig:"OUTPUT_NAME_FORMAT"`

	// MaxConcurrency bounds the number of files processed at once.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gte=0,lte=64"`

	// ContinueOnError keeps the batch running when one file fails.
	ContinueOnError bool `yaml:"continue_on_error" envconfig:"CONTINUE_ON_ERROR"`
}

// LoadMainConfig reads, defaults, environment-overrides and validates the
// main configuration. A missing file is not an error: the defaults apply, so
// the tool runs out of the box against ./input and ./output.
func LoadMainConfig(path string) (*MainConfig, error) {
	var cfg MainConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyMainConfigDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyMainConfigDefaults(cfg *MainConfig) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.ConfigsDir == "" {
		cfg.ConfigsDir = "./configs"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{provider}_{timestamp}_{uuid}.{ext}"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
}

// =============================================================================
// PROVIDER CONFIGURATION
// =============================================================================

// ProviderConfig holds the configuration for one EDI provider.
type ProviderConfig struct {
	// ProviderName is the human-readable name used in logs.
	ProviderName string `yaml:"provider_name" validate:"required"`

	// ProviderCode is a short code used in output file names. Defaults to
	// the config file name.
	ProviderCode string `yaml:"provider_code"`

	// FileMatchingPatterns are glob patterns matched against input file
	// names to route files to this provider.
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// Encoding of the provider's exports. Unknown bytes never fail a decode;
	// utf-8 input has invalid sequences dropped.
	Encoding string `yaml:"encoding" validate:"omitempty,oneof=utf-8 windows-1252 iso-8859-1"`

	// StrictMode enables anomaly collection during decoding. Output is
	// unchanged; anomalies are logged and counted.
	StrictMode bool `yaml:"strict_mode"`

	// Output selects the rendered formats.
	Output OutputSettings `yaml:"output"`
}

// OutputSettings selects how decoded records are rendered.
type OutputSettings struct {
	// Formats lists the outputs to produce: csv and/or xlsx.
	Formats []string `yaml:"formats" validate:"omitempty,dive,oneof=csv xlsx"`

	// SheetName names the worksheet for xlsx output.
	SheetName string `yaml:"sheet_name"`
}

// LoadProviderConfigs loads every provider configuration in dir (*.yaml and
// *.yml), keyed by provider code.
func LoadProviderConfigs(dir string) (map[string]*ProviderConfig, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list provider configs: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list provider configs: %w", err)
	}
	files = append(files, ymlFiles...)

	configs := make(map[string]*ProviderConfig)
	for _, file := range files {
		cfg, err := loadProviderConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		configs[cfg.ProviderCode] = cfg
	}
	return configs, nil
}

func loadProviderConfig(path string) (*ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var cfg ProviderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applyProviderConfigDefaults(&cfg, path)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid provider config: %w", err)
	}
	return &cfg, nil
}

func applyProviderConfigDefaults(cfg *ProviderConfig, path string) {
	if cfg.ProviderCode == "" {
		base := filepath.Base(path)
		cfg.ProviderCode = base[:len(base)-len(filepath.Ext(base))]
	}
	if len(cfg.FileMatchingPatterns) == 0 {
		cfg.FileMatchingPatterns = []string{"*.edi", "*.txt", "*.dat"}
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"csv"}
	}
}
