package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/echotools/efps-extract/extract"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "EFPS"

// Config holds all configuration for the application
type Config struct {
	// Global configuration
	Debug      bool   `yaml:"debug" mapstructure:"debug"`
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`
	ConfigFile string `yaml:"config" mapstructure:"config"`

	// Extraction configuration
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
}

// ExtractConfig holds configuration for a single extraction run
type ExtractConfig struct {
	// InputFile is read instead of standard input when set.
	InputFile  string `yaml:"input_file" mapstructure:"input_file"`
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
	Format     string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		LogFile:  "",
		Extract: ExtractConfig{
			OutputFile: extract.DefaultOutputFile,
			Format:     string(extract.FormatCSV),
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configFile string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Register defaults so AutomaticEnv can see every key during Unmarshal.
	v.SetDefault("debug", config.Debug)
	v.SetDefault("log_level", config.LogLevel)
	v.SetDefault("log_file", config.LogFile)
	v.SetDefault("extract.input_file", config.Extract.InputFile)
	v.SetDefault("extract.output_file", config.Extract.OutputFile)
	v.SetDefault("extract.format", config.Extract.Format)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.ConfigFile = configFile

	return config, nil
}

// NewLogger creates a zap logger based on the configuration.
// Logs go to stderr; stdout carries only the command's own output.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var level zapcore.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
	if c.Debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level.SetLevel(level)
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if c.LogFile != "" {
		cfg.OutputPaths = []string{c.LogFile, "stderr"}
		cfg.ErrorOutputPaths = []string{c.LogFile, "stderr"}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	return logger, nil
}

// OutputFormat resolves the configured output format.
func (c *Config) OutputFormat() (extract.Format, error) {
	return extract.ParseFormat(c.Extract.Format)
}

// ValidateExtractConfig validates extraction configuration
func (c *Config) ValidateExtractConfig() error {
	if c.Extract.OutputFile == "" {
		return fmt.Errorf("output file must be specified")
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Extract.InputFile != "" {
		info, err := os.Stat(c.Extract.InputFile)
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", c.Extract.InputFile)
		}
		if err != nil {
			return fmt.Errorf("cannot access input file: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("input is not a regular file: %s", c.Extract.InputFile)
		}
	}
	return nil
}
