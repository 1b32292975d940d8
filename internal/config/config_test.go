package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "benchmark_results.csv", cfg.Extract.OutputFile)
	assert.Equal(t, "csv", cfg.Extract.Format)
}

func TestLoadConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	configFile := filepath.Join(t.TempDir(), "efps.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
log_level: warn
extract:
  output_file: results.json
  format: json
`), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "results.json", cfg.Extract.OutputFile)
	assert.Equal(t, "json", cfg.Extract.Format)
	assert.Equal(t, configFile, cfg.ConfigFile)
}

func TestLoadConfigEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EFPS_DEBUG", "true")
	t.Setenv("EFPS_EXTRACT_OUTPUT_FILE", "from-env.csv")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "from-env.csv", cfg.Extract.OutputFile)
}

func TestLoadConfigDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	// Registered so the variable godotenv sets is removed after the test.
	t.Setenv("EFPS_EXTRACT_FORMAT", "")
	os.Unsetenv("EFPS_EXTRACT_FORMAT")
	require.NoError(t, os.WriteFile(".env", []byte("EFPS_EXTRACT_FORMAT=json\n"), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Extract.Format)
}

func TestLoadConfigBadFile(t *testing.T) {
	chdir(t, t.TempDir())

	configFile := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("extract: [unterminated"), 0o644))

	_, err := LoadConfig(configFile)
	assert.Error(t, err)
}

func TestValidateExtractConfig(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(inputFile, []byte("log"), 0o644))

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "existing input file", mutate: func(c *Config) { c.Extract.InputFile = inputFile }},
		{name: "json format", mutate: func(c *Config) { c.Extract.Format = "json" }},
		{name: "unknown format", mutate: func(c *Config) { c.Extract.Format = "xml" }, wantErr: true},
		{name: "missing input file", mutate: func(c *Config) { c.Extract.InputFile = filepath.Join(dir, "nope.log") }, wantErr: true},
		{name: "input is a directory", mutate: func(c *Config) { c.Extract.InputFile = dir }, wantErr: true},
		{name: "empty output", mutate: func(c *Config) { c.Extract.OutputFile = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.ValidateExtractConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		level zapcore.Level
	}{
		{name: "info default", cfg: Config{LogLevel: "info"}, level: zapcore.InfoLevel},
		{name: "warn", cfg: Config{LogLevel: "WARN"}, level: zapcore.WarnLevel},
		{name: "unknown falls back to info", cfg: Config{LogLevel: "loud"}, level: zapcore.InfoLevel},
		{name: "debug flag wins", cfg: Config{LogLevel: "error", Debug: true}, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := tt.cfg.NewLogger()
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestNewLoggerFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "efps.log")
	cfg := Config{LogLevel: "info", LogFile: logFile}

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
