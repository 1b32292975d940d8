package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/echotools/efps-extract/extract"
	"github.com/echotools/efps-extract/internal/config"
	"github.com/gofrs/uuid/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type application struct {
	configFile string
	flags      *viper.Viper
	cfg        *config.Config
	logger     *zap.Logger
}

func (a *application) bindFlags(cmd *cobra.Command) {
	a.flags = viper.New()
	a.flags.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	a.flags.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	a.flags.BindPFlag("log-file", cmd.PersistentFlags().Lookup("log-file"))
	a.flags.BindPFlags(cmd.Flags())
}

func (a *application) setup(cmd *cobra.Command, args []string) error {
	var err error
	a.cfg, err = config.LoadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with explicitly set flags
	if a.flags.IsSet("debug") {
		a.cfg.Debug = a.flags.GetBool("debug")
	}
	if a.flags.IsSet("log-level") {
		a.cfg.LogLevel = a.flags.GetString("log-level")
	}
	if a.flags.IsSet("log-file") {
		a.cfg.LogFile = a.flags.GetString("log-file")
	}
	if a.flags.IsSet("input") {
		a.cfg.Extract.InputFile = a.flags.GetString("input")
	}
	if a.flags.IsSet("output") {
		a.cfg.Extract.OutputFile = a.flags.GetString("output")
	}
	if a.flags.IsSet("format") {
		a.cfg.Extract.Format = a.flags.GetString("format")
	}

	a.logger, err = a.cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

func (a *application) runExtract(cmd *cobra.Command, args []string) error {
	if err := a.cfg.ValidateExtractConfig(); err != nil {
		return err
	}
	format, err := a.cfg.OutputFormat()
	if err != nil {
		return err
	}

	logger := a.logger.With(zap.String("run_id", uuid.Must(uuid.NewV4()).String()))

	var input io.Reader = cmd.InOrStdin()
	inputName := "stdin"
	if path := a.cfg.Extract.InputFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", path, err)
		}
		defer f.Close()
		input = f
		inputName = path
	}
	outputFile := a.cfg.Extract.OutputFile

	logger.Debug("Starting extraction",
		zap.String("input", inputName),
		zap.String("output", outputFile),
		zap.String("format", string(format)))

	startTime := time.Now()
	stats, err := extract.ExtractToFile(input, outputFile, extract.Options{
		Format: format,
		Logger: logger,
	})
	if err != nil {
		logger.Error("Extraction failed", zap.String("output", outputFile), zap.Error(err))
		return fmt.Errorf("extraction failed: %w", err)
	}

	logger.Info("Extraction completed successfully",
		zap.String("input", inputName),
		zap.String("output", outputFile),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("lines", stats.Lines),
		zap.Int("records", stats.Records),
		zap.Int("versions", stats.Versions),
		zap.Int("skipped_header", stats.SkippedHeader),
		zap.Int("skipped_synthetic", stats.SkippedSynthetic),
		zap.Int("skipped_no_version", stats.SkippedNoVersion))

	fmt.Fprintf(cmd.OutOrStdout(), "%s file created: %s\n", format.Label(), outputFile)
	return nil
}
