// Package cli wires configuration, logging and export sinks into the
// lifeevents commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"lifeevents/internal/amqp"
	"lifeevents/internal/config"
	"lifeevents/internal/drive"
	"lifeevents/internal/export"
	"lifeevents/internal/log"
)

// SetupLogger initializes structured logging from the configuration and sets
// it as the default logger. verbose forces debug level.
func SetupLogger(cfg *config.Config, verbose bool, out io.Writer) *log.Logger {
	level := log.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the optional YAML file and the environment,
// then validates the result.
func LoadAndValidateConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Mirrors holds the export mirrors opened from the configuration.
type Mirrors struct {
	List []export.Mirror
	AMQP *amqp.Client
}

// OpenMirrors connects every mirror the configuration enables. When withDir
// is set and EXPORT_DIR is configured, a directory copy is added as well.
func OpenMirrors(ctx context.Context, cfg *config.Config, logger *log.Logger, withDir bool) (*Mirrors, error) {
	m := &Mirrors{}

	if withDir && cfg.ExportDir != "" {
		m.List = append(m.List, export.Mirror{Name: "dir", Sink: export.NewDirSink(cfg.ExportDir)})
	}

	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPQueue, logger)
		if err != nil {
			return nil, fmt.Errorf("open AMQP mirror: %w", err)
		}
		m.AMQP = client
		m.List = append(m.List, export.Mirror{Name: "amqp", Sink: client})
	}

	if cfg.DriveEnabled() {
		client, err := drive.New(ctx, cfg.GoogleDriveFolderID, drive.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("open Google Drive mirror: %w", err)
		}
		m.List = append(m.List, export.Mirror{Name: "drive", Sink: client})
	}

	logger.Debug("Export mirrors ready", "mirrors", len(m.List))
	return m, nil
}

// Close releases the broker connection, if any.
func (m *Mirrors) Close() {
	if m == nil || m.AMQP == nil {
		return
	}
	_ = m.AMQP.Close()
}
