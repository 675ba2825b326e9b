package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"rental-records/internal/config"
	"rental-records/internal/logging"
	"rental-records/internal/records"
)

type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *records.Catalog
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{
		Writer: cmd.ErrOrStderr(),
		Level:  level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openSession loads configuration and every record file. createMissing
// overrides the configured behaviour when set.
func openSession(cmd *cobra.Command, createMissing *bool) (*session, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dir, err := config.ValidateDataPath(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	create := cfg.CreateMissing
	if createMissing != nil {
		create = *createMissing
	}
	catalog := records.New(dir, records.Options{CreateMissing: create, Logger: logger})
	if _, err := catalog.LoadAll(); err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, catalog: catalog}, nil
}

func (s *session) table(entity string) (records.Table, error) {
	return s.catalog.Table(entity)
}

// backupPath puts a bare file name in the configured backup directory. A
// path with a directory part follows the same rules as the data directory.
func (s *session) backupPath(file string) (string, error) {
	base := filepath.Base(file)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid backup file %q", file)
	}
	dir := filepath.Dir(file)
	if dir == "." && !filepath.IsAbs(file) {
		dir = s.cfg.BackupDir
	}
	dir, err := config.ValidateDataPath(dir)
	if err != nil {
		return "", fmt.Errorf("invalid backup directory: %w", err)
	}
	return filepath.Join(dir, base), nil
}

func boolPtr(b bool) *bool { return &b }
