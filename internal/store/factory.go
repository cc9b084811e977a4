package store

import (
	"fmt"

	"autocare/internal/log"
)

// Backend selects the persistence implementation.
type Backend string

const (
	FileBackend   Backend = "file"
	SQLiteBackend Backend = "sqlite"
	MemoryBackend Backend = "memory"
)

func (b Backend) String() string { return string(b) }

func (b Backend) IsValid() bool {
	switch b {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds backend selection and its parameters.
type Config struct {
	Backend      Backend
	DataDir      string // file backend
	SQLiteDBPath string // sqlite backend
}

// Open creates the configured Store.
func Open(cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentStore})
	}

	switch cfg.Backend {
	case FileBackend:
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file store", "data_dir", cfg.DataDir)
		return s, nil

	case SQLiteBackend:
		s, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite store", "db_path", cfg.SQLiteDBPath)
		return s, nil

	case MemoryBackend:
		logger.Info("Initialized memory store")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("invalid store backend: %q", cfg.Backend)
	}
}
