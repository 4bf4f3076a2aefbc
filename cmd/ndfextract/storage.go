package main

import (
	"fmt"

	"github.com/warnodata/extractor/internal/config"
	"github.com/warnodata/extractor/internal/storage"
	"github.com/warnodata/extractor/internal/storage/memory"
	pgstorage "github.com/warnodata/extractor/internal/storage/postgres"
	sqlitestorage "github.com/warnodata/extractor/internal/storage/sqlite"
)

func createStorageBackend(storageCfg config.StorageConfig, sess *session) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		sess.Logger.Info("Postgres storage backend selected")
		return pgstorage.New(pgstorage.Dependencies{
			LogManager: sess.Logs,
			DBLogger:   sess.DBLogger(),
		}), nil

	case "sqlite":
		backend, err := sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: storageCfg.SQLite.DumpInterval,
			DumpPath:     storageCfg.SQLite.Path,
		}, sess.Logs)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		sess.Logger.Info("SQLite storage backend selected", "path", storageCfg.SQLite.Path)
		return backend, nil

	case "memory", "":
		sess.Logger.Info("Memory storage backend selected", "outputDir", storageCfg.Memory.OutputDir)
		return memory.New(storageCfg.Memory), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}
