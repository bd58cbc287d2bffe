package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/services"
	"github.com/sjperalta/lumina-api/internal/storage"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operator tools for the Lumina ledger",
		Long: `ledgerctl works directly on the configured record store.

It reads the same environment as the API (STORE_DRIVER, STORE_PATH, DATABASE_URL,
REDIS_ADDRESS, ARCHIVE_PATH, ...), so exports and backups see exactly what the API sees.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWordsCmd(),
		newCurrencyCmd(),
		newExportCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newArchiveCmd(),
		newRecalculateCmd(),
	)
	return root
}

// openServices loads configuration and wires services over the configured store.
// The returned func closes the store.
func openServices(ctx context.Context) (*services.Services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// stdout carries command output
	logger.SetupWithWriter(cfg.Environment, os.Stderr)

	store, locker, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	archive, err := storage.NewLocalStorage(cfg.ArchivePath)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	svcs, err := services.NewServices(repository.NewRepositories(store, locker), nil, archive, cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return svcs, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}, nil
}
