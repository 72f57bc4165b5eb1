// Package main is the entry point for the battle CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

var (
	cfg *config.Config

	storeFlag    string
	logLevelFlag string
	catalogFlag  string
	archiveFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "battle",
	Short: "Deterministic turn-based battle engine",
	Long: `battle runs seeded two-sided battles and keeps their snapshots in memory,
Redis or SQLite. Settings come from BATTLE_* environment variables; flags override them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeFlag, "store", "", "snapshot store: memory, redis or sqlite")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&catalogFlag, "catalog", "", "YAML catalog file (default: bundled tables)")
	flags.StringVar(&archiveFlag, "archive", "", "SQLite file receiving finished battles")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(finishCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	if storeFlag != "" {
		loaded.Store = storeFlag
	}
	if logLevelFlag != "" {
		loaded.LogLevel = logLevelFlag
	}
	if catalogFlag != "" {
		loaded.CatalogPath = catalogFlag
	}
	if archiveFlag != "" {
		loaded.ArchivePath = archiveFlag
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(loaded.Logger(cmd.ErrOrStderr()))
	cfg = loaded
	return nil
}
