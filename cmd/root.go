// Package cmd berisi perintah CLI inventara: serve (default), seed dan reconcile.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventara/config"
	"inventara/logging"
	"inventara/repository"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "inventara",
	Short: "Backend peminjaman aset instansi",
	Long: `inventara melayani API peminjaman tempat, ruangan, barang dan kendaraan.

Tanpa subcommand, inventara menjalankan HTTP server beserta job rekonsiliasi.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		logging.Init(logging.Config{Level: loaded.LogLevel, Format: loaded.LogFormat})
		cfg = loaded
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reconcileCmd)
}

// Execute menjalankan root command dan keluar dengan kode 1 bila gagal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB membuka koneksi Mongo, memastikan index, lalu menjalankan fn.
func withDB(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := config.ConnectDB(ctx, cfg); err != nil {
		return err
	}
	defer func() {
		if err := config.DisconnectDB(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("gagal menutup koneksi MongoDB")
		}
	}()

	if err := repository.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("gagal membuat index: %w", err)
	}
	return fn(ctx)
}
