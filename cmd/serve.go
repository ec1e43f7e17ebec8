package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inventara/config"
	"inventara/controllers"
	"inventara/jobs"
	"inventara/logging"
	"inventara/models"
	"inventara/repository"
	"inventara/supervisor"
)

const defaultAdminEmail = "admin@inventara.local"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Jalankan HTTP API dan scheduler rekonsiliasi",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withDB(ctx, func(ctx context.Context) error {
		if err := ensureDefaultAdmin(ctx, cfg); err != nil {
			return err
		}

		comp := buildComponents(cfg)
		app, err := newApp(cfg, comp)
		if err != nil {
			return err
		}

		tree := supervisor.NewTree(supervisor.DefaultTreeConfig())
		tree.AddAPIService(supervisor.NewHTTPService(app, ":"+cfg.Port, 10*time.Second))
		tree.AddJobService(jobs.NewScheduler(comp.reconciler, cfg.ReconcileInterval))

		logging.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server jalan")
		err = tree.Serve(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logging.Info().Msg("server berhenti")
		return nil
	})
}

// ensureDefaultAdmin membuat akun admin bila koleksi users masih kosong.
func ensureDefaultAdmin(ctx context.Context, cfg *config.Config) error {
	n, err := repository.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("gagal menghitung user: %w", err)
	}
	if n > 0 {
		return nil
	}

	hashed, err := controllers.HashPassword(cfg.DefaultPassword)
	if err != nil {
		return err
	}
	id, err := repository.GenerateID(ctx, "user")
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:        id,
		Name:      "Administrator",
		Email:     defaultAdminEmail,
		Role:      models.RoleAdmin,
		Division:  "Umum",
		Place:     "Kantor Pusat",
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if err := repository.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("gagal membuat admin default: %w", err)
	}
	logging.Warn().Str("email", admin.Email).Msg("admin default dibuat, segera ganti password")
	return nil
}
