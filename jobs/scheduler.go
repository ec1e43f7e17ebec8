package jobs

import (
	"context"
	"time"

	"inventara/logging"
	"inventara/services"
)

// Runner dipenuhi oleh *Reconciler.
type Runner interface {
	RunOnce(ctx context.Context) (services.ReconcileReport, error)
}

// Scheduler menjalankan Runner sekali saat start lalu setiap interval.
// Mengimplementasikan suture.Service.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	name     string
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	return &Scheduler{runner: runner, interval: interval, name: "reconcile-scheduler"}
}

// Serve tidak pernah mengembalikan error run: kegagalan sudah dicatat oleh
// Reconciler dan run berikutnya tetap dijadwalkan.
func (s *Scheduler) Serve(ctx context.Context) error {
	logging.Info().Dur("interval", s.interval).Msg("scheduler rekonsiliasi berjalan")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	_, _ = s.runner.RunOnce(ctx)
}

func (s *Scheduler) String() string {
	return s.name
}
