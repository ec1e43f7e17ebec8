// Package jobs berisi pekerjaan latar: rekonsiliasi status peminjaman
// (checkItemsStatus) dan penjadwalnya.
package jobs

import (
	"context"
	"sync"
	"time"

	"inventara/logging"
	"inventara/metrics"
	"inventara/services"
)

// LoanReconciler dipenuhi oleh *services.LoanService.
type LoanReconciler interface {
	Reconcile(ctx context.Context) (services.ReconcileReport, error)
}

// Pinger memberi tahu endpoint eksternal bahwa job sedang berjalan.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Reconciler menjalankan checkItemsStatus dan memastikan tidak ada dua run
// yang berjalan bersamaan (scheduler dan endpoint admin).
type Reconciler struct {
	loans  LoanReconciler
	pinger Pinger
	mu     sync.Mutex
}

func NewReconciler(loans LoanReconciler, pinger Pinger) *Reconciler {
	return &Reconciler{loans: loans, pinger: pinger}
}

func (r *Reconciler) RunOnce(ctx context.Context) (services.ReconcileReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pinger != nil {
		if err := r.pinger.Ping(ctx); err != nil {
			logging.Warn().Err(err).Msg("status ping gagal")
		}
	}

	start := time.Now()
	report, err := r.loans.Reconcile(ctx)
	ev := logging.Info()
	result := "ok"
	if err != nil {
		result = "error"
		ev = logging.Error().Err(err)
	}
	metrics.ReconcileRuns.WithLabelValues(result).Inc()
	ev.Dur("took", time.Since(start)).Interface("report", report).Msg("rekonsiliasi peminjaman")
	return report, err
}
