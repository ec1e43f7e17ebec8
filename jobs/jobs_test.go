package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventara/services"
)

type fakeLoans struct {
	mu      sync.Mutex
	calls   int
	running int32
	overlap bool
	err     error
}

func (f *fakeLoans) Reconcile(ctx context.Context) (services.ReconcileReport, error) {
	if atomic.AddInt32(&f.running, 1) > 1 {
		f.overlap = true
	}
	defer atomic.AddInt32(&f.running, -1)
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return services.ReconcileReport{Activated: 1}, f.err
}

func (f *fakeLoans) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestReconciler_RunOnce(t *testing.T) {
	loans := &fakeLoans{}
	r := NewReconciler(loans, fakePinger{err: errors.New("status mati")})

	report, err := r.RunOnce(context.Background())
	require.NoError(t, err, "ping gagal tidak menggagalkan run")
	assert.Equal(t, 1, report.Activated)

	loans.err = errors.New("mongo timeout")
	_, err = r.RunOnce(context.Background())
	assert.ErrorContains(t, err, "mongo timeout")
}

func TestReconciler_NoOverlap(t *testing.T) {
	loans := &fakeLoans{}
	r := NewReconciler(loans, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.RunOnce(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, loans.Calls())
	assert.False(t, loans.overlap)
}

func TestScheduler_RunsOnStartAndOnTick(t *testing.T) {
	loans := &fakeLoans{}
	s := NewScheduler(NewReconciler(loans, nil), 20*time.Millisecond)
	assert.Equal(t, "reconcile-scheduler", s.String())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	assert.Eventually(t, func() bool { return loans.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler tidak berhenti setelah context dibatalkan")
	}
}

func TestStatusPinger(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewStatusPinger(srv.URL+"/up", srv.Client()).Ping(context.Background()))

	down := NewStatusPinger(srv.URL+"/down", srv.Client())
	for i := 0; i < 5; i++ {
		assert.ErrorContains(t, down.Ping(context.Background()), "503")
	}
	before := atomic.LoadInt32(&hits)
	assert.Error(t, down.Ping(context.Background()))
	assert.Equal(t, before, atomic.LoadInt32(&hits), "breaker terbuka, request tidak dikirim")
}
