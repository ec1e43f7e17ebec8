package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"inventara/logging"
	"inventara/metrics"
	"inventara/models"
)

const (
	DefaultPendingTimeout = 48 * time.Hour
	AutoCancelReason      = "Auto canceled after 2 days"

	actionLoanItems = "Loan items"
	actionApproved  = "Approved the loan request"
	actionRejected  = "Rejected the loan request"
	actionCanceled  = "Canceled the loan"
	actionReturned  = "Returned the loan"
)

// Actor adalah user yang sedang login, diambil dari klaim JWT.
type Actor struct {
	ID   string
	Role string
}

// privileged: admin dan headOffice boleh melihat serta memutus semua pengajuan.
func (a Actor) privileged() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleHeadOffice
}

// LoanService mengelola siklus hidup pengajuan peminjaman.
type LoanService struct {
	store          LoanStore
	notifier       Notifier
	now            func() time.Time
	pendingTimeout time.Duration
}

type LoanOption func(*LoanService)

// WithClock overrides time.Now, used by tests and the reconcile CLI.
func WithClock(now func() time.Time) LoanOption {
	return func(s *LoanService) { s.now = now }
}

func WithPendingTimeout(d time.Duration) LoanOption {
	return func(s *LoanService) {
		if d > 0 {
			s.pendingTimeout = d
		}
	}
}

func NewLoanService(store LoanStore, notifier Notifier, opts ...LoanOption) *LoanService {
	s := &LoanService{
		store:          store,
		notifier:       notifier,
		now:            time.Now,
		pendingTimeout: DefaultPendingTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReconcileReport merangkum hasil satu kali checkItemsStatus.
type ReconcileReport struct {
	Activated    int `json:"activated"`
	Overdue      int `json:"overdue"`
	AutoCanceled int `json:"auto_canceled"`
}

// ---------- draft & pengajuan ----------

func (s *LoanService) GetOrCreateDraft(ctx context.Context, actor Actor) (*models.DetailPeminjaman, error) {
	if d, err := s.findDraft(ctx, actor.ID); err != nil || d != nil {
		return d, err
	}

	id, err := s.store.NextID(ctx, "detail_peminjaman")
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &models.DetailPeminjaman{
		ID:        id,
		Status:    models.StatusDraft,
		UserID:    actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertDetail(ctx, d); err != nil {
		// draft dibuat request lain secara bersamaan
		if errors.Is(err, ErrDuplicate) {
			if existing, ferr := s.findDraft(ctx, actor.ID); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return d, nil
}

func (s *LoanService) findDraft(ctx context.Context, userID string) (*models.DetailPeminjaman, error) {
	drafts, err := s.store.FindDetails(ctx, DetailFilter{UserID: userID, Statuses: []models.LoanStatus{models.StatusDraft}})
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, nil
	}
	return &drafts[0], nil
}

// CreatePending membuat pengajuan langsung berstatus pending.
func (s *LoanService) CreatePending(ctx context.Context, actor Actor, in models.SubmitInput) (*models.DetailPeminjaman, error) {
	if err := checkSchedule(in); err != nil {
		return nil, err
	}

	id, err := s.store.NextID(ctx, "detail_peminjaman")
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &models.DetailPeminjaman{
		ID:        id,
		UserID:    actor.ID,
		CreatedAt: now,
	}
	applySubmit(d, in, now)

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.InsertDetail(ctx, d); err != nil {
			return err
		}
		return s.store.InsertLog(ctx, actor.ID, actionLoanItems)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues("new", string(models.StatusPending)).Inc()
	s.notifyRole(ctx, models.RoleHeadOffice, models.NotifPengajuan, d.ID)
	return d, nil
}

// Submit mengajukan draft (atau mengubah pengajuan pending) milik actor.
func (s *LoanService) Submit(ctx context.Context, actor Actor, in models.SubmitInput) (*models.DetailPeminjaman, error) {
	if err := checkSchedule(in); err != nil {
		return nil, err
	}
	d, err := s.loadOwned(ctx, actor, in.ID, false)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(d.Status, models.StatusPending) {
		return nil, transitionErr(d.Status, models.StatusPending)
	}
	if d.Status == models.StatusDraft {
		lines, err := s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}})
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: pengajuan belum memiliki item", ErrValidation)
		}
	}

	from := d.Status
	applySubmit(d, in, s.now())
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SaveDetail(ctx, d, from); err != nil {
			return err
		}
		return s.store.InsertLog(ctx, actor.ID, actionLoanItems)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues(string(from), string(models.StatusPending)).Inc()
	s.notifyRole(ctx, models.RoleHeadOffice, models.NotifPengajuan, d.ID)
	return d, nil
}

func checkSchedule(in models.SubmitInput) error {
	if in.BorrowedDate == nil {
		return fmt.Errorf("%w: borrowed_date wajib diisi", ErrValidation)
	}
	if in.EstimatedTime != nil && !in.EstimatedTime.After(*in.BorrowedDate) {
		return fmt.Errorf("%w: estimated_time harus setelah borrowed_date", ErrValidation)
	}
	return nil
}

func applySubmit(d *models.DetailPeminjaman, in models.SubmitInput, now time.Time) {
	d.Status = models.StatusPending
	d.BorrowedDate = in.BorrowedDate
	d.EstimatedTime = in.EstimatedTime
	d.Objective = in.Objective
	d.Destination = in.Destination
	d.Passenger = in.Passenger
	// hitungan auto-cancel dimulai dari pengajuan terakhir
	d.SubmittedAt = &now
	d.UpdatedAt = now
}

// ---------- item peminjaman ----------

// AddLine menambahkan satu resource ke pengajuan draft/pending milik actor.
func (s *LoanService) AddLine(ctx context.Context, actor Actor, in models.PeminjamanInput) (*models.Peminjaman, error) {
	ref, err := lineRef(in)
	if err != nil {
		return nil, err
	}
	d, err := s.loadOwned(ctx, actor, in.DetailPeminjamanID, false)
	if err != nil {
		return nil, err
	}
	if d.Status != models.StatusDraft && d.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: pengajuan berstatus %s tidak bisa diubah", ErrInvalidTransition, d.Status)
	}

	ok, err := s.store.ResourceExists(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, ref.Category, ref.ID)
	}

	existing, err := s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}, Resource: &ref})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s sudah ada di pengajuan ini", ErrDuplicate, ref.ID)
	}

	id, err := s.store.NextID(ctx, "peminjaman")
	if err != nil {
		return nil, err
	}
	p := &models.Peminjaman{
		ID:                 id,
		Category:           ref.Category,
		DetailPeminjamanID: d.ID,
		UserID:             actor.ID,
		CreatedAt:          s.now(),
	}
	switch ref.Category {
	case models.CategoryBarang:
		p.BarangID = ref.ID
	case models.CategoryKendaraan:
		p.KendaraanID = ref.ID
	case models.CategoryRuangan:
		p.RuanganID = ref.ID
	}
	if err := s.store.InsertLine(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// lineRef memastikan tepat satu referensi resource terisi dan sesuai category.
func lineRef(in models.PeminjamanInput) (models.ResourceRef, error) {
	refs := map[models.Category]string{
		models.CategoryBarang:    strings.TrimSpace(in.BarangID),
		models.CategoryKendaraan: strings.TrimSpace(in.KendaraanID),
		models.CategoryRuangan:   strings.TrimSpace(in.RuanganID),
	}
	if !in.Category.Valid() {
		return models.ResourceRef{}, fmt.Errorf("%w: category %q tidak dikenal", ErrValidation, in.Category)
	}
	for cat, id := range refs {
		if cat != in.Category && id != "" {
			return models.ResourceRef{}, fmt.Errorf("%w: %s_id tidak sesuai dengan category %s", ErrValidation, cat, in.Category)
		}
	}
	id := refs[in.Category]
	if id == "" {
		return models.ResourceRef{}, fmt.Errorf("%w: %s_id wajib diisi", ErrValidation, in.Category)
	}
	return models.ResourceRef{Category: in.Category, ID: id}, nil
}

func (s *LoanService) RemoveLine(ctx context.Context, actor Actor, lineID string) error {
	line, err := s.store.GetLine(ctx, lineID)
	if err != nil {
		return err
	}
	if line.UserID != actor.ID {
		return ErrNotFound
	}
	d, err := s.store.GetDetail(ctx, line.DetailPeminjamanID)
	if err != nil {
		return err
	}
	if d.Status != models.StatusDraft && d.Status != models.StatusPending {
		return fmt.Errorf("%w: pengajuan berstatus %s tidak bisa diubah", ErrInvalidTransition, d.Status)
	}
	return s.store.DeleteLine(ctx, lineID)
}

// ---------- keputusan headOffice ----------

// Approve menyetujui pengajuan pending. Ditolak dengan ErrConflict bila salah
// satu resource sudah dipegang pengajuan approved lain di rentang waktu yang
// beririsan.
func (s *LoanService) Approve(ctx context.Context, actor Actor, id string) (*models.DetailPeminjaman, error) {
	if !actor.privileged() {
		return nil, ErrForbidden
	}
	d, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(d.Status, models.StatusApproved) {
		return nil, transitionErr(d.Status, models.StatusApproved)
	}

	now := s.now()
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		lines, err := s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}})
		if err != nil {
			return err
		}
		if err := s.checkConflicts(ctx, d, lines); err != nil {
			return err
		}

		d.Status = models.StatusApproved
		d.UpdatedAt = now
		if err := s.store.SaveDetail(ctx, d, models.StatusPending); err != nil {
			return err
		}
		// tanggal pinjam sudah lewat, langsung tandai dipakai
		if d.BorrowedDate != nil && !d.BorrowedDate.After(now) {
			for _, l := range lines {
				if _, err := s.store.SetResourceStatus(ctx, l.Ref(), true); err != nil {
					return err
				}
			}
		}
		return s.store.InsertLog(ctx, actor.ID, actionApproved)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues(string(models.StatusPending), string(models.StatusApproved)).Inc()
	s.notifyUser(ctx, d.UserID, models.NotifDisetujui, d.ID)
	return d, nil
}

func (s *LoanService) checkConflicts(ctx context.Context, d *models.DetailPeminjaman, lines []models.Peminjaman) error {
	for _, l := range lines {
		ref := l.Ref()
		ids, err := s.otherDetailIDs(ctx, ref, d.ID)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}
		approved, err := s.store.FindDetails(ctx, DetailFilter{IDs: ids, Statuses: []models.LoanStatus{models.StatusApproved}})
		if err != nil {
			return err
		}
		for _, a := range approved {
			if d.Overlaps(a) {
				return fmt.Errorf("%w: %s %s sudah dipinjam pada pengajuan %s", ErrConflict, ref.Category, ref.ID, a.ID)
			}
		}
	}
	return nil
}

// otherDetailIDs mengembalikan id pengajuan lain yang memuat ref.
func (s *LoanService) otherDetailIDs(ctx context.Context, ref models.ResourceRef, detailID string) ([]string, error) {
	others, err := s.store.FindLines(ctx, LineFilter{Resource: &ref})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(others))
	for _, o := range others {
		if o.DetailPeminjamanID != detailID {
			ids = append(ids, o.DetailPeminjamanID)
		}
	}
	return ids, nil
}

func (s *LoanService) Reject(ctx context.Context, actor Actor, id, reason string) (*models.DetailPeminjaman, error) {
	if !actor.privileged() {
		return nil, ErrForbidden
	}
	d, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(d.Status, models.StatusRejected) {
		return nil, transitionErr(d.Status, models.StatusRejected)
	}

	d.Status = models.StatusRejected
	d.RejectedReason = strings.TrimSpace(reason)
	d.UpdatedAt = s.now()
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SaveDetail(ctx, d, models.StatusPending); err != nil {
			return err
		}
		return s.store.InsertLog(ctx, actor.ID, actionRejected)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues(string(models.StatusPending), string(models.StatusRejected)).Inc()
	s.notifyUser(ctx, d.UserID, models.NotifDitolak, d.ID)
	return d, nil
}

// ---------- pembatalan & pengembalian ----------

// Cancel membatalkan pengajuan milik actor (admin boleh membatalkan milik siapa saja).
func (s *LoanService) Cancel(ctx context.Context, actor Actor, id, reason string) (*models.DetailPeminjaman, error) {
	d, err := s.loadOwned(ctx, actor, id, actor.Role == models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	from := d.Status
	if !models.CanTransition(from, models.StatusCanceled) {
		return nil, transitionErr(from, models.StatusCanceled)
	}

	now := s.now()
	d.Status = models.StatusCanceled
	d.CanceledReason = strings.TrimSpace(reason)
	d.UpdatedAt = now
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SaveDetail(ctx, d, from); err != nil {
			return err
		}
		// hanya pengajuan approved yang bisa memegang flag resource
		if from == models.StatusApproved {
			if err := s.releaseResources(ctx, d.ID, now); err != nil {
				return err
			}
		}
		return s.store.InsertLog(ctx, actor.ID, actionCanceled)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues(string(from), string(models.StatusCanceled)).Inc()
	if from != models.StatusDraft {
		s.notifyRole(ctx, models.RoleHeadOffice, models.NotifDibatalkan, d.ID)
	}
	return d, nil
}

// Return menandai pengajuan approved sudah dikembalikan.
func (s *LoanService) Return(ctx context.Context, actor Actor, id string) (*models.DetailPeminjaman, error) {
	d, err := s.loadOwned(ctx, actor, id, actor.Role == models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(d.Status, models.StatusReturned) {
		return nil, transitionErr(d.Status, models.StatusReturned)
	}

	now := s.now()
	d.Status = models.StatusReturned
	d.ReturnDate = &now
	d.UpdatedAt = now
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SaveDetail(ctx, d, models.StatusApproved); err != nil {
			return err
		}
		if err := s.releaseResources(ctx, d.ID, now); err != nil {
			return err
		}
		return s.store.InsertLog(ctx, actor.ID, actionReturned)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoanTransitions.WithLabelValues(string(models.StatusApproved), string(models.StatusReturned)).Inc()
	s.notifyRole(ctx, models.RoleHeadOffice, models.NotifDikembalikan, d.ID)
	return d, nil
}

// releaseResources mengosongkan flag resource milik detailID. Resource yang
// masih dipegang pengajuan approved lain yang sudah berjalan tetap dipakai.
func (s *LoanService) releaseResources(ctx context.Context, detailID string, now time.Time) error {
	lines, err := s.store.FindLines(ctx, LineFilter{DetailIDs: []string{detailID}})
	if err != nil {
		return err
	}
	for _, l := range lines {
		ref := l.Ref()
		held, err := s.heldElsewhere(ctx, ref, detailID, now)
		if err != nil {
			return err
		}
		if held {
			continue
		}
		if _, err := s.store.SetResourceStatus(ctx, ref, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *LoanService) heldElsewhere(ctx context.Context, ref models.ResourceRef, detailID string, now time.Time) (bool, error) {
	ids, err := s.otherDetailIDs(ctx, ref, detailID)
	if err != nil || len(ids) == 0 {
		return false, err
	}
	active, err := s.store.FindDetails(ctx, DetailFilter{
		IDs:           ids,
		Statuses:      []models.LoanStatus{models.StatusApproved},
		BorrowedUntil: &now,
	})
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

// ---------- checkItemsStatus ----------

// Reconcile menjalankan tiga langkah pengecekan status. Error per pengajuan
// dicatat lalu dilanjutkan; semuanya dikembalikan bersama di akhir.
func (s *LoanService) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var (
		report ReconcileReport
		errs   []error
	)
	now := s.now()

	// 1. tanggal pinjam sudah tiba
	active, err := s.store.FindDetails(ctx, DetailFilter{
		Statuses:      []models.LoanStatus{models.StatusApproved},
		BorrowedUntil: &now,
	})
	if err != nil {
		return report, fmt.Errorf("cari pengajuan aktif: %w", err)
	}
	for _, d := range active {
		changed := false
		err := s.store.RunInTx(ctx, func(ctx context.Context) error {
			changed = false
			// bisa saja sudah dikembalikan/dibatalkan sejak dicari
			cur, err := s.store.GetDetail(ctx, d.ID)
			if err != nil {
				return err
			}
			if cur.Status != models.StatusApproved {
				return nil
			}
			lines, err := s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}})
			if err != nil {
				return err
			}
			for _, l := range lines {
				c, err := s.store.SetResourceStatus(ctx, l.Ref(), true)
				if err != nil {
					return err
				}
				changed = changed || c
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("aktivasi %s: %w", d.ID, err))
			continue
		}
		if changed {
			report.Activated++
			s.notifyUser(ctx, d.UserID, models.NotifBerlangsung, d.ID)
		}
	}

	// 2. lewat estimasi pengembalian, diberi tahu sekali saja
	notNotified := false
	overdue, err := s.store.FindDetails(ctx, DetailFilter{
		Statuses:        []models.LoanStatus{models.StatusApproved},
		EstimatedUntil:  &now,
		OverdueNotified: &notNotified,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("cari pengajuan jatuh tempo: %w", err))
	}
	for i := range overdue {
		d := &overdue[i]
		d.OverdueNotified = true
		d.UpdatedAt = now
		if err := s.store.SaveDetail(ctx, d, models.StatusApproved); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			errs = append(errs, fmt.Errorf("jatuh tempo %s: %w", d.ID, err))
			continue
		}
		report.Overdue++
		s.notifyUser(ctx, d.UserID, models.NotifJatuhTempo, d.ID)
	}

	// 3. pending terlalu lama
	cutoff := now.Add(-s.pendingTimeout)
	stale, err := s.store.FindDetails(ctx, DetailFilter{
		Statuses:        []models.LoanStatus{models.StatusPending},
		SubmittedBefore: &cutoff,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("cari pengajuan pending: %w", err))
	}
	for i := range stale {
		d := &stale[i]
		d.Status = models.StatusCanceled
		d.CanceledReason = AutoCancelReason
		d.UpdatedAt = now
		if err := s.store.SaveDetail(ctx, d, models.StatusPending); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			errs = append(errs, fmt.Errorf("auto cancel %s: %w", d.ID, err))
			continue
		}
		report.AutoCanceled++
		metrics.LoanTransitions.WithLabelValues(string(models.StatusPending), string(models.StatusCanceled)).Inc()
		s.notifyUser(ctx, d.UserID, models.NotifOtomatisBatal, d.ID)
	}

	metrics.ReconcileAffected.WithLabelValues("activated").Add(float64(report.Activated))
	metrics.ReconcileAffected.WithLabelValues("overdue").Add(float64(report.Overdue))
	metrics.ReconcileAffected.WithLabelValues("auto_canceled").Add(float64(report.AutoCanceled))

	logging.Info().
		Int("activated", report.Activated).
		Int("overdue", report.Overdue).
		Int("auto_canceled", report.AutoCanceled).
		Int("errors", len(errs)).
		Msg("checkItemsStatus selesai")

	return report, errors.Join(errs...)
}

// ---------- query ----------

// ListRequests: admin dan headOffice melihat semua pengajuan non-draft, user
// hanya miliknya.
func (s *LoanService) ListRequests(ctx context.Context, actor Actor) ([]models.DetailPeminjaman, error) {
	f := DetailFilter{Statuses: models.SubmittedStatuses}
	if !actor.privileged() {
		f.UserID = actor.ID
	}
	return s.store.FindDetails(ctx, f)
}

func (s *LoanService) GetRequest(ctx context.Context, actor Actor, id string) (*models.DetailPeminjaman, error) {
	return s.loadOwned(ctx, actor, id, actor.privileged())
}

func (s *LoanService) LinesOfRequest(ctx context.Context, actor Actor, id string) ([]models.Peminjaman, error) {
	d, err := s.GetRequest(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}})
}

// HistoryByResource mengembalikan semua pengajuan non-draft yang memuat resource.
func (s *LoanService) HistoryByResource(ctx context.Context, ref models.ResourceRef) ([]models.DetailPeminjaman, error) {
	lines, err := s.store.FindLines(ctx, LineFilter{Resource: &ref})
	if err != nil {
		return nil, err
	}
	ids := detailIDs(lines)
	if len(ids) == 0 {
		return []models.DetailPeminjaman{}, nil
	}
	return s.store.FindDetails(ctx, DetailFilter{IDs: ids, Statuses: models.SubmittedStatuses})
}

// ScheduleForRequest mengumpulkan, untuk setiap resource di pengajuan, semua
// pengajuan lain yang memakainya. Hasil unik dan urut borrowed_date.
func (s *LoanService) ScheduleForRequest(ctx context.Context, actor Actor, id string) ([]models.DetailPeminjaman, error) {
	lines, err := s.LinesOfRequest(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	seen := map[models.ResourceRef]bool{}
	var all []models.Peminjaman
	for _, l := range lines {
		ref := l.Ref()
		if seen[ref] {
			continue
		}
		seen[ref] = true
		related, err := s.store.FindLines(ctx, LineFilter{Resource: &ref})
		if err != nil {
			return nil, err
		}
		all = append(all, related...)
	}

	ids := detailIDs(all)
	if len(ids) == 0 {
		return []models.DetailPeminjaman{}, nil
	}
	details, err := s.store.FindDetails(ctx, DetailFilter{IDs: ids, Statuses: models.SubmittedStatuses})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i].BorrowedDate, details[j].BorrowedDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
	return details, nil
}

func (s *LoanService) OwnLines(ctx context.Context, actor Actor) ([]models.Peminjaman, error) {
	return s.store.FindLines(ctx, LineFilter{UserID: actor.ID})
}

func (s *LoanService) OwnLine(ctx context.Context, actor Actor, id string) (*models.Peminjaman, error) {
	line, err := s.store.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if line.UserID != actor.ID && !actor.privileged() {
		return nil, ErrNotFound
	}
	return line, nil
}

// DraftLines mengembalikan isi keranjang (draft) milik actor.
func (s *LoanService) DraftLines(ctx context.Context, actor Actor) ([]models.Peminjaman, error) {
	d, err := s.findDraft(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []models.Peminjaman{}, nil
	}
	return s.store.FindLines(ctx, LineFilter{DetailIDs: []string{d.ID}})
}

func (s *LoanService) LatestLineByResource(ctx context.Context, ref models.ResourceRef) (*models.Peminjaman, error) {
	lines, err := s.store.FindLines(ctx, LineFilter{Resource: &ref})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	latest := lines[0]
	for _, l := range lines[1:] {
		if l.CreatedAt.After(latest.CreatedAt) {
			latest = l
		}
	}
	return &latest, nil
}

// ---------- helper ----------

// loadOwned mengambil pengajuan milik actor. Milik user lain dianggap tidak
// ditemukan kecuali allowOthers.
func (s *LoanService) loadOwned(ctx context.Context, actor Actor, id string, allowOthers bool) (*models.DetailPeminjaman, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id wajib diisi", ErrValidation)
	}
	d, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != actor.ID && !allowOthers {
		return nil, ErrNotFound
	}
	return d, nil
}

func transitionErr(from, to models.LoanStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func detailIDs(lines []models.Peminjaman) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.DetailPeminjamanID] {
			seen[l.DetailPeminjamanID] = true
			ids = append(ids, l.DetailPeminjamanID)
		}
	}
	return ids
}

// Notifikasi dikirim setelah commit; kegagalannya tidak membatalkan transaksi.
func (s *LoanService) notifyUser(ctx context.Context, userID string, cat models.NotifikasiCategory, detailID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyUser(ctx, userID, cat, detailID); err != nil {
		logging.Warn().Err(err).Str("user_id", userID).Str("category", string(cat)).Msg("gagal mengirim notifikasi")
	}
}

func (s *LoanService) notifyRole(ctx context.Context, role string, cat models.NotifikasiCategory, detailID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRole(ctx, role, cat, detailID); err != nil {
		logging.Warn().Err(err).Str("role", role).Str("category", string(cat)).Msg("gagal mengirim notifikasi")
	}
}
