package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventara/models"
	"inventara/services"
	"inventara/services/servicetest"
)

var (
	adminActor = services.Actor{ID: "USR001", Role: models.RoleAdmin}
	headActor  = services.Actor{ID: "USR002", Role: models.RoleHeadOffice}
	borrower   = services.Actor{ID: "USR003", Role: models.RoleUser}
	otherUser  = services.Actor{ID: "USR004", Role: models.RoleUser}

	knd001 = models.ResourceRef{Category: models.CategoryKendaraan, ID: "KND001"}
	brg001 = models.ResourceRef{Category: models.CategoryBarang, ID: "BRG001"}
	rgn001 = models.ResourceRef{Category: models.CategoryRuangan, ID: "RGN001"}
)

type fixture struct {
	store  *servicetest.MemStore
	sender *servicetest.RecordingSender
	svc    *services.LoanService
	base   time.Time
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := servicetest.NewMemStore()
	st.Users[adminActor.ID] = models.RoleAdmin
	st.Users[headActor.ID] = models.RoleHeadOffice
	st.Users[borrower.ID] = models.RoleUser
	st.Users[otherUser.ID] = models.RoleUser
	for _, ref := range []models.ResourceRef{knd001, brg001, rgn001} {
		st.Resources[ref] = false
	}
	st.Devices = append(st.Devices, models.Perangkat{ID: "PRK001", DeviceToken: "tok-borrower", UserID: borrower.ID})

	f := &fixture{
		store:  st,
		sender: &servicetest.RecordingSender{},
		base:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
	f.now = f.base
	f.svc = services.NewLoanService(st, services.NewNotificationService(st, f.sender), services.WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) at(d time.Duration) *time.Time {
	v := f.base.Add(d)
	return &v
}

func lineInput(detailID string, ref models.ResourceRef) models.PeminjamanInput {
	in := models.PeminjamanInput{Category: ref.Category, DetailPeminjamanID: detailID}
	switch ref.Category {
	case models.CategoryBarang:
		in.BarangID = ref.ID
	case models.CategoryKendaraan:
		in.KendaraanID = ref.ID
	case models.CategoryRuangan:
		in.RuanganID = ref.ID
	}
	return in
}

// submitted membuat draft berisi ref lalu mengajukannya.
func (f *fixture) submitted(t *testing.T, actor services.Actor, ref models.ResourceRef, start, end *time.Time) *models.DetailPeminjaman {
	t.Helper()
	ctx := context.Background()
	draft, err := f.svc.GetOrCreateDraft(ctx, actor)
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, actor, lineInput(draft.ID, ref))
	require.NoError(t, err)
	d, err := f.svc.Submit(ctx, actor, models.SubmitInput{
		ID:            draft.ID,
		BorrowedDate:  start,
		EstimatedTime: end,
		Objective:     "rapat cabang",
	})
	require.NoError(t, err)
	return d
}

func TestGetOrCreateDraft_ReusesDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)
	b, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.StatusDraft, a.Status)

	c, err := f.svc.GetOrCreateDraft(ctx, otherUser)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, borrower, models.SubmitInput{ID: draft.ID, BorrowedDate: f.at(time.Hour)})
	assert.ErrorIs(t, err, services.ErrValidation, "draft tanpa item")

	_, err = f.svc.AddLine(ctx, borrower, lineInput(draft.ID, knd001))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, borrower, models.SubmitInput{ID: draft.ID})
	assert.ErrorIs(t, err, services.ErrValidation, "borrowed_date wajib")

	_, err = f.svc.Submit(ctx, borrower, models.SubmitInput{ID: draft.ID, BorrowedDate: f.at(2 * time.Hour), EstimatedTime: f.at(time.Hour)})
	assert.ErrorIs(t, err, services.ErrValidation, "estimasi sebelum tanggal pinjam")

	_, err = f.svc.Submit(ctx, otherUser, models.SubmitInput{ID: draft.ID, BorrowedDate: f.at(time.Hour)})
	assert.ErrorIs(t, err, services.ErrNotFound, "draft milik user lain")
}

func TestSubmit_NotifiesHeadOfficeAndLogs(t *testing.T) {
	f := newFixture(t)
	d := f.submitted(t, borrower, knd001, f.at(time.Hour), f.at(3*time.Hour))

	assert.Equal(t, models.StatusPending, d.Status)
	require.NotNil(t, d.SubmittedAt)
	assert.Equal(t, []models.NotifikasiCategory{models.NotifPengajuan}, f.store.CategoriesFor(headActor.ID))
	require.Len(t, f.store.Logs, 1)
	assert.Equal(t, "Loan items", f.store.Logs[0].Action)

	// pending -> pending boleh, misalnya ubah tujuan
	again, err := f.svc.Submit(context.Background(), borrower, models.SubmitInput{
		ID: d.ID, BorrowedDate: f.at(time.Hour), Destination: "Bandung",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", again.Destination)
}

func TestCreatePending(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePending(context.Background(), borrower, models.SubmitInput{Objective: "x"})
	assert.ErrorIs(t, err, services.ErrValidation)

	d, err := f.svc.CreatePending(context.Background(), borrower, models.SubmitInput{BorrowedDate: f.at(time.Hour), Objective: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, d.Status)
	assert.Equal(t, borrower.ID, d.UserID)
	assert.Contains(t, f.store.CategoriesFor(headActor.ID), models.NotifPengajuan)
}

func TestAddLine_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)

	line, err := f.svc.AddLine(ctx, borrower, lineInput(draft.ID, knd001))
	require.NoError(t, err)
	assert.Equal(t, "KND001", line.KendaraanID)
	assert.Empty(t, line.BarangID)

	_, err = f.svc.AddLine(ctx, borrower, lineInput(draft.ID, knd001))
	assert.ErrorIs(t, err, services.ErrDuplicate)

	_, err = f.svc.AddLine(ctx, borrower, lineInput(draft.ID, models.ResourceRef{Category: models.CategoryBarang, ID: "BRG999"}))
	assert.ErrorIs(t, err, services.ErrNotFound)

	mismatch := models.PeminjamanInput{Category: models.CategoryBarang, KendaraanID: "KND001", DetailPeminjamanID: draft.ID}
	_, err = f.svc.AddLine(ctx, borrower, mismatch)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.svc.AddLine(ctx, otherUser, lineInput(draft.ID, brg001))
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRemoveLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)
	line, err := f.svc.AddLine(ctx, borrower, lineInput(draft.ID, brg001))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.RemoveLine(ctx, otherUser, line.ID), services.ErrNotFound)
	require.NoError(t, f.svc.RemoveLine(ctx, borrower, line.ID))

	lines, err := f.svc.DraftLines(ctx, borrower)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveLine_LockedAfterApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, brg001, f.at(time.Hour), nil)
	_, err := f.svc.Approve(ctx, headActor, d.ID)
	require.NoError(t, err)

	lines, err := f.svc.LinesOfRequest(ctx, borrower, d.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.ErrorIs(t, f.svc.RemoveLine(ctx, borrower, lines[0].ID), services.ErrInvalidTransition)
}

func TestApprove_RequiresPrivilege(t *testing.T) {
	f := newFixture(t)
	d := f.submitted(t, borrower, knd001, f.at(time.Hour), nil)

	_, err := f.svc.Approve(context.Background(), borrower, d.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestApprove_ConflictingWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.submitted(t, borrower, knd001, f.at(time.Hour), f.at(5*time.Hour))
	y := f.submitted(t, otherUser, knd001, f.at(3*time.Hour), f.at(8*time.Hour))
	z := f.submitted(t, otherUser, knd001, f.at(5*time.Hour), f.at(6*time.Hour))

	_, err := f.svc.Approve(ctx, headActor, x.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, headActor, y.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
	stored, err := f.store.GetDetail(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)

	_, err = f.svc.Approve(ctx, adminActor, z.ID)
	assert.NoError(t, err, "rentang yang hanya bersentuhan tidak bentrok")

	assert.False(t, f.store.ResourceInUse(knd001), "tanggal pinjam belum tiba")
	assert.Equal(t, []models.NotifikasiCategory{models.NotifDisetujui}, f.store.CategoriesFor(borrower.ID))
}

func TestApprove_PastBorrowDateMarksInUse(t *testing.T) {
	f := newFixture(t)
	d := f.submitted(t, borrower, rgn001, f.at(-time.Hour), f.at(time.Hour))

	_, err := f.svc.Approve(context.Background(), headActor, d.ID)
	require.NoError(t, err)
	assert.True(t, f.store.ResourceInUse(rgn001))

	_, err = f.svc.Approve(context.Background(), headActor, d.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	d := f.submitted(t, borrower, knd001, f.at(time.Hour), nil)

	got, err := f.svc.Reject(context.Background(), headActor, d.ID, "  kendaraan diservis ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, "kendaraan diservis", got.RejectedReason)
	assert.Contains(t, f.store.CategoriesFor(borrower.ID), models.NotifDitolak)

	_, err = f.svc.Cancel(context.Background(), borrower, d.ID, "")
	assert.ErrorIs(t, err, services.ErrInvalidTransition, "rejected adalah status akhir")
}

func TestCancel_ApprovedReleasesResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, knd001, f.at(-time.Hour), f.at(4*time.Hour))
	_, err := f.svc.Approve(ctx, headActor, d.ID)
	require.NoError(t, err)
	require.True(t, f.store.ResourceInUse(knd001))

	got, err := f.svc.Cancel(ctx, borrower, d.ID, "batal rapat")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
	assert.Equal(t, "batal rapat", got.CanceledReason)
	assert.False(t, f.store.ResourceInUse(knd001))
	assert.Contains(t, f.store.CategoriesFor(headActor.ID), models.NotifDibatalkan)
	assert.Equal(t, "Canceled the loan", f.store.Logs[len(f.store.Logs)-1].Action)
}

func TestCancel_KeepsFlagHeldByActiveRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	running := f.submitted(t, borrower, knd001, f.at(-time.Hour), f.at(2*time.Hour))
	_, err := f.svc.Approve(ctx, headActor, running.ID)
	require.NoError(t, err)
	next := f.submitted(t, otherUser, knd001, f.at(5*time.Hour), f.at(8*time.Hour))
	_, err = f.svc.Approve(ctx, headActor, next.ID)
	require.NoError(t, err)
	require.True(t, f.store.ResourceInUse(knd001))

	got, err := f.svc.Cancel(ctx, otherUser, next.ID, "jadwal mundur")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
	assert.True(t, f.store.ResourceInUse(knd001), "masih dipakai pengajuan yang berjalan")

	_, err = f.svc.Return(ctx, borrower, running.ID)
	require.NoError(t, err)
	assert.False(t, f.store.ResourceInUse(knd001))
}

func TestCancel_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, brg001, f.at(time.Hour), nil)

	_, err := f.svc.Cancel(ctx, otherUser, d.ID, "")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = f.svc.Cancel(ctx, headActor, d.ID, "")
	assert.ErrorIs(t, err, services.ErrNotFound, "headOffice menolak, bukan membatalkan")

	_, err = f.svc.Cancel(ctx, adminActor, d.ID, "dibatalkan admin")
	assert.NoError(t, err)
}

func TestCancel_DraftDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, borrower, draft.ID, "")
	require.NoError(t, err)
	assert.Empty(t, f.store.CategoriesFor(headActor.ID))

	next, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)
	assert.NotEqual(t, draft.ID, next.ID)
}

func TestReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, knd001, f.at(-2*time.Hour), f.at(time.Hour))

	_, err := f.svc.Return(ctx, borrower, d.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition, "pending belum bisa dikembalikan")

	_, err = f.svc.Approve(ctx, headActor, d.ID)
	require.NoError(t, err)
	require.True(t, f.store.ResourceInUse(knd001))

	f.now = f.base.Add(30 * time.Minute)
	got, err := f.svc.Return(ctx, borrower, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, got.Status)
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, f.now, *got.ReturnDate)
	assert.False(t, f.store.ResourceInUse(knd001))
	assert.Contains(t, f.store.CategoriesFor(headActor.ID), models.NotifDikembalikan)
}

func TestReturn_KeepsFlagForActiveSuccessor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.submitted(t, borrower, knd001, f.at(-3*time.Hour), f.at(-time.Hour))
	_, err := f.svc.Approve(ctx, headActor, first.ID)
	require.NoError(t, err)
	second := f.submitted(t, otherUser, knd001, f.at(-30*time.Minute), f.at(2*time.Hour))
	_, err = f.svc.Approve(ctx, headActor, second.ID)
	require.NoError(t, err)

	// pengembalian terlambat: pengajuan berikutnya sudah berjalan
	got, err := f.svc.Return(ctx, borrower, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, got.Status)
	assert.True(t, f.store.ResourceInUse(knd001))

	_, err = f.svc.Return(ctx, otherUser, second.ID)
	require.NoError(t, err)
	assert.False(t, f.store.ResourceInUse(knd001))
}

func TestReturn_IgnoresUpcomingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	running := f.submitted(t, borrower, knd001, f.at(-time.Hour), f.at(time.Hour))
	_, err := f.svc.Approve(ctx, headActor, running.ID)
	require.NoError(t, err)
	upcoming := f.submitted(t, otherUser, knd001, f.at(3*time.Hour), f.at(5*time.Hour))
	_, err = f.svc.Approve(ctx, headActor, upcoming.ID)
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, borrower, running.ID)
	require.NoError(t, err)
	assert.False(t, f.store.ResourceInUse(knd001), "pengajuan berikutnya belum mulai")
}

func TestSaveDetail_StaleCopyConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, knd001, f.at(-time.Hour), f.at(time.Hour))
	_, err := f.svc.Approve(ctx, headActor, d.ID)
	require.NoError(t, err)

	// dibaca sebelum dibatalkan admin
	stale, err := f.store.GetDetail(ctx, d.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, adminActor, d.ID, "kendaraan rusak")
	require.NoError(t, err)

	stale.Status = models.StatusReturned
	err = f.store.SaveDetail(ctx, stale, models.StatusApproved)
	assert.ErrorIs(t, err, services.ErrConflict)

	got, err := f.store.GetDetail(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
	assert.False(t, f.store.ResourceInUse(knd001))
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = f.base.Add(-72 * time.Hour)
	stale := f.submitted(t, borrower, rgn001, f.at(10*time.Hour), f.at(12*time.Hour))

	f.now = f.base
	active := f.submitted(t, borrower, knd001, f.at(time.Hour), f.at(5*time.Hour))
	_, err := f.svc.Approve(ctx, headActor, active.ID)
	require.NoError(t, err)

	late := f.submitted(t, otherUser, brg001, f.at(-3*time.Hour), f.at(time.Hour))
	_, err = f.svc.Approve(ctx, headActor, late.ID)
	require.NoError(t, err)

	f.now = f.base.Add(2 * time.Hour)
	report, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.ReconcileReport{Activated: 1, Overdue: 1, AutoCanceled: 1}, report)

	assert.True(t, f.store.ResourceInUse(knd001))
	got, err := f.store.GetDetail(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
	assert.Equal(t, services.AutoCancelReason, got.CanceledReason)

	assert.Contains(t, f.store.CategoriesFor(borrower.ID), models.NotifBerlangsung)
	assert.Contains(t, f.store.CategoriesFor(borrower.ID), models.NotifOtomatisBatal)
	assert.Contains(t, f.store.CategoriesFor(otherUser.ID), models.NotifJatuhTempo)

	again, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.ReconcileReport{}, again, "run kedua tidak mengubah apa pun")
}

func TestReconcile_ContinuesAfterItemError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = f.base.Add(-72 * time.Hour)
	stale := f.submitted(t, borrower, rgn001, f.at(10*time.Hour), nil)

	f.now = f.base
	late := f.submitted(t, otherUser, brg001, f.at(-3*time.Hour), f.at(-time.Hour))
	_, err := f.svc.Approve(ctx, headActor, late.ID)
	require.NoError(t, err)
	f.store.FailSave[late.ID] = true

	report, err := f.svc.Reconcile(ctx)
	assert.Error(t, err)
	assert.Equal(t, 0, report.Overdue)
	assert.Equal(t, 1, report.AutoCanceled)

	got, gerr := f.store.GetDetail(ctx, stale.ID)
	require.NoError(t, gerr)
	assert.Equal(t, models.StatusCanceled, got.Status)
}

func TestReconcile_SkipsRequestsChangedMeanwhile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = f.base.Add(-72 * time.Hour)
	stale := f.submitted(t, borrower, rgn001, f.at(10*time.Hour), nil)

	f.now = f.base
	late := f.submitted(t, otherUser, brg001, f.at(-3*time.Hour), f.at(-time.Hour))
	_, err := f.svc.Approve(ctx, headActor, late.ID)
	require.NoError(t, err)
	require.True(t, f.store.ResourceInUse(brg001))

	// user bertindak di antara pencarian dan penyimpanan
	var returned, canceled bool
	f.store.AfterFind = func(q services.DetailFilter) {
		switch {
		case q.EstimatedUntil != nil && !returned:
			returned = true
			_, err := f.svc.Return(ctx, otherUser, late.ID)
			require.NoError(t, err)
		case q.SubmittedBefore != nil && !canceled:
			canceled = true
			_, err := f.svc.Cancel(ctx, borrower, stale.ID, "tidak jadi")
			require.NoError(t, err)
		}
	}

	report, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.ReconcileReport{}, report)
	require.True(t, returned)
	require.True(t, canceled)

	got, err := f.store.GetDetail(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, got.Status)
	assert.NotNil(t, got.ReturnDate)
	assert.False(t, got.OverdueNotified)
	assert.False(t, f.store.ResourceInUse(brg001))

	got, err = f.store.GetDetail(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
	assert.Equal(t, "tidak jadi", got.CanceledReason)

	assert.NotContains(t, f.store.CategoriesFor(otherUser.ID), models.NotifJatuhTempo)
	assert.NotContains(t, f.store.CategoriesFor(borrower.ID), models.NotifOtomatisBatal)
}

func TestReconcile_DoesNotActivateReturnedRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.submitted(t, borrower, knd001, f.at(time.Hour), f.at(3*time.Hour))
	_, err := f.svc.Approve(ctx, headActor, d.ID)
	require.NoError(t, err)
	require.False(t, f.store.ResourceInUse(knd001))

	f.now = f.base.Add(2 * time.Hour)
	var returned bool
	f.store.AfterFind = func(q services.DetailFilter) {
		if q.BorrowedUntil != nil && len(q.IDs) == 0 && !returned {
			returned = true
			_, err := f.svc.Return(ctx, borrower, d.ID)
			require.NoError(t, err)
		}
	}

	report, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	require.True(t, returned)
	assert.Equal(t, 0, report.Activated)
	assert.False(t, f.store.ResourceInUse(knd001))
	assert.NotContains(t, f.store.CategoriesFor(borrower.ID), models.NotifBerlangsung)
}

func TestListRequests_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submitted(t, borrower, knd001, f.at(time.Hour), nil)
	f.submitted(t, otherUser, brg001, f.at(time.Hour), nil)
	_, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)

	own, err := f.svc.ListRequests(ctx, borrower)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, borrower.ID, own[0].UserID)

	all, err := f.svc.ListRequests(ctx, headActor)
	require.NoError(t, err)
	assert.Len(t, all, 2, "draft tidak ikut")

	for _, d := range all {
		_, err := f.svc.GetRequest(ctx, borrower, d.ID)
		if d.UserID == borrower.ID {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, services.ErrNotFound)
		}
	}
}

func TestScheduleForRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	later := f.submitted(t, otherUser, knd001, f.at(10*time.Hour), f.at(12*time.Hour))
	earlier := f.submitted(t, otherUser, knd001, f.at(time.Hour), f.at(2*time.Hour))

	draft, err := f.svc.GetOrCreateDraft(ctx, borrower)
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, borrower, lineInput(draft.ID, knd001))
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, borrower, lineInput(draft.ID, brg001))
	require.NoError(t, err)
	mine, err := f.svc.Submit(ctx, borrower, models.SubmitInput{ID: draft.ID, BorrowedDate: f.at(5 * time.Hour)})
	require.NoError(t, err)

	schedule, err := f.svc.ScheduleForRequest(ctx, borrower, mine.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(schedule))
	for _, d := range schedule {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{earlier.ID, mine.ID, later.ID}, ids)
}

func TestHistoryAndLatestLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LatestLineByResource(ctx, knd001)
	assert.ErrorIs(t, err, services.ErrNotFound)

	first := f.submitted(t, borrower, knd001, f.at(time.Hour), nil)
	f.now = f.base.Add(time.Minute)
	second := f.submitted(t, otherUser, knd001, f.at(3*time.Hour), nil)

	history, err := f.svc.HistoryByResource(ctx, knd001)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	latest, err := f.svc.LatestLineByResource(ctx, knd001)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.DetailPeminjamanID)
	assert.NotEqual(t, first.ID, latest.DetailPeminjamanID)

	own, err := f.svc.OwnLines(ctx, borrower)
	require.NoError(t, err)
	require.Len(t, own, 1)

	_, err = f.svc.OwnLine(ctx, otherUser, own[0].ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	got, err := f.svc.OwnLine(ctx, headActor, own[0].ID)
	require.NoError(t, err)
	assert.Equal(t, own[0].ID, got.ID)
}
