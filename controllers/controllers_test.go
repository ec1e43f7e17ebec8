package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventara/middleware"
	"inventara/models"
	"inventara/services"
	"inventara/services/servicetest"
	"inventara/validation"
)

const (
	hdrUser = "X-Test-User"
	hdrRole = "X-Test-Role"
)

var (
	kendaraan1 = models.ResourceRef{Category: models.CategoryKendaraan, ID: "KND001"}
	clock      = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
)

// fakeAuth mengisi Locals seperti JWTMiddleware dari header test.
func fakeAuth(c *fiber.Ctx) error {
	c.Locals(middleware.LocalUserID, strings.Clone(c.Get(hdrUser)))
	c.Locals(middleware.LocalUserRole, strings.Clone(c.Get(hdrRole)))
	return c.Next()
}

type fakeReconciler struct {
	report services.ReconcileReport
	err    error
}

func (f fakeReconciler) RunOnce(context.Context) (services.ReconcileReport, error) {
	return f.report, f.err
}

type loanApp struct {
	app   *fiber.App
	store *servicetest.MemStore
}

func newLoanApp(t *testing.T, rec Reconciler) *loanApp {
	t.Helper()
	st := servicetest.NewMemStore()
	st.Users["USR001"] = models.RoleAdmin
	st.Users["USR002"] = models.RoleHeadOffice
	st.Users["USR003"] = models.RoleUser
	st.Resources[kendaraan1] = false

	notifs := services.NewNotificationService(st, &servicetest.RecordingSender{})
	loans := services.NewLoanService(st, notifs, services.WithClock(func() time.Time { return clock }))
	dc := NewDetailPeminjamanController(loans, rec)
	pc := NewPeminjamanController(loans)
	nc := NewNotifikasiController(notifs)

	app := fiber.New()
	app.Use(fakeAuth)
	app.Get("/detailPeminjaman", dc.GetAll)
	app.Get("/detailPeminjaman/checkItemsStatus", dc.CheckItemsStatus)
	app.Get("/detailPeminjaman/all/kendaraan/:id", dc.HistoryOf(models.CategoryKendaraan))
	app.Get("/detailPeminjaman/:id", dc.GetByID)
	app.Get("/detailPeminjaman/:id/peminjaman", dc.GetLines)
	app.Post("/detailPeminjaman/draft", dc.CreateDraft)
	app.Patch("/detailPeminjaman/pending", dc.Submit)
	app.Patch("/detailPeminjaman/approved", dc.Approve)
	app.Patch("/detailPeminjaman/rejected", dc.Reject)
	app.Patch("/detailPeminjaman/returned", dc.Return)
	app.Get("/peminjaman/kendaraan/:id", pc.LatestOf(models.CategoryKendaraan))
	app.Post("/peminjaman", pc.Create)
	app.Delete("/peminjaman", pc.Delete)
	app.Get("/notifikasi", nc.GetOwn)
	app.Patch("/notifikasi/read-all", nc.MarkAllRead)
	app.Post("/perangkat", nc.RegisterDevice)
	return &loanApp{app: app, store: st}
}

func (la *loanApp) do(t *testing.T, method, path, user, role string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(hdrUser, user)
	req.Header.Set(hdrRole, role)

	resp, err := la.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 {
		out["list"] = json.RawMessage(raw)
	}
	return resp.StatusCode, out
}

func dataField(t *testing.T, body map[string]any, key string) any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response tanpa data: %v", body)
	return data[key]
}

func TestLoanFlow_DraftSubmitApproveReturn(t *testing.T) {
	la := newLoanApp(t, fakeReconciler{})
	const user, role = "USR003", models.RoleUser

	status, body := la.do(t, http.MethodPost, "/detailPeminjaman/draft", user, role, nil)
	require.Equal(t, fiber.StatusOK, status)
	draftID := dataField(t, body, "id").(string)
	assert.Equal(t, "DPJ001", draftID)
	assert.Equal(t, string(models.StatusDraft), dataField(t, body, "status"))

	// draft kedua mengembalikan draft yang sama
	_, body = la.do(t, http.MethodPost, "/detailPeminjaman/draft", user, role, nil)
	assert.Equal(t, draftID, dataField(t, body, "id"))

	status, body = la.do(t, http.MethodPost, "/peminjaman", user, role, models.PeminjamanInput{
		Category: models.CategoryKendaraan, KendaraanID: "KND001", DetailPeminjamanID: draftID,
	})
	require.Equal(t, fiber.StatusCreated, status, body)

	status, body = la.do(t, http.MethodPatch, "/detailPeminjaman/pending", user, role, map[string]any{"id": draftID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["errors"])

	borrowed := clock.Add(24 * time.Hour)
	estimated := borrowed.Add(8 * time.Hour)
	status, body = la.do(t, http.MethodPatch, "/detailPeminjaman/pending", user, role, models.SubmitInput{
		ID: draftID, BorrowedDate: &borrowed, EstimatedTime: &estimated, Objective: "Kunjungan cabang",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, string(models.StatusPending), dataField(t, body, "status"))

	status, _ = la.do(t, http.MethodPatch, "/detailPeminjaman/approved", user, role, models.IDInput{ID: draftID})
	assert.Equal(t, fiber.StatusForbidden, status, "user biasa tidak boleh approve")

	status, body = la.do(t, http.MethodPatch, "/detailPeminjaman/approved", "USR002", models.RoleHeadOffice, models.IDInput{ID: draftID})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, string(models.StatusApproved), dataField(t, body, "status"))

	status, _ = la.do(t, http.MethodPatch, "/detailPeminjaman/rejected", "USR002", models.RoleHeadOffice, models.ReasonInput{ID: draftID, Reason: "telat"})
	assert.Equal(t, fiber.StatusConflict, status, "approved tidak bisa ditolak")

	status, body = la.do(t, http.MethodPatch, "/detailPeminjaman/returned", user, role, models.IDInput{ID: draftID})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, string(models.StatusReturned), dataField(t, body, "status"))
	assert.False(t, la.store.ResourceInUse(kendaraan1))

	status, body = la.do(t, http.MethodGet, "/detailPeminjaman/all/kendaraan/KND001", user, role, nil)
	require.Equal(t, fiber.StatusOK, status)
	var history []models.DetailPeminjaman
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &history))
	require.Len(t, history, 1)
	assert.Equal(t, draftID, history[0].ID)

	status, body = la.do(t, http.MethodGet, "/peminjaman/kendaraan/KND001", user, role, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, draftID, body["detail_peminjaman_id"])

	status, body = la.do(t, http.MethodGet, "/notifikasi", user, role, nil)
	require.Equal(t, fiber.StatusOK, status)
	var notifs []models.Notifikasi
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &notifs))
	assert.NotEmpty(t, notifs)

	status, body = la.do(t, http.MethodPatch, "/notifikasi/read-all", user, role, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, len(notifs), body["updated"])
}

func TestLoanFlow_OtherUserCannotSeeRequest(t *testing.T) {
	la := newLoanApp(t, fakeReconciler{})
	_, body := la.do(t, http.MethodPost, "/detailPeminjaman/draft", "USR003", models.RoleUser, nil)
	id := dataField(t, body, "id").(string)

	status, _ := la.do(t, http.MethodGet, "/detailPeminjaman/"+id, "USR004", models.RoleUser, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = la.do(t, http.MethodGet, "/detailPeminjaman/"+id, "USR001", models.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestPeminjaman_CreateValidation(t *testing.T) {
	la := newLoanApp(t, fakeReconciler{})

	status, body := la.do(t, http.MethodPost, "/peminjaman", "USR003", models.RoleUser, models.PeminjamanInput{Category: "pesawat"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Validasi gagal", body["message"])

	req := httptest.NewRequest(http.MethodPost, "/peminjaman", bytes.NewBufferString("{bukan json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := la.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	status, _ = la.do(t, http.MethodDelete, "/peminjaman", "USR003", models.RoleUser, models.IDInput{ID: "PJM404"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCheckItemsStatus(t *testing.T) {
	la := newLoanApp(t, fakeReconciler{report: services.ReconcileReport{Activated: 2, AutoCanceled: 1}})
	status, body := la.do(t, http.MethodGet, "/detailPeminjaman/checkItemsStatus", "USR001", models.RoleAdmin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, dataField(t, body, "activated"))
	assert.EqualValues(t, 1, dataField(t, body, "auto_canceled"))

	la = newLoanApp(t, fakeReconciler{report: services.ReconcileReport{Overdue: 1}, err: errors.New("mongo timeout")})
	status, body = la.do(t, http.MethodGet, "/detailPeminjaman/checkItemsStatus", "USR001", models.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "mongo timeout", body["error"])
	assert.EqualValues(t, 1, dataField(t, body, "overdue"))
}

func TestRegisterDevice(t *testing.T) {
	la := newLoanApp(t, fakeReconciler{})
	status, _ := la.do(t, http.MethodPost, "/perangkat", "USR003", models.RoleUser, map[string]string{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body := la.do(t, http.MethodPost, "/perangkat", "USR003", models.RoleUser, models.PerangkatInput{DeviceToken: "fcm-1"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "USR003", dataField(t, body, "user_id"))
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", services.ErrValidation), fiber.StatusUnprocessableEntity},
		{validation.Errors{{Field: "name", Tag: "required"}}, fiber.StatusUnprocessableEntity},
		{services.ErrNotFound, fiber.StatusNotFound},
		{services.ErrForbidden, fiber.StatusForbidden},
		{services.ErrDuplicate, fiber.StatusConflict},
		{fmt.Errorf("%w: masih dipakai", services.ErrConflict), fiber.StatusConflict},
		{services.ErrInvalidTransition, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errorStatus(tc.err), tc.err.Error())
	}
}

func TestParam_Unescapes(t *testing.T) {
	app := fiber.New()
	app.Get("/tempat/:name", func(c *fiber.Ctx) error {
		return c.SendString(param(c, "name"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tempat/Gedung%20Utama", nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Gedung Utama", string(b))
}
