package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inventara/models"
)

func rangeFromQuery(t *testing.T, query string) (from, to *time.Time, err error) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		from, to, err = buildCreatedAtRangeFromQuery(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/?"+query, nil))
	require.NoError(t, testErr)
	return from, to, err
}

func TestBuildCreatedAtRangeFromQuery(t *testing.T) {
	from, to, err := rangeFromQuery(t, "start=2026-01-10&end=2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local), *from)
	assert.Equal(t, time.Date(2026, 1, 13, 0, 0, 0, 0, time.Local), *to, "end eksklusif")

	from, to, err = rangeFromQuery(t, "month=2&year=2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), *from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *to)

	from, to, err = rangeFromQuery(t, "year=2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, 2026, to.Year())

	from, to, err = rangeFromQuery(t, "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	for _, q := range []string{
		"start=2026-01-10",
		"start=10-01-2026&end=12-01-2026",
		"start=2026-01-12&end=2026-01-10",
		"month=2",
		"month=13&year=2026",
		"year=abc",
	} {
		_, _, err := rangeFromQuery(t, q)
		assert.Error(t, err, q)
	}
}

func laporanRows() []models.LaporanPeminjaman {
	borrowed := time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local)
	return []models.LaporanPeminjaman{
		{
			DetailPeminjaman: models.DetailPeminjaman{
				ID: "DPJ002", Status: models.StatusRejected, UserID: "USR003",
				Objective: "Rapat", RejectedReason: "Jadwal bentrok",
				CreatedAt: time.Date(2026, 9, 30, 10, 0, 0, 0, time.Local),
			},
			User: &models.User{Name: "Budi", Division: "IT"},
		},
		{
			DetailPeminjaman: models.DetailPeminjaman{
				ID: "DPJ001", Status: models.StatusReturned, UserID: "USR004",
				BorrowedDate: &borrowed, Objective: "Kunjungan cabang",
				CreatedAt: time.Date(2026, 9, 29, 10, 0, 0, 0, time.Local),
			},
			Items: []models.Peminjaman{
				{ID: "PJM001", Category: models.CategoryKendaraan, KendaraanID: "KND001"},
				{ID: "PJM002", Category: models.CategoryBarang, BarangID: "BRG003"},
			},
		},
	}
}

func TestBuildLaporanWorkbook(t *testing.T) {
	f, err := buildLaporanWorkbook(laporanRows())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetPengajuan, sheetItem}, f.GetSheetList())

	rows, err := f.GetRows(sheetPengajuan)
	require.NoError(t, err)
	assert.Equal(t, "ID Pengajuan", rows[0][0])
	assert.Equal(t, "Alasan", rows[0][12])
	assert.Equal(t, []string{"DPJ002", "30-09-2026 10:00", "Budi", "IT", "rejected"}, rows[1][:5])
	assert.Equal(t, "Jadwal bentrok", rows[1][12])
	assert.Equal(t, "USR004", rows[2][2], "tanpa user memakai user_id")
	assert.Equal(t, "2", rows[2][11])

	total, err := f.GetCellValue(sheetPengajuan, "E5")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	items, err := f.GetRows(sheetItem)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"DPJ001", "USR004", "kendaraan", "KND001", "returned"}, items[1])
	assert.Equal(t, "BRG003", items[2][3])
}

func TestExportExcel(t *testing.T) {
	var gotFrom, gotTo *time.Time
	lc := &LaporanController{Load: func(_ context.Context, from, to *time.Time) ([]models.LaporanPeminjaman, error) {
		gotFrom, gotTo = from, to
		return laporanRows(), nil
	}}
	app := fiber.New()
	app.Get("/laporan/export/excel", lc.ExportExcel)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/laporan/export/excel?month=9&year=2026", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "laporan_peminjaman.xlsx")
	require.NotNil(t, gotFrom)
	assert.Equal(t, time.September, gotFrom.Month())
	assert.Equal(t, time.October, gotTo.Month())

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(sheetPengajuan, "A2")
	require.NoError(t, err)
	assert.Equal(t, "DPJ002", v)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/laporan/export/excel?month=9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	lc.Load = func(context.Context, *time.Time, *time.Time) ([]models.LaporanPeminjaman, error) {
		return nil, errors.New("mongo down")
	}
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/laporan/export/excel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
