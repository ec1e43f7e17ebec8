package controllers

import (
	"context"
	"fmt"
	"time"

	"inventara/models"
	"inventara/repository"
	"inventara/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// buildCreatedAtRangeFromQuery membaca periode laporan dari query string.
// Hasil nil berarti tanpa batas.
func buildCreatedAtRangeFromQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	startStr := c.Query("start", "")
	endStr := c.Query("end", "")
	monthStr := c.Query("month", "")
	yearStr := c.Query("year", "")

	// Priority:
	// 1) explicit start/end
	// 2) month+year
	// 3) year
	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return nil, nil, fmt.Errorf("start dan end harus diisi bersamaan")
		}
		startDate, errStart := time.ParseInLocation("2006-01-02", startStr, time.Local)
		endDate, errEnd := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if errStart != nil || errEnd != nil {
			return nil, nil, fmt.Errorf("format tanggal harus YYYY-MM-DD")
		}
		if endDate.Before(startDate) {
			return nil, nil, fmt.Errorf("end tidak boleh sebelum start")
		}
		endExclusive := endDate.AddDate(0, 0, 1)
		return &startDate, &endExclusive, nil
	}

	if monthStr != "" {
		if yearStr == "" {
			return nil, nil, fmt.Errorf("year wajib diisi jika month digunakan")
		}
		year, err := parseYear(yearStr)
		if err != nil {
			return nil, nil, err
		}
		var month int
		if _, err := fmt.Sscanf(monthStr, "%d", &month); err != nil || month < 1 || month > 12 {
			return nil, nil, fmt.Errorf("month tidak valid")
		}
		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		endExclusive := startDate.AddDate(0, 1, 0)
		return &startDate, &endExclusive, nil
	}

	if yearStr != "" {
		year, err := parseYear(yearStr)
		if err != nil {
			return nil, nil, err
		}
		startDate := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		endExclusive := startDate.AddDate(1, 0, 0)
		return &startDate, &endExclusive, nil
	}

	return nil, nil, nil
}

func parseYear(s string) (int, error) {
	var year int
	if _, err := fmt.Sscanf(s, "%d", &year); err != nil || year < 1900 {
		return 0, fmt.Errorf("year tidak valid")
	}
	return year, nil
}

type LaporanController struct {
	Load func(ctx context.Context, from, to *time.Time) ([]models.LaporanPeminjaman, error)
}

func NewLaporanController() *LaporanController {
	return &LaporanController{
		Load: repository.GetLaporanPeminjaman,
	}
}

// ExportExcel godoc
//
//	@Summary		Export laporan peminjaman
//	@Description	Periode: start+end (YYYY-MM-DD), atau month+year, atau year. Token boleh lewat query ?token=
//	@Tags			Laporan
//	@Security		BearerAuth
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			start	query	string	false	"Tanggal awal"
//	@Param			end		query	string	false	"Tanggal akhir"
//	@Param			month	query	int		false	"Bulan 1-12"
//	@Param			year	query	int		false	"Tahun"
//	@Success		200		{file}	file
//	@Failure		400		{object}	map[string]interface{}
//	@Router			/laporan/export/excel [get]
func (lc *LaporanController) ExportExcel(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 20*time.Second)
	defer cancel()

	from, to, err := buildCreatedAtRangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Periode tidak valid", "error": err.Error()})
	}

	rows, err := lc.Load(ctx, from, to)
	if err != nil {
		return fail(c, "Gagal mengambil data laporan", err)
	}

	f, err := buildLaporanWorkbook(rows)
	if err != nil {
		return fail(c, "Gagal membuat file excel", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fail(c, "Gagal membuat file excel", err)
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename=laporan_peminjaman.xlsx")
	return c.Send(buf.Bytes())
}

const (
	sheetPengajuan = "Pengajuan"
	sheetItem      = "Detail Item"
)

func buildLaporanWorkbook(rows []models.LaporanPeminjaman) (*excelize.File, error) {
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	writeRow := func(sheet string, row int, values []interface{}) {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	writeHeaders := func(sheet string, headers []string) {
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	f.SetSheetName("Sheet1", sheetPengajuan)
	writeHeaders(sheetPengajuan, []string{
		"ID Pengajuan",
		"Tanggal Pengajuan",
		"Peminjam",
		"Divisi",
		"Status",
		"Tanggal Pinjam",
		"Estimasi Kembali",
		"Tanggal Kembali",
		"Keperluan",
		"Tujuan",
		"Penumpang",
		"Jumlah Item",
		"Alasan",
	})

	if _, err := f.NewSheet(sheetItem); err != nil {
		return nil, err
	}
	writeHeaders(sheetItem, []string{
		"ID Pengajuan",
		"Peminjam",
		"Kategori",
		"ID Resource",
		"Status Pengajuan",
	})

	perStatus := map[models.LoanStatus]int{}
	rowP, rowI := 2, 2
	for _, r := range rows {
		perStatus[r.Status]++
		name := r.UserID
		division := ""
		if r.User != nil {
			name = r.User.Name
			division = r.User.Division
		}
		reason := r.RejectedReason
		if reason == "" {
			reason = r.CanceledReason
		}
		writeRow(sheetPengajuan, rowP, []interface{}{
			r.ID,
			r.CreatedAt.Format("02-01-2006 15:04"),
			name,
			division,
			string(r.Status),
			formatTimePtr(r.BorrowedDate),
			formatTimePtr(r.EstimatedTime),
			formatTimePtr(r.ReturnDate),
			r.Objective,
			r.Destination,
			r.Passenger,
			len(r.Items),
			reason,
		})
		rowP++

		for _, it := range r.Items {
			writeRow(sheetItem, rowI, []interface{}{
				r.ID,
				name,
				string(it.Category),
				it.ResourceID(),
				string(r.Status),
			})
			rowI++
		}
	}

	// ringkasan per status di bawah tabel
	summaryRow := rowP + 1
	f.SetCellValue(sheetPengajuan, fmt.Sprintf("D%d", summaryRow), "TOTAL PENGAJUAN")
	f.SetCellValue(sheetPengajuan, fmt.Sprintf("E%d", summaryRow), len(rows))
	for _, st := range models.SubmittedStatuses {
		summaryRow++
		f.SetCellValue(sheetPengajuan, fmt.Sprintf("D%d", summaryRow), "TOTAL "+string(st))
		f.SetCellValue(sheetPengajuan, fmt.Sprintf("E%d", summaryRow), perStatus[st])
	}

	f.AutoFilter(sheetPengajuan, "A1:M1", []excelize.AutoFilterOptions{})
	f.SetPanes(sheetPengajuan, &excelize.Panes{Freeze: true, Split: true, YSplit: 1})

	f.AutoFilter(sheetItem, "A1:E1", []excelize.AutoFilterOptions{})
	f.SetPanes(sheetItem, &excelize.Panes{Freeze: true, Split: true, YSplit: 1})

	f.SetActiveSheet(0)
	return f, nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return utils.FormatDate(*t) + t.Format(" 15:04")
}
