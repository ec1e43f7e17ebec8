// Package importer membaca file xlsx master data. Parser hanya menghasilkan
// baris; penyimpanan dilakukan oleh pemanggil.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"inventara/utils"

	"github.com/xuri/excelize/v2"
)

var ErrHeader = errors.New("format header tidak sesuai")

// Picture adalah gambar yang ditempel pada sel baris data.
type Picture struct {
	Ext  string
	Data []byte
}

// Skipped mencatat baris yang dilewati beserta alasannya.
type Skipped struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result dikembalikan ke client setelah import selesai.
type Result struct {
	Imported int       `json:"imported"`
	Skipped  []Skipped `json:"skipped"`
}

func (r *Result) Skip(row int, format string, args ...any) {
	r.Skipped = append(r.Skipped, Skipped{Row: row, Reason: fmt.Sprintf(format, args...)})
}

type TempatRow struct {
	Row      int
	Name     string
	Category string
	Photo    *Picture
}

type RuanganRow struct {
	Row        int
	Code       string
	Capacity   int
	Category   string
	TempatName string
	Photo      *Picture
}

type BarangRow struct {
	Row         int
	Name        string
	Code        string
	Condition   string
	Warranty    time.Time
	RuanganCode string
	Photo       *Picture
}

type KendaraanRow struct {
	Row        int
	Name       string
	Plat       string
	Status     bool
	Condition  string
	Warranty   time.Time
	Capacity   int
	Category   string
	Color      string
	Tax        time.Time
	TempatName string
	Photo      *Picture
}

// sheet membungkus sheet pertama workbook.
type sheet struct {
	f    *excelize.File
	name string
	rows [][]string
}

func open(r io.Reader, firstHeader string) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("buka xlsx: %w", err)
	}
	list := f.GetSheetList()
	if len(list) == 0 {
		f.Close()
		return nil, ErrHeader
	}
	rows, err := f.GetRows(list[0])
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 || !strings.EqualFold(strings.TrimSpace(rows[0][0]), firstHeader) {
		f.Close()
		return nil, fmt.Errorf("%w: kolom pertama harus %q", ErrHeader, firstHeader)
	}
	return &sheet{f: f, name: list[0], rows: rows}, nil
}

func (s *sheet) Close() error { return s.f.Close() }

// each memanggil fn untuk setiap baris data (mulai baris 2) yang tidak kosong.
func (s *sheet) each(fn func(row int, cells []string)) {
	for i := 1; i < len(s.rows); i++ {
		cells := s.rows[i]
		if blank(cells) {
			continue
		}
		fn(i+1, cells)
	}
}

func (s *sheet) picture(col string, row int) *Picture {
	pics, err := s.f.GetPictures(s.name, fmt.Sprintf("%s%d", col, row))
	if err != nil || len(pics) == 0 {
		return nil
	}
	return &Picture{Ext: pics[0].Extension, Data: pics[0].File}
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return strings.TrimSpace(cells[i])
	}
	return ""
}

type column struct {
	idx  int
	name string
}

// required mengembalikan nama kolom wajib pertama yang kosong.
func required(cells []string, cols ...column) string {
	for _, c := range cols {
		if cell(cells, c.idx) == "" {
			return c.name
		}
	}
	return ""
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	return 0, fmt.Errorf("angka tidak valid: %q", s)
}

func ParseTempats(r io.Reader) ([]TempatRow, Result, error) {
	var res Result
	s, err := open(r, "nama_tempat")
	if err != nil {
		return nil, res, err
	}
	defer s.Close()

	var out []TempatRow
	s.each(func(row int, cells []string) {
		if col := required(cells, column{0, "nama_tempat"}, column{1, "category"}); col != "" {
			res.Skip(row, "%s kosong", col)
			return
		}
		out = append(out, TempatRow{
			Row:      row,
			Name:     cell(cells, 0),
			Category: strings.ToLower(cell(cells, 1)),
			Photo:    s.picture("C", row),
		})
	})
	return out, res, nil
}

func ParseRuangans(r io.Reader) ([]RuanganRow, Result, error) {
	var res Result
	s, err := open(r, "kode_ruangan")
	if err != nil {
		return nil, res, err
	}
	defer s.Close()

	var out []RuanganRow
	s.each(func(row int, cells []string) {
		if col := required(cells, column{0, "kode_ruangan"}, column{2, "category"}, column{3, "tempat_name"}); col != "" {
			res.Skip(row, "%s kosong", col)
			return
		}
		capacity, err := atoi(cell(cells, 1))
		if err != nil {
			res.Skip(row, "capacity: %v", err)
			return
		}
		out = append(out, RuanganRow{
			Row:        row,
			Code:       cell(cells, 0),
			Capacity:   capacity,
			Category:   strings.ToLower(cell(cells, 2)),
			TempatName: cell(cells, 3),
			Photo:      s.picture("E", row),
		})
	})
	return out, res, nil
}

func ParseBarangs(r io.Reader) ([]BarangRow, Result, error) {
	var res Result
	s, err := open(r, "nama_barang")
	if err != nil {
		return nil, res, err
	}
	defer s.Close()

	var out []BarangRow
	s.each(func(row int, cells []string) {
		if col := required(cells, column{0, "nama_barang"}, column{1, "code"}, column{2, "condition"}, column{3, "warranty"}, column{4, "ruangan_code"}); col != "" {
			res.Skip(row, "%s kosong", col)
			return
		}
		warranty, err := utils.ParseDate(cell(cells, 3))
		if err != nil {
			res.Skip(row, "warranty: %v", err)
			return
		}
		out = append(out, BarangRow{
			Row:         row,
			Name:        cell(cells, 0),
			Code:        cell(cells, 1),
			Condition:   cell(cells, 2),
			Warranty:    warranty,
			RuanganCode: cell(cells, 4),
			Photo:       s.picture("F", row),
		})
	})
	return out, res, nil
}

func ParseKendaraans(r io.Reader) ([]KendaraanRow, Result, error) {
	var res Result
	s, err := open(r, "nama_kendaraan")
	if err != nil {
		return nil, res, err
	}
	defer s.Close()

	var out []KendaraanRow
	s.each(func(row int, cells []string) {
		if col := required(cells, column{0, "nama_kendaraan"}, column{1, "plat"}, column{3, "condition"}, column{4, "warranty"}, column{6, "category"}, column{8, "tax"}, column{9, "tempat_name"}); col != "" {
			res.Skip(row, "%s kosong", col)
			return
		}
		warranty, err := utils.ParseDate(cell(cells, 4))
		if err != nil {
			res.Skip(row, "warranty: %v", err)
			return
		}
		tax, err := utils.ParseDate(cell(cells, 8))
		if err != nil {
			res.Skip(row, "tax: %v", err)
			return
		}
		capacity, err := atoi(cell(cells, 5))
		if err != nil {
			res.Skip(row, "capacity: %v", err)
			return
		}
		out = append(out, KendaraanRow{
			Row:        row,
			Name:       cell(cells, 0),
			Plat:       cell(cells, 1),
			Status:     strings.EqualFold(cell(cells, 2), "Digunakan"),
			Condition:  cell(cells, 3),
			Warranty:   warranty,
			Capacity:   capacity,
			Category:   strings.ToLower(cell(cells, 6)),
			Color:      cell(cells, 7),
			Tax:        tax,
			TempatName: cell(cells, 9),
			Photo:      s.picture("K", row),
		})
	})
	return out, res, nil
}
