package models

import "time"

type LoanStatus string

const (
	StatusDraft    LoanStatus = "draft"
	StatusPending  LoanStatus = "pending"
	StatusApproved LoanStatus = "approved"
	StatusRejected LoanStatus = "rejected"
	StatusReturned LoanStatus = "returned"
	StatusCanceled LoanStatus = "canceled"
)

// transitions adalah tabel state machine pengajuan peminjaman.
var transitions = map[LoanStatus][]LoanStatus{
	StatusDraft:    {StatusPending, StatusCanceled},
	StatusPending:  {StatusPending, StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {StatusReturned, StatusCanceled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to LoanStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOpen: draft, pending dan approved masih mengikat resource.
func (s LoanStatus) IsOpen() bool {
	return s == StatusDraft || s == StatusPending || s == StatusApproved
}

// IsTerminal reports whether no further transition exists.
func (s LoanStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Submitted statuses, yaitu semua kecuali draft.
var SubmittedStatuses = []LoanStatus{StatusPending, StatusApproved, StatusRejected, StatusReturned, StatusCanceled}

type Category string

const (
	CategoryBarang    Category = "barang"
	CategoryKendaraan Category = "kendaraan"
	CategoryRuangan   Category = "ruangan"
)

func (c Category) Valid() bool {
	return c == CategoryBarang || c == CategoryKendaraan || c == CategoryRuangan
}

// DetailPeminjaman adalah satu pengajuan peminjaman milik satu user.
type DetailPeminjaman struct {
	ID              string     `json:"id" bson:"_id"`
	Status          LoanStatus `json:"status" bson:"status"`
	BorrowedDate    *time.Time `json:"borrowed_date,omitempty" bson:"borrowed_date,omitempty"`
	EstimatedTime   *time.Time `json:"estimated_time,omitempty" bson:"estimated_time,omitempty"`
	ReturnDate      *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty"`
	Objective       string     `json:"objective" bson:"objective"`
	Destination     string     `json:"destination,omitempty" bson:"destination,omitempty"`
	Passenger       int        `json:"passenger,omitempty" bson:"passenger,omitempty"`
	CanceledReason  string     `json:"canceled_reason,omitempty" bson:"canceled_reason,omitempty"`
	RejectedReason  string     `json:"rejected_reason,omitempty" bson:"rejected_reason,omitempty"`
	OverdueNotified bool       `json:"overdue_notified" bson:"overdue_notified"`
	UserID          string     `json:"user_id" bson:"user_id"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// Window mengembalikan rentang pemakaian. Tanpa estimated_time rentang dianggap
// terbuka sampai dikembalikan.
func (d DetailPeminjaman) Window() (start, end time.Time, ok bool) {
	if d.BorrowedDate == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *d.BorrowedDate
	if d.EstimatedTime != nil {
		end = *d.EstimatedTime
	}
	return start, end, true
}

// Overlaps reports whether the usage windows of two requests intersect.
func (d DetailPeminjaman) Overlaps(o DetailPeminjaman) bool {
	aStart, aEnd, ok := d.Window()
	if !ok {
		return false
	}
	bStart, bEnd, ok := o.Window()
	if !ok {
		return false
	}
	aOpen, bOpen := aEnd.IsZero(), bEnd.IsZero()
	if !aOpen && !bStart.Before(aEnd) {
		return false
	}
	if !bOpen && !aStart.Before(bEnd) {
		return false
	}
	return true
}

// Peminjaman adalah satu baris resource di dalam pengajuan.
type Peminjaman struct {
	ID                 string    `json:"id" bson:"_id"`
	Category           Category  `json:"category" bson:"category"`
	BarangID           string    `json:"barang_id,omitempty" bson:"barang_id,omitempty"`
	KendaraanID        string    `json:"kendaraan_id,omitempty" bson:"kendaraan_id,omitempty"`
	RuanganID          string    `json:"ruangan_id,omitempty" bson:"ruangan_id,omitempty"`
	DetailPeminjamanID string    `json:"detail_peminjaman_id" bson:"detail_peminjaman_id"`
	UserID             string    `json:"user_id" bson:"user_id"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// ResourceID returns the referenced resource matching the line category.
func (p Peminjaman) ResourceID() string {
	switch p.Category {
	case CategoryBarang:
		return p.BarangID
	case CategoryKendaraan:
		return p.KendaraanID
	case CategoryRuangan:
		return p.RuanganID
	}
	return ""
}

// ResourceRef identifies one borrowable resource.
type ResourceRef struct {
	Category Category `json:"category"`
	ID       string   `json:"id"`
}

func (p Peminjaman) Ref() ResourceRef {
	return ResourceRef{Category: p.Category, ID: p.ResourceID()}
}

// PeminjamanInput adalah body POST /peminjaman
type PeminjamanInput struct {
	Category           Category `json:"category" validate:"required,oneof=barang kendaraan ruangan" example:"kendaraan"`
	BarangID           string   `json:"barang_id" example:""`
	KendaraanID        string   `json:"kendaraan_id" example:"KND001"`
	RuanganID          string   `json:"ruangan_id" example:""`
	DetailPeminjamanID string   `json:"detail_peminjaman_id" validate:"required" example:"DPJ001"`
}

// SubmitInput adalah body POST/PATCH /detailPeminjaman/pending
type SubmitInput struct {
	ID            string     `json:"id" example:"DPJ001"`
	BorrowedDate  *time.Time `json:"borrowed_date" validate:"required" example:"2026-10-20T08:00:00+07:00"`
	EstimatedTime *time.Time `json:"estimated_time" validate:"omitempty,gtfield=BorrowedDate" example:"2026-10-20T17:00:00+07:00"`
	Objective     string     `json:"objective" validate:"required" example:"Kunjungan ke cabang"`
	Destination   string     `json:"destination" example:"Bandung"`
	Passenger     int        `json:"passenger" validate:"gte=0" example:"3"`
}

// ReasonInput adalah body PATCH /canceled dan /rejected
type ReasonInput struct {
	ID     string `json:"id" validate:"required" example:"DPJ001"`
	Reason string `json:"reason" example:"Jadwal berubah"`
}

type IDInput struct {
	ID string `json:"id" validate:"required" example:"DPJ001"`
}
