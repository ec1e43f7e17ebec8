package models

import "time"

type NotifikasiCategory string

const (
	NotifPengajuan     NotifikasiCategory = "PP"  // pengajuan baru, ke headOffice
	NotifDisetujui     NotifikasiCategory = "PD"  // disetujui, ke peminjam
	NotifDitolak       NotifikasiCategory = "PDT" // ditolak, ke peminjam
	NotifDibatalkan    NotifikasiCategory = "PDB" // dibatalkan peminjam, ke headOffice
	NotifDikembalikan  NotifikasiCategory = "DK"  // dikembalikan, ke headOffice
	NotifBerlangsung   NotifikasiCategory = "PB"  // tanggal pinjam tiba, resource dipakai
	NotifJatuhTempo    NotifikasiCategory = "JT"  // melewati estimasi pengembalian
	NotifPengingat     NotifikasiCategory = "PG"
	NotifOtomatisBatal NotifikasiCategory = "DO"  // dibatalkan otomatis setelah 2 hari pending
)

type notifText struct{ title, body string }

var notifTexts = map[NotifikasiCategory]notifText{
	NotifPengajuan:     {"Pengajuan Peminjaman", "Ada pengajuan peminjaman baru yang menunggu persetujuan"},
	NotifDisetujui:     {"Peminjaman Disetujui", "Pengajuan peminjaman Anda telah disetujui"},
	NotifDitolak:       {"Peminjaman Ditolak", "Pengajuan peminjaman Anda ditolak"},
	NotifDibatalkan:    {"Peminjaman Dibatalkan", "Sebuah pengajuan peminjaman dibatalkan oleh peminjam"},
	NotifDikembalikan:  {"Peminjaman Dikembalikan", "Aset pinjaman telah dikembalikan"},
	NotifBerlangsung:   {"Peminjaman Berlangsung", "Tanggal peminjaman telah tiba, aset sekarang tercatat digunakan"},
	NotifJatuhTempo:    {"Jatuh Tempo", "Waktu estimasi pengembalian telah lewat, segera kembalikan aset"},
	NotifPengingat:     {"Pengingat", "Anda memiliki peminjaman yang perlu diperhatikan"},
	NotifOtomatisBatal: {"Pengajuan Dibatalkan Otomatis", "Pengajuan Anda dibatalkan karena tidak diproses selama 2 hari"},
}

// Title returns the push notification title for the category.
func (c NotifikasiCategory) Title() string {
	if t, ok := notifTexts[c]; ok {
		return t.title
	}
	return "Notifikasi"
}

// Body returns the push notification body for the category.
func (c NotifikasiCategory) Body() string {
	if t, ok := notifTexts[c]; ok {
		return t.body
	}
	return ""
}

func (c NotifikasiCategory) Valid() bool {
	_, ok := notifTexts[c]
	return ok
}

type Notifikasi struct {
	ID                 string             `json:"id" bson:"_id"`
	Category           NotifikasiCategory `json:"category" bson:"category"`
	IsRead             bool               `json:"is_read" bson:"is_read"`
	UserID             string             `json:"user_id" bson:"user_id"`
	DetailPeminjamanID string             `json:"detail_peminjaman_id,omitempty" bson:"detail_peminjaman_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
}

// Perangkat menyimpan device token push notification milik user.
type Perangkat struct {
	ID          string `json:"id" bson:"_id"`
	DeviceToken string `json:"device_token" bson:"device_token"`
	UserID      string `json:"user_id" bson:"user_id"`
}

type PerangkatInput struct {
	DeviceToken string `json:"device_token" validate:"required" example:"fcm-token-abc"`
}

// SendNotifikasiInput adalah body POST /notifikasi/send (admin)
type SendNotifikasiInput struct {
	UserID   string             `json:"user_id" validate:"required" example:"USR002"`
	Category NotifikasiCategory `json:"category" validate:"required" example:"PG"`
}
