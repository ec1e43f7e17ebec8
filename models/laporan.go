package models

// LaporanPeminjaman adalah satu baris laporan export: pengajuan beserta
// peminjam dan item-itemnya.
type LaporanPeminjaman struct {
	DetailPeminjaman `bson:",inline"`
	User             *User        `json:"user,omitempty" bson:"user,omitempty"`
	Items            []Peminjaman `json:"items" bson:"items"`
}
