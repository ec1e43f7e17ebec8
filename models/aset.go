package models

import "time"

type Tempat struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"` // gedung / parkiran
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type TempatInput struct {
	Name     string `json:"name" form:"name" validate:"required" example:"Gedung IT"`
	Category string `json:"category" form:"category" validate:"required,oneof=gedung parkiran" example:"gedung"`
}

type Ruangan struct {
	ID        string    `json:"id" bson:"_id"`
	Code      string    `json:"code" bson:"code"`
	Status    bool      `json:"status" bson:"status"` // true = sedang dipinjam
	Capacity  int       `json:"capacity" bson:"capacity"`
	Category  string    `json:"category" bson:"category"` // kelas / lab / gudang
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty"`
	TempatID  string    `json:"tempat_id" bson:"tempat_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type RuanganInput struct {
	Code     string `json:"code" form:"code" validate:"required" example:"R-300"`
	Status   bool   `json:"status" form:"status" example:"false"`
	Capacity int    `json:"capacity" form:"capacity" validate:"gte=0" example:"30"`
	Category string `json:"category" form:"category" validate:"required,oneof=kelas lab gudang" example:"kelas"`
	TempatID string `json:"tempat_id" form:"tempat_id" validate:"required" example:"TMP001"`
}

type Barang struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code" bson:"code"`
	Status    bool      `json:"status" bson:"status"`
	Condition string    `json:"condition" bson:"condition"`
	Warranty  time.Time `json:"warranty" bson:"warranty"`
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty"`
	RuanganID string    `json:"ruangan_id" bson:"ruangan_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type BarangInput struct {
	Name      string `json:"name" form:"name" validate:"required" example:"Proyektor Epson"`
	Code      string `json:"code" form:"code" validate:"required" example:"PRJ-01"`
	Status    bool   `json:"status" form:"status" example:"false"`
	Condition string `json:"condition" form:"condition" validate:"required" example:"baik"`
	Warranty  string `json:"warranty" form:"warranty" validate:"required" example:"31-12-2026"`
	RuanganID string `json:"ruangan_id" form:"ruangan_id" validate:"required" example:"RGN001"`
}

type Kendaraan struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Plat      string    `json:"plat" bson:"plat"`
	Status    bool      `json:"status" bson:"status"`
	Condition string    `json:"condition" bson:"condition"`
	Warranty  time.Time `json:"warranty" bson:"warranty"`
	Tax       time.Time `json:"tax" bson:"tax"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	Category  string    `json:"category" bson:"category"` // mobil / motor / truk
	Color     string    `json:"color" bson:"color"`
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty"`
	TempatID  string    `json:"tempat_id" bson:"tempat_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type KendaraanInput struct {
	Name      string `json:"name" form:"name" validate:"required" example:"Avanza"`
	Plat      string `json:"plat" form:"plat" validate:"required" example:"B 1234 XYZ"`
	Status    bool   `json:"status" form:"status" example:"false"`
	Condition string `json:"condition" form:"condition" validate:"required" example:"baik"`
	Warranty  string `json:"warranty" form:"warranty" validate:"required" example:"31-12-2026"`
	Tax       string `json:"tax" form:"tax" validate:"required" example:"01-06-2026"`
	Capacity  int    `json:"capacity" form:"capacity" validate:"gte=0" example:"7"`
	Category  string `json:"category" form:"category" validate:"required,oneof=mobil motor truk" example:"mobil"`
	Color     string `json:"color" form:"color" validate:"required" example:"hitam"`
	TempatID  string `json:"tempat_id" form:"tempat_id" validate:"required" example:"TMP002"`
}

// BulkDeleteInput dipakai oleh semua endpoint DELETE /bulk
type BulkDeleteInput struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}
