package services

import "errors"

var (
	ErrNotFound          = errors.New("data tidak ditemukan")
	ErrForbidden         = errors.New("akses ditolak")
	ErrInvalidTransition = errors.New("perubahan status tidak diizinkan")
	ErrDuplicate         = errors.New("data sudah ada")
	ErrConflict          = errors.New("jadwal bentrok")
	ErrValidation        = errors.New("validasi gagal")
)
