package services

import "errors"

// Sentinel error service layer; controller yang memetakan ke HTTP status.
var (
	ErrNotFound         = errors.New("data tidak ditemukan")
	ErrNoPermission     = errors.New("anda tidak berhak melakukan aksi ini")
	ErrInvalidState     = errors.New("status booking tidak memungkinkan aksi ini")
	ErrRemarkRequired   = errors.New("remark wajib diisi")
	ErrSlugTaken        = errors.New("slug sudah dipakai")
	ErrFacilityInactive = errors.New("facility sudah tidak aktif")
	ErrInvalidTimeRange = errors.New("waktu mulai harus sebelum waktu selesai")
	ErrNotOwner         = errors.New("booking bukan milik anda")
	ErrBadInput         = errors.New("input tidak valid")
)
