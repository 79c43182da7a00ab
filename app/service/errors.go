package service

import (
	"errors"
	"fmt"

	"angka-kredit-backend/app/repository"
)

// Jenis error layanan. Handler memetakan jenis ini ke status HTTP.
var (
	ErrNotFound          = repository.ErrNotFound
	ErrValidation        = errors.New("validasi gagal")
	ErrForbidden         = errors.New("akses ditolak")
	ErrInvalidTransition = errors.New("perubahan status tidak diizinkan")
	ErrUnauthorized      = errors.New("email atau password salah")
)

// AppError membawa jenis error, pesan untuk pengguna, dan penyebab aslinya.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap membuat errors.Is bekerja untuk Kind maupun Err.
func (e *AppError) Unwrap() []error {
	out := []error{e.Kind}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func newError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// wrapRepo membungkus error repository dengan pesan; ErrNotFound tetap terdeteksi.
func wrapRepo(message string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, message, nil)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// validationError mengubah error input kegiatan menjadi ErrValidation.
func validationError(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return newError(ErrValidation, err.Error(), nil)
}
