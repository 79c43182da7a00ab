package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var (
	// ErrNotFound dikembalikan semua repository ketika data yang dicari tidak ada.
	ErrNotFound = errors.New("data tidak ditemukan")
	// ErrNotPending: perubahan status hanya boleh dari PENDING.
	ErrNotPending = errors.New("status kegiatan bukan PENDING")
)

// translate memetakan error driver ke error repository.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	}
	return err
}
