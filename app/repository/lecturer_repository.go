package repository

import (
	"context"

	"angka-kredit-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LecturerRepository mendefinisikan operasi ke tabel lecturers.
type LecturerRepository interface {
	// FindByID dipakai scoring (jabatan) dan kesimpulan (data dosen).
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lecturer, error)

	// FindByUserID mencari dosen berdasarkan user yang login.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Lecturer, error)

	FindAll(ctx context.Context) ([]model.Lecturer, error)
}

type lecturerRepository struct {
	db *gorm.DB
}

// NewLecturerRepository membuat instance baru LecturerRepository.
func NewLecturerRepository(db *gorm.DB) LecturerRepository {
	return &lecturerRepository{db: db}
}

func (r *lecturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Lecturer, error) {
	var lec model.Lecturer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lec).Error; err != nil {
		return nil, translate(err)
	}
	return &lec, nil
}

func (r *lecturerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Lecturer, error) {
	var lec model.Lecturer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&lec).Error; err != nil {
		return nil, translate(err)
	}
	return &lec, nil
}

func (r *lecturerRepository) FindAll(ctx context.Context) ([]model.Lecturer, error) {
	var out []model.Lecturer
	if err := r.db.WithContext(ctx).Order("nama ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
