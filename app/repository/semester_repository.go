package repository

import (
	"context"

	"angka-kredit-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SemesterRepository membaca data semester akademik.
type SemesterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Semester, error)
	// FindActive mengembalikan semester yang sedang berjalan.
	FindActive(ctx context.Context) (*model.Semester, error)
	FindAll(ctx context.Context) ([]model.Semester, error)
}

type semesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Semester, error) {
	var s model.Semester
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *semesterRepository) FindActive(ctx context.Context) (*model.Semester, error) {
	var s model.Semester
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("tahun DESC").
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *semesterRepository) FindAll(ctx context.Context) ([]model.Semester, error) {
	var out []model.Semester
	if err := r.db.WithContext(ctx).Order("tahun DESC, periode ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
