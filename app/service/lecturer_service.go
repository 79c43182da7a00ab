package service

import (
	"context"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
)

// LecturerService menyediakan data referensi: dosen dan semester.
type LecturerService interface {
	// List hanya untuk admin.
	List(ctx context.Context, actor Actor) ([]model.Lecturer, error)
	// Profile mengembalikan data dosen milik akun yang login.
	Profile(ctx context.Context, actor Actor) (*model.Lecturer, error)
	Semesters(ctx context.Context) ([]model.Semester, error)
	ActiveSemester(ctx context.Context) (*model.Semester, error)
}

type lecturerService struct {
	lecturers repository.LecturerRepository
	semesters repository.SemesterRepository
}

func NewLecturerService(lecturers repository.LecturerRepository, semesters repository.SemesterRepository) LecturerService {
	return &lecturerService{lecturers: lecturers, semesters: semesters}
}

func (s *lecturerService) List(ctx context.Context, actor Actor) ([]model.Lecturer, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "hanya admin yang dapat melihat daftar dosen", nil)
	}
	return s.lecturers.FindAll(ctx)
}

func (s *lecturerService) Profile(ctx context.Context, actor Actor) (*model.Lecturer, error) {
	lec, err := s.lecturers.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, wrapRepo("akun tidak terhubung dengan data dosen", err)
	}
	return lec, nil
}

func (s *lecturerService) Semesters(ctx context.Context) ([]model.Semester, error) {
	return s.semesters.FindAll(ctx)
}

func (s *lecturerService) ActiveSemester(ctx context.Context) (*model.Semester, error) {
	sem, err := s.semesters.FindActive(ctx)
	if err != nil {
		return nil, wrapRepo("belum ada semester aktif", err)
	}
	return sem, nil
}
