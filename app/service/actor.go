package service

import (
	"angka-kredit-backend/app/model"

	"github.com/google/uuid"
)

// Actor adalah pengguna yang sedang login, diambil dari klaim JWT.
type Actor struct {
	UserID     uuid.UUID
	LecturerID uuid.UUID // uuid.Nil kalau bukan dosen
	Role       string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// CanActFor: admin boleh untuk semua dosen, dosen hanya untuk dirinya sendiri.
func (a Actor) CanActFor(lecturerID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == model.RoleDosen && a.LecturerID != uuid.Nil && a.LecturerID == lecturerID
}
