package service

import (
	"context"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
)

// DocumentStatistics adalah statistik dokumen kegiatan satu domain di MongoDB.
type DocumentStatistics struct {
	Domain         model.Domain               `json:"domain"`
	LecturerID     *uuid.UUID                 `json:"lecturerId,omitempty"`
	TotalDokumen   int64                      `json:"totalDokumen"`
	DenganLampiran int64                      `json:"denganLampiran"`
	TotalNilai     float64                    `json:"totalNilai"`
	PerKategori    []repository.KategoriCount `json:"perKategori"`
}

// ReportService menyediakan statistik dokumen sesuai role pemanggil.
//   - Admin : semua dosen, atau satu dosen bila lecturerID diisi
//   - Dosen : hanya dokumen miliknya sendiri
type ReportService interface {
	DocumentStatistics(ctx context.Context, actor Actor, domain model.Domain, lecturerID *uuid.UUID) (*DocumentStatistics, error)
}

type reportService struct {
	documents repository.DocumentRepository
	log       *utils.Logger
}

// NewReportService membuat instance baru reportService.
func NewReportService(documents repository.DocumentRepository, log *utils.Logger) ReportService {
	return &reportService{documents: documents, log: log.With("component", "report")}
}

func (s *reportService) DocumentStatistics(ctx context.Context, actor Actor, domain model.Domain, lecturerID *uuid.UUID) (*DocumentStatistics, error) {
	switch actor.Role {
	case model.RoleAdmin:
		// filter kosong berarti semua dosen

	case model.RoleDosen:
		if lecturerID != nil && !actor.CanActFor(*lecturerID) {
			return nil, newError(ErrForbidden, "dosen hanya dapat melihat statistik sendiri", nil)
		}
		if actor.LecturerID == uuid.Nil {
			return nil, newError(ErrForbidden, "akun tidak terhubung dengan data dosen", nil)
		}
		own := actor.LecturerID
		lecturerID = &own

	default:
		return nil, newError(ErrForbidden, "role tidak diizinkan mengakses statistik", nil)
	}

	counts, err := s.documents.CountByKategori(ctx, domain, lecturerID)
	if err != nil {
		s.log.Error("statistik dokumen gagal", "domain", domain, "error", err)
		return nil, err
	}

	out := &DocumentStatistics{Domain: domain, LecturerID: lecturerID, PerKategori: counts}
	for _, c := range counts {
		out.TotalDokumen += c.Jumlah
		out.DenganLampiran += c.DenganLampiran
		out.TotalNilai += c.TotalNilai
	}
	return out, nil
}
