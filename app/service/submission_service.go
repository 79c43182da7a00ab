package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/app/scoring"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

// PreviewResult adalah hasil hitung nilai tanpa menyimpan.
type PreviewResult struct {
	NilaiPAK float64 `json:"nilaiPak"`
	PriorSKS float64 `json:"priorSks,omitempty"`
	Jabatan  string  `json:"jabatan"`
}

// SubmissionService mengelola alur kegiatan: simpan + nilai, ubah, hapus, review.
type SubmissionService interface {
	Preview(ctx context.Context, lecturerID uuid.UUID, domain model.Domain, in model.ActivityInput) (*PreviewResult, error)
	Create(ctx context.Context, actor Actor, lecturerID uuid.UUID, domain model.Domain, in model.ActivityInput) (*model.ActivityRecord, error)
	// Update menilai ulang kegiatan dan mengembalikan statusnya ke PENDING.
	Update(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID, in model.ActivityInput) (*model.ActivityRecord, error)
	Delete(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID) error
	// Verify: PENDING -> APPROVED | REJECTED, catatan wajib untuk REJECTED.
	Verify(ctx context.Context, reviewer Actor, domain model.Domain, recordID uuid.UUID, status model.StatusValidasi, catatan string) (*model.ActivityRecord, error)
	List(ctx context.Context, actor Actor, filter repository.RecordFilter) ([]model.ActivityRecord, error)
	// Detail mengembalikan record beserta dokumen Mongo-nya.
	Detail(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID) (*RecordDetail, error)
}

// RecordDetail menggabungkan baris Postgres dan dokumen Mongo satu kegiatan.
type RecordDetail struct {
	Record   *model.ActivityRecord   `json:"record"`
	Document *model.ActivityDocument `json:"document,omitempty"`
}

type submissionService struct {
	records   repository.RecordRepository
	documents repository.DocumentRepository
	lecturers repository.LecturerRepository
	semesters repository.SemesterRepository
	locks     *sksLocker
	log       *utils.Logger
	now       func() time.Time
}

// NewSubmissionService menghubungkan service dengan repository.
func NewSubmissionService(
	records repository.RecordRepository,
	documents repository.DocumentRepository,
	lecturers repository.LecturerRepository,
	semesters repository.SemesterRepository,
	log *utils.Logger,
) SubmissionService {
	return &submissionService{
		records:   records,
		documents: documents,
		lecturers: lecturers,
		semesters: semesters,
		locks:     newSKSLocker(),
		log:       log.With("component", "submission"),
		now:       time.Now,
	}
}

// prepare memvalidasi input dan memuat dosen + semester yang dirujuk.
func (s *submissionService) prepare(ctx context.Context, lecturerID uuid.UUID, domain model.Domain, in model.ActivityInput) (*model.Lecturer, error) {
	if err := in.Validate(domain); err != nil {
		return nil, validationError(err)
	}
	lec, err := s.lecturers.FindByID(ctx, lecturerID)
	if err != nil {
		return nil, wrapRepo("dosen tidak ditemukan", err)
	}
	if _, err := s.semesters.FindByID(ctx, in.SemesterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrValidation, "semesterId tidak dikenal", nil)
		}
		return nil, err
	}
	return lec, nil
}

func scoreFunc(domain model.Domain, in model.ActivityInput, jabatan string) repository.ScoreFunc {
	return func(prior float64) (float64, error) {
		return scoring.Compute(domain, in, scoring.Context{Jabatan: jabatan, PriorSKS: prior}), nil
	}
}

// lockQuota mengambil kunci in-process bila kegiatan memakai kuota SKS.
func (s *submissionService) lockQuota(domain model.Domain, in model.ActivityInput, lecturerID uuid.UUID) func() {
	if !model.NeedsSKSQuota(domain, in.Kategori) {
		return func() {}
	}
	return s.locks.Lock(lecturerID, in.SemesterID)
}

func quotaKey(rec *model.ActivityRecord) repository.QuotaKey {
	return repository.QuotaKey{Domain: rec.Domain, Kategori: rec.Kategori, LecturerID: rec.LecturerID, SemesterID: rec.SemesterID}
}

// rescoreQuota menilai ulang kuota SKS yang tersentuh dan menyalin nilai baru ke Mongo.
// Kegagalan hanya dicatat: perubahan utama sudah tersimpan.
func (s *submissionService) rescoreQuota(ctx context.Context, keys ...repository.QuotaKey) map[uuid.UUID]float64 {
	changed := map[uuid.UUID]float64{}
	seen := map[repository.QuotaKey]bool{}
	for _, key := range keys {
		if !model.NeedsSKSQuota(key.Domain, key.Kategori) || seen[key] {
			continue
		}
		seen[key] = true

		lec, err := s.lecturers.FindByID(ctx, key.LecturerID)
		if err != nil {
			s.log.Error("penilaian ulang kuota SKS gagal", "lecturerId", key.LecturerID, "error", err)
			continue
		}
		unlock := s.locks.Lock(key.LecturerID, key.SemesterID)
		updated, err := s.records.RescoreSKS(ctx, key, func(rec model.ActivityRecord, prior float64) float64 {
			return scoring.Perkuliahan(rec.SKS, prior, lec.Jabatan)
		})
		unlock()
		if err != nil {
			s.log.Error("penilaian ulang kuota SKS gagal", "lecturerId", key.LecturerID, "semesterId", key.SemesterID, "error", err)
			continue
		}

		for id, nilai := range updated {
			changed[id] = nilai
			if err := s.documents.UpdateNilai(ctx, id, nilai); err != nil && !errors.Is(err, repository.ErrNotFound) {
				s.log.Warn("nilai dokumen gagal diperbarui", "recordId", id, "error", err)
			}
		}
		if len(updated) > 0 {
			s.log.Info("kuota SKS dinilai ulang", "lecturerId", key.LecturerID, "semesterId", key.SemesterID, "berubah", len(updated))
		}
	}
	return changed
}

func (s *submissionService) Preview(ctx context.Context, lecturerID uuid.UUID, domain model.Domain, in model.ActivityInput) (*PreviewResult, error) {
	lec, err := s.prepare(ctx, lecturerID, domain, in)
	if err != nil {
		return nil, err
	}

	prior := 0.0
	if model.NeedsSKSQuota(domain, in.Kategori) {
		semesterID := in.SemesterID
		recs, err := s.records.FindMatching(ctx, repository.RecordFilter{
			Domain:     domain,
			LecturerID: &lec.ID,
			SemesterID: &semesterID,
			Kategori:   in.Kategori,
		})
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			if r.StatusValidasi != model.StatusRejected {
				prior += r.SKS
			}
		}
	}

	return &PreviewResult{
		NilaiPAK: scoring.Compute(domain, in, scoring.Context{Jabatan: lec.Jabatan, PriorSKS: prior}),
		PriorSKS: prior,
		Jabatan:  lec.Jabatan,
	}, nil
}

func applyInput(rec *model.ActivityRecord, in model.ActivityInput) {
	rec.Kategori = in.Kategori
	rec.JenisKategori = in.JenisKategori
	rec.SubDetail = in.SubDetail
	rec.SemesterID = in.SemesterID
	rec.Judul = in.Judul
	rec.Tanggal = datatypes.Date(in.Tanggal)
	rec.SKS = in.SKS()
}

func (s *submissionService) Create(ctx context.Context, actor Actor, lecturerID uuid.UUID, domain model.Domain, in model.ActivityInput) (*model.ActivityRecord, error) {
	// 1. Cek kepemilikan
	if !actor.CanActFor(lecturerID) {
		return nil, newError(ErrForbidden, "anda tidak berhak menambah kegiatan dosen ini", nil)
	}
	// 2. Validasi input, dosen, dan semester
	lec, err := s.prepare(ctx, lecturerID, domain, in)
	if err != nil {
		return nil, err
	}

	oid := primitive.NewObjectID()
	rec := &model.ActivityRecord{
		ID:             uuid.New(),
		Domain:         domain,
		LecturerID:     lec.ID,
		StatusValidasi: model.StatusPending,
		DocumentID:     oid.Hex(),
	}
	applyInput(rec, in)

	// 3. Hitung nilai dan simpan baris Postgres (kuota SKS dikunci)
	unlock := s.lockQuota(domain, in, lec.ID)
	err = s.records.SaveScored(ctx, rec, true, scoreFunc(domain, in, lec.Jabatan))
	unlock()
	if err != nil {
		return nil, wrapRepo("gagal menyimpan kegiatan", err)
	}

	// 4. Simpan detail lengkap ke MongoDB
	doc := model.NewActivityDocument(rec, in)
	doc.ID = oid
	if err := s.documents.Upsert(ctx, doc); err != nil {
		// rollback baris Postgres jika dokumen gagal disimpan
		if delErr := s.records.Delete(ctx, rec.ID); delErr != nil {
			s.log.Error("rollback record gagal", "recordId", rec.ID, "error", delErr)
		}
		return nil, err
	}

	s.log.Info("kegiatan dibuat",
		"recordId", rec.ID, "domain", domain, "kategori", rec.Kategori,
		"lecturerId", rec.LecturerID, "nilaiPak", rec.NilaiPAK)
	return rec, nil
}

// load mengambil record milik domain tertentu; record domain lain dianggap tidak ada.
func (s *submissionService) load(ctx context.Context, domain model.Domain, recordID uuid.UUID) (*model.ActivityRecord, error) {
	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, wrapRepo("kegiatan tidak ditemukan", err)
	}
	if rec.Domain != domain {
		return nil, newError(ErrNotFound, "kegiatan tidak ditemukan", nil)
	}
	return rec, nil
}

func (s *submissionService) Update(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID, in model.ActivityInput) (*model.ActivityRecord, error) {
	rec, err := s.load(ctx, domain, recordID)
	if err != nil {
		return nil, err
	}
	// 1. Cek kepemilikan
	if !actor.CanActFor(rec.LecturerID) {
		return nil, newError(ErrForbidden, "anda tidak berhak mengubah kegiatan ini", nil)
	}
	lec, err := s.prepare(ctx, rec.LecturerID, domain, in)
	if err != nil {
		return nil, err
	}

	// 2. Terapkan input baru, status kembali ke PENDING
	prev := *rec
	applyInput(rec, in)
	rec.StatusValidasi = model.StatusPending
	rec.Catatan = nil
	rec.ReviewerID = nil
	rec.VerifiedAt = nil
	if rec.DocumentID == "" {
		rec.DocumentID = primitive.NewObjectID().Hex()
	}

	// lampiran lama tetap dipakai kalau tidak ada yang baru
	if in.Lampiran == nil {
		if old, err := s.documents.FindByRecordID(ctx, rec.ID); err == nil {
			in.Lampiran = old.Lampiran
		}
	}

	// 3. Nilai ulang; SKS yang dihitung hanya dari kegiatan yang diajukan lebih dulu
	unlock := s.lockQuota(domain, in, lec.ID)
	err = s.records.SaveScored(ctx, rec, false, scoreFunc(domain, in, lec.Jabatan))
	unlock()
	if err != nil {
		return nil, wrapRepo("gagal menyimpan kegiatan", err)
	}

	// 4. Perbarui dokumen Mongo, rollback baris Postgres bila gagal
	doc := model.NewActivityDocument(rec, in)
	if oid, err := primitive.ObjectIDFromHex(rec.DocumentID); err == nil {
		doc.ID = oid
	}
	if err := s.documents.Upsert(ctx, doc); err != nil {
		restore := func(float64) (float64, error) { return prev.NilaiPAK, nil }
		if rbErr := s.records.SaveScored(ctx, &prev, false, restore); rbErr != nil {
			s.log.Error("rollback record gagal", "recordId", rec.ID, "error", rbErr)
		}
		return nil, err
	}

	// 5. Kegiatan sesudahnya di kuota lama maupun baru ikut dinilai ulang
	changed := s.rescoreQuota(ctx, quotaKey(&prev), quotaKey(rec))
	if nilai, ok := changed[rec.ID]; ok {
		rec.NilaiPAK = nilai
	}

	s.log.Info("kegiatan diperbarui", "recordId", rec.ID, "nilaiPak", rec.NilaiPAK, "nilaiSebelumnya", prev.NilaiPAK)
	return rec, nil
}

func (s *submissionService) Delete(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID) error {
	rec, err := s.load(ctx, domain, recordID)
	if err != nil {
		return err
	}
	if !actor.CanActFor(rec.LecturerID) {
		return newError(ErrForbidden, "anda tidak berhak menghapus kegiatan ini", nil)
	}
	// 1. Hapus baris Postgres, lalu dokumen Mongo
	if err := s.records.Delete(ctx, rec.ID); err != nil {
		return wrapRepo("gagal menghapus kegiatan", err)
	}
	if err := s.documents.DeleteByRecordID(ctx, rec.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		// baris utama sudah terhapus; dokumen yatim hanya dicatat
		s.log.Warn("dokumen kegiatan gagal dihapus", "recordId", rec.ID, "error", err)
	}
	// 2. SKS yang dilepas dipakai ulang oleh kegiatan sesudahnya
	s.rescoreQuota(ctx, quotaKey(rec))
	s.log.Info("kegiatan dihapus", "recordId", rec.ID, "domain", domain)
	return nil
}

func (s *submissionService) Verify(ctx context.Context, reviewer Actor, domain model.Domain, recordID uuid.UUID, status model.StatusValidasi, catatan string) (*model.ActivityRecord, error) {
	if !reviewer.IsAdmin() {
		return nil, newError(ErrForbidden, "hanya admin yang dapat memvalidasi kegiatan", nil)
	}
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, newError(ErrValidation, "status harus APPROVED atau REJECTED", nil)
	}
	catatan = strings.TrimSpace(catatan)
	if status == model.StatusRejected && catatan == "" {
		return nil, newError(ErrValidation, "catatan wajib diisi untuk penolakan", nil)
	}

	// 1. Cari kegiatan dan cek status awal
	rec, err := s.load(ctx, domain, recordID)
	if err != nil {
		return nil, err
	}
	if rec.StatusValidasi != model.StatusPending {
		s.log.Warn("transisi status ditolak", "recordId", rec.ID, "from", rec.StatusValidasi, "to", status)
		return nil, newError(ErrInvalidTransition, "kegiatan sudah divalidasi", nil)
	}

	// 2. Update status; repository menolak bila sudah tidak PENDING
	now := s.now()
	patch := repository.StatusPatch{
		Status:     status,
		ReviewerID: &reviewer.UserID,
		VerifiedAt: &now,
	}
	if catatan != "" {
		patch.Catatan = &catatan
	}
	if err := s.records.UpdateStatus(ctx, rec.ID, patch); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, newError(ErrInvalidTransition, "kegiatan sudah divalidasi", err)
		}
		return nil, wrapRepo("gagal memvalidasi kegiatan", err)
	}

	// 3. SKS kegiatan yang ditolak tidak lagi memakai kuota
	if status == model.StatusRejected {
		s.rescoreQuota(ctx, quotaKey(rec))
	}

	s.log.Info("kegiatan divalidasi", "recordId", rec.ID, "status", status, "reviewerId", reviewer.UserID)
	return s.records.FindByID(ctx, rec.ID)
}

func (s *submissionService) List(ctx context.Context, actor Actor, filter repository.RecordFilter) ([]model.ActivityRecord, error) {
	if !actor.IsAdmin() {
		if filter.LecturerID != nil && !actor.CanActFor(*filter.LecturerID) {
			return nil, newError(ErrForbidden, "anda hanya dapat melihat kegiatan sendiri", nil)
		}
		if actor.LecturerID == uuid.Nil {
			return nil, newError(ErrForbidden, "akun tidak terhubung dengan data dosen", nil)
		}
		own := actor.LecturerID
		filter.LecturerID = &own
	}
	return s.records.FindMatching(ctx, filter)
}

func (s *submissionService) Detail(ctx context.Context, actor Actor, domain model.Domain, recordID uuid.UUID) (*RecordDetail, error) {
	rec, err := s.load(ctx, domain, recordID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(rec.LecturerID) {
		return nil, newError(ErrForbidden, "anda tidak berhak melihat kegiatan ini", nil)
	}
	doc, err := s.documents.FindByRecordID(ctx, rec.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &RecordDetail{Record: rec, Document: doc}, nil
}
