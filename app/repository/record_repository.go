package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"angka-kredit-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupKey adalah kolom taksonomi yang boleh dipakai untuk GROUP BY.
type GroupKey string

const (
	GroupKategori GroupKey = "kategori"
	GroupJenis    GroupKey = "jenis_kategori"
	GroupSub      GroupKey = "sub_detail"
)

func (g GroupKey) valid() bool {
	switch g {
	case GroupKategori, GroupJenis, GroupSub:
		return true
	}
	return false
}

// GroupPath mengembalikan kolom grouping untuk kedalaman taksonomi tertentu.
func GroupPath(depth int) []GroupKey {
	all := []GroupKey{GroupKategori, GroupJenis, GroupSub}
	if depth < 0 {
		depth = 0
	}
	if depth > len(all) {
		depth = len(all)
	}
	return all[:depth]
}

// RecordFilter adalah predikat pencarian kegiatan. Field nil / kosong diabaikan.
type RecordFilter struct {
	Domain     model.Domain
	LecturerID *uuid.UUID
	SemesterID *uuid.UUID
	Tahun      *int // tahun dari kolom tanggal
	Status     *model.StatusValidasi
	Kategori   string
}

func (f RecordFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Domain != "" {
		q = q.Where("domain = ?", f.Domain)
	}
	if f.LecturerID != nil {
		q = q.Where("lecturer_id = ?", *f.LecturerID)
	}
	if f.SemesterID != nil {
		q = q.Where("semester_id = ?", *f.SemesterID)
	}
	if f.Tahun != nil {
		// rentang tanggal supaya index tetap terpakai (tanpa EXTRACT(YEAR ...))
		start := time.Date(*f.Tahun, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("tanggal >= ? AND tanggal < ?", datatypes.Date(start), datatypes.Date(start.AddDate(1, 0, 0)))
	}
	if f.Status != nil {
		q = q.Where("status_validasi = ?", *f.Status)
	}
	if f.Kategori != "" {
		q = q.Where("kategori = ?", f.Kategori)
	}
	return q
}

// ScoreFunc menghitung nilai PAK dari jumlah SKS semester yang sudah tercatat.
type ScoreFunc func(priorSKS float64) (float64, error)

// StatusPatch adalah perubahan hasil review.
type StatusPatch struct {
	Status     model.StatusValidasi
	Catatan    *string
	ReviewerID *uuid.UUID
	VerifiedAt *time.Time
}

// QuotaKey menunjuk satu kuota SKS: kategori berkuota milik dosen pada satu semester.
type QuotaKey struct {
	Domain     model.Domain
	Kategori   string
	LecturerID uuid.UUID
	SemesterID uuid.UUID
}

// RescoreFunc menghitung nilai record dari SKS yang diajukan sebelumnya.
type RescoreFunc func(rec model.ActivityRecord, prior float64) float64

// RecordRepository adalah record store kegiatan PAK di PostgreSQL.
type RecordRepository interface {
	// QueryGroupedSums mengembalikan total nilai, jumlah, dan hitungan per status
	// untuk setiap grup. groupBy kosong menghasilkan satu baris total.
	QueryGroupedSums(ctx context.Context, filter RecordFilter, groupBy []GroupKey) ([]model.GroupedRow, error)

	FindMatching(ctx context.Context, filter RecordFilter) ([]model.ActivityRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityRecord, error)

	// SaveScored menulis record (insert bila isNew) dengan nilai dari score.
	// Untuk kegiatan berkuota SKS, baris dosen dikunci FOR UPDATE selama
	// pembacaan SKS sebelumnya sampai record tersimpan.
	SaveScored(ctx context.Context, rec *model.ActivityRecord, isNew bool, score ScoreFunc) error

	// RescoreSKS menilai ulang semua record dalam satu kuota SKS sesuai urutan
	// pengajuan dan mengembalikan nilai baru untuk record yang berubah.
	RescoreSKS(ctx context.Context, key QuotaKey, score RescoreFunc) (map[uuid.UUID]float64, error)

	// UpdateStatus hanya berlaku untuk record berstatus PENDING.
	UpdateStatus(ctx context.Context, id uuid.UUID, patch StatusPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository membuat instance RecordRepository berbasis GORM.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

var statusCountColumns = fmt.Sprintf(
	"COUNT(CASE WHEN status_validasi = '%s' THEN 1 END) AS pending, "+
		"COUNT(CASE WHEN status_validasi = '%s' THEN 1 END) AS approved, "+
		"COUNT(CASE WHEN status_validasi = '%s' THEN 1 END) AS rejected",
	model.StatusPending, model.StatusApproved, model.StatusRejected,
)

func (r *recordRepository) QueryGroupedSums(ctx context.Context, filter RecordFilter, groupBy []GroupKey) ([]model.GroupedRow, error) {
	cols := make([]string, 0, len(groupBy))
	for _, g := range groupBy {
		if !g.valid() {
			return nil, fmt.Errorf("kolom grouping %q tidak dikenal", g)
		}
		cols = append(cols, string(g))
	}

	selects := append(append([]string{}, cols...),
		"COALESCE(SUM(nilai_pak), 0) AS total",
		"COUNT(*) AS count",
		statusCountColumns,
	)

	q := filter.apply(r.db.WithContext(ctx).Model(&model.ActivityRecord{})).
		Select(strings.Join(selects, ", "))
	if len(cols) > 0 {
		q = q.Group(strings.Join(cols, ", ")).Order(strings.Join(cols, ", "))
	}

	var rows []model.GroupedRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recordRepository) FindMatching(ctx context.Context, filter RecordFilter) ([]model.ActivityRecord, error) {
	var recs []model.ActivityRecord
	err := filter.apply(r.db.WithContext(ctx)).
		Order("tanggal DESC").
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityRecord, error) {
	var rec model.ActivityRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *recordRepository) SaveScored(ctx context.Context, rec *model.ActivityRecord, isNew bool, score ScoreFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prior := 0.0
		if model.NeedsSKSQuota(rec.Domain, rec.Kategori) {
			// Postgres tidak bisa FOR UPDATE pada agregat, jadi baris dosen
			// dipakai sebagai jangkar kunci untuk kuota SKS per semester.
			var lec model.Lecturer
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", rec.LecturerID).
				First(&lec).Error; err != nil {
				return translate(err)
			}

			p, err := priorSKS(tx, rec, isNew)
			if err != nil {
				return err
			}
			prior = p
		}

		nilai, err := score(prior)
		if err != nil {
			return err
		}
		rec.NilaiPAK = nilai

		if isNew {
			return tx.Create(rec).Error
		}
		return tx.Save(rec).Error
	})
}

// priorSKS menjumlahkan SKS perkuliahan lain milik dosen di semester yang sama,
// tidak termasuk record itu sendiri dan yang sudah REJECTED. Saat update hanya
// record yang diajukan lebih dulu (created_at, lalu id) yang dihitung.
func priorSKS(tx *gorm.DB, rec *model.ActivityRecord, isNew bool) (float64, error) {
	q := quotaScope(tx.Model(&model.ActivityRecord{}), quotaKeyOf(rec)).
		Where("id <> ?", rec.ID)
	if !isNew {
		self := tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.ActivityRecord{}).
			Select("created_at").
			Where("id = ?", rec.ID)
		q = q.Where("(created_at < (?) OR (created_at = (?) AND id < ?))", self, self, rec.ID)
	}

	var total float64
	err := q.Select("COALESCE(SUM(sks), 0)").Row().Scan(&total)
	return total, err
}

func quotaKeyOf(rec *model.ActivityRecord) QuotaKey {
	return QuotaKey{Domain: rec.Domain, Kategori: rec.Kategori, LecturerID: rec.LecturerID, SemesterID: rec.SemesterID}
}

func quotaScope(db *gorm.DB, key QuotaKey) *gorm.DB {
	return db.
		Where("domain = ? AND kategori = ?", key.Domain, key.Kategori).
		Where("lecturer_id = ? AND semester_id = ?", key.LecturerID, key.SemesterID).
		Where("status_validasi <> ?", model.StatusRejected)
}

func (r *recordRepository) RescoreSKS(ctx context.Context, key QuotaKey, score RescoreFunc) (map[uuid.UUID]float64, error) {
	changed := map[uuid.UUID]float64{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lec model.Lecturer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", key.LecturerID).
			First(&lec).Error; err != nil {
			return translate(err)
		}

		var recs []model.ActivityRecord
		if err := quotaScope(tx, key).
			Order("created_at ASC").
			Order("id ASC").
			Find(&recs).Error; err != nil {
			return err
		}

		prior := 0.0
		for _, rec := range recs {
			nilai := score(rec, prior)
			prior += rec.SKS
			if nilai == rec.NilaiPAK {
				continue
			}
			if err := tx.Model(&model.ActivityRecord{}).
				Where("id = ?", rec.ID).
				UpdateColumn("nilai_pak", nilai).Error; err != nil {
				return err
			}
			changed[rec.ID] = nilai
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func (r *recordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, patch StatusPatch) error {
	res := r.db.WithContext(ctx).
		Model(&model.ActivityRecord{}).
		Where("id = ? AND status_validasi = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status_validasi": patch.Status,
			"catatan":         patch.Catatan,
			"reviewer_id":     patch.ReviewerID,
			"verified_at":     patch.VerifiedAt,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// bedakan "tidak ada" dengan "sudah direview"
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrNotPending
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ActivityRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
