package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/scoring"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// satu koneksi: setiap koneksi :memory: adalah database terpisah
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.Role{}, &model.User{}, &model.Lecturer{}, &model.Semester{}, &model.ActivityRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	repo     RecordRepository
	lecturer model.Lecturer
	semester model.Semester
}

func newFixture(t *testing.T, jabatan string) fixture {
	t.Helper()
	db := openTestDB(t)
	lec := model.Lecturer{NIP: "198001012005011001", Nama: "Dr. Sari", Jabatan: jabatan}
	if err := db.Create(&lec).Error; err != nil {
		t.Fatalf("create lecturer: %v", err)
	}
	sem := model.Semester{Nama: "Ganjil 2024/2025", Tahun: 2024, Periode: "GANJIL", IsActive: true}
	if err := db.Create(&sem).Error; err != nil {
		t.Fatalf("create semester: %v", err)
	}
	return fixture{db: db, repo: NewRecordRepository(db), lecturer: lec, semester: sem}
}

func (f fixture) perkuliahan(sks float64) *model.ActivityRecord {
	return &model.ActivityRecord{
		Domain:         model.DomainPelaksanaan,
		LecturerID:     f.lecturer.ID,
		SemesterID:     f.semester.ID,
		Kategori:       model.KategoriPerkuliahan,
		Judul:          "Pemrograman Web",
		Tanggal:        datatypes.Date(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)),
		SKS:            sks,
		StatusValidasi: model.StatusPending,
	}
}

func (f fixture) saveCourse(t *testing.T, sks float64) *model.ActivityRecord {
	t.Helper()
	return f.saveCourseAt(t, sks, time.Time{})
}

// saveCourseAt menyimpan perkuliahan dengan created_at tertentu; waktu nol diisi GORM.
func (f fixture) saveCourseAt(t *testing.T, sks float64, at time.Time) *model.ActivityRecord {
	t.Helper()
	rec := f.perkuliahan(sks)
	rec.CreatedAt = at
	err := f.repo.SaveScored(context.Background(), rec, true, func(prior float64) (float64, error) {
		return scoring.Perkuliahan(sks, prior, f.lecturer.Jabatan), nil
	})
	if err != nil {
		t.Fatalf("SaveScored: %v", err)
	}
	return rec
}

func TestSaveScoredAppliesSKSQuota(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)

	a := f.saveCourse(t, 6)
	if a.NilaiPAK != 6 {
		t.Fatalf("first course = %v, want 6", a.NilaiPAK)
	}
	b := f.saveCourse(t, 7)
	if b.NilaiPAK != 5.5 {
		t.Fatalf("second course = %v, want 5.5", b.NilaiPAK)
	}
}

func TestSaveScoredIgnoresRejectedAndSelf(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()

	old := f.saveCourse(t, 8)
	if err := f.repo.UpdateStatus(ctx, old.ID, StatusPatch{Status: model.StatusRejected}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	kept := f.saveCourse(t, 6)
	if kept.NilaiPAK != 6 {
		t.Fatalf("rejected SKS counted: %v", kept.NilaiPAK)
	}

	// update record yang sama: SKS miliknya sendiri tidak ikut dihitung
	kept.SKS = 9
	err := f.repo.SaveScored(ctx, kept, false, func(prior float64) (float64, error) {
		if prior != 0 {
			t.Errorf("prior = %v, want 0", prior)
		}
		return scoring.Perkuliahan(9, prior, f.lecturer.Jabatan), nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := f.repo.FindByID(ctx, kept.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.NilaiPAK != 9 || got.SKS != 9 {
		t.Fatalf("stored = %+v", got)
	}
}

func (f fixture) rescore(t *testing.T) map[uuid.UUID]float64 {
	t.Helper()
	key := QuotaKey{
		Domain:     model.DomainPelaksanaan,
		Kategori:   model.KategoriPerkuliahan,
		LecturerID: f.lecturer.ID,
		SemesterID: f.semester.ID,
	}
	changed, err := f.repo.RescoreSKS(context.Background(), key, func(rec model.ActivityRecord, prior float64) float64 {
		return scoring.Perkuliahan(rec.SKS, prior, f.lecturer.Jabatan)
	})
	if err != nil {
		t.Fatalf("RescoreSKS: %v", err)
	}
	return changed
}

func TestSaveScoredUpdateCountsOnlyEarlierRecords(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()
	base := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)

	a := f.saveCourseAt(t, 6, base)
	b := f.saveCourseAt(t, 7, base.Add(time.Minute))
	if a.NilaiPAK != 6 || b.NilaiPAK != 5.5 {
		t.Fatalf("A = %v, B = %v, want 6 and 5.5", a.NilaiPAK, b.NilaiPAK)
	}

	// simpan ulang A tanpa perubahan: B diajukan belakangan, jadi tidak dihitung
	err := f.repo.SaveScored(ctx, a, false, func(prior float64) (float64, error) {
		if prior != 0 {
			t.Errorf("prior for A = %v, want 0", prior)
		}
		return scoring.Perkuliahan(a.SKS, prior, f.lecturer.Jabatan), nil
	})
	if err != nil {
		t.Fatalf("update A: %v", err)
	}

	// simpan ulang B: hanya A yang lebih dulu
	err = f.repo.SaveScored(ctx, b, false, func(prior float64) (float64, error) {
		if prior != 6 {
			t.Errorf("prior for B = %v, want 6", prior)
		}
		return scoring.Perkuliahan(b.SKS, prior, f.lecturer.Jabatan), nil
	})
	if err != nil {
		t.Fatalf("update B: %v", err)
	}

	lecturerID := f.lecturer.ID
	rows, err := f.repo.QueryGroupedSums(ctx, RecordFilter{Domain: model.DomainPelaksanaan, LecturerID: &lecturerID}, nil)
	if err != nil {
		t.Fatalf("QueryGroupedSums: %v", err)
	}
	if len(rows) != 1 || rows[0].Total != 11.5 {
		t.Fatalf("total = %+v, want 11.5", rows)
	}
}

func TestRescoreSKSFollowsFilingOrder(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()
	base := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)

	a := f.saveCourseAt(t, 6, base)
	b := f.saveCourseAt(t, 7, base.Add(time.Minute))
	c := f.saveCourseAt(t, 5, base.Add(2*time.Minute))
	if c.NilaiPAK != 2.5 {
		t.Fatalf("C = %v, want 2.5", c.NilaiPAK)
	}

	if changed := f.rescore(t); len(changed) != 0 {
		t.Fatalf("consistent quota rescored: %v", changed)
	}

	if err := f.repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	changed := f.rescore(t)
	if len(changed) != 2 || changed[b.ID] != 7 || changed[c.ID] != 4 {
		t.Fatalf("changed = %v, want B=7 C=4", changed)
	}

	if err := f.repo.UpdateStatus(ctx, b.ID, StatusPatch{Status: model.StatusRejected}); err != nil {
		t.Fatalf("reject B: %v", err)
	}
	changed = f.rescore(t)
	if len(changed) != 1 || changed[c.ID] != 5 {
		t.Fatalf("changed = %v, want C=5", changed)
	}
	got, err := f.repo.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.NilaiPAK != 5 {
		t.Fatalf("stored C = %v, want 5", got.NilaiPAK)
	}
}

func TestSaveScoredUnknownLecturer(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	rec := f.perkuliahan(3)
	rec.LecturerID = uuid.New()
	err := f.repo.SaveScored(context.Background(), rec, true, func(float64) (float64, error) { return 3, nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveScoredScoreErrorRollsBack(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	boom := errors.New("boom")
	err := f.repo.SaveScored(context.Background(), f.perkuliahan(3), true, func(float64) (float64, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	recs, err := f.repo.FindMatching(context.Background(), RecordFilter{})
	if err != nil {
		t.Fatalf("FindMatching: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestQueryGroupedSums(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()

	insert := func(kategori, jenis, sub string, nilai float64, status model.StatusValidasi) {
		rec := &model.ActivityRecord{
			Domain:         model.DomainPenelitian,
			LecturerID:     f.lecturer.ID,
			SemesterID:     f.semester.ID,
			Kategori:       kategori,
			JenisKategori:  jenis,
			SubDetail:      sub,
			Judul:          "karya",
			Tanggal:        datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
			StatusValidasi: status,
		}
		if err := f.repo.SaveScored(ctx, rec, true, func(float64) (float64, error) { return nilai, nil }); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	insert(model.KategoriKaryaIlmiah, model.KaryaJurnal, model.JurnalInternasionalBereputasi, 40, model.StatusApproved)
	insert(model.KategoriKaryaIlmiah, model.KaryaJurnal, model.JurnalNasional, 10, model.StatusPending)
	insert(model.KategoriKaryaIlmiah, model.KaryaJurnal, model.JurnalNasional, 10, model.StatusRejected)
	insert(model.KategoriSuntinganBuku, "", "", 10, model.StatusPending)

	lecturerID := f.lecturer.ID
	filter := RecordFilter{Domain: model.DomainPenelitian, LecturerID: &lecturerID}

	rows, err := f.repo.QueryGroupedSums(ctx, filter, GroupPath(3))
	if err != nil {
		t.Fatalf("QueryGroupedSums: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3: %+v", len(rows), rows)
	}
	var nasional *model.GroupedRow
	for i := range rows {
		if rows[i].SubDetail == model.JurnalNasional {
			nasional = &rows[i]
		}
	}
	if nasional == nil {
		t.Fatalf("no JURNAL_NASIONAL group in %+v", rows)
	}
	if nasional.Total != 20 || nasional.Count != 2 || nasional.Pending != 1 || nasional.Rejected != 1 || nasional.Approved != 0 {
		t.Fatalf("JURNAL_NASIONAL = %+v", *nasional)
	}

	total, err := f.repo.QueryGroupedSums(ctx, filter, nil)
	if err != nil {
		t.Fatalf("QueryGroupedSums total: %v", err)
	}
	if len(total) != 1 || total[0].Total != 70 || total[0].Count != 4 {
		t.Fatalf("total = %+v", total)
	}

	approved := model.StatusApproved
	filter.Status = &approved
	rows, err = f.repo.QueryGroupedSums(ctx, filter, GroupPath(1))
	if err != nil {
		t.Fatalf("QueryGroupedSums approved: %v", err)
	}
	if len(rows) != 1 || rows[0].Kategori != model.KategoriKaryaIlmiah || rows[0].Total != 40 {
		t.Fatalf("approved rows = %+v", rows)
	}

	if _, err := f.repo.QueryGroupedSums(ctx, filter, []GroupKey{"judul; DROP TABLE x"}); err == nil {
		t.Fatalf("unknown group key accepted")
	}
}

func TestQueryGroupedSumsEmpty(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	rows, err := f.repo.QueryGroupedSums(context.Background(), RecordFilter{Domain: model.DomainPengabdian}, GroupPath(2))
	if err != nil {
		t.Fatalf("QueryGroupedSums: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %+v, want none", rows)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()
	rec := f.saveCourse(t, 2)

	reviewer := uuid.New()
	now := time.Now()
	if err := f.repo.UpdateStatus(ctx, rec.ID, StatusPatch{Status: model.StatusApproved, ReviewerID: &reviewer, VerifiedAt: &now}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := f.repo.FindByID(ctx, rec.ID)
	if got.StatusValidasi != model.StatusApproved || got.ReviewerID == nil || *got.ReviewerID != reviewer {
		t.Fatalf("after approve = %+v", got)
	}

	if err := f.repo.UpdateStatus(ctx, rec.ID, StatusPatch{Status: model.StatusRejected}); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second review err = %v, want ErrNotPending", err)
	}
	if err := f.repo.UpdateStatus(ctx, uuid.New(), StatusPatch{Status: model.StatusApproved}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t, model.JabatanLektor)
	ctx := context.Background()
	rec := f.saveCourse(t, 2)

	if err := f.repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.repo.FindByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByID after delete err = %v", err)
	}
	if err := f.repo.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestLecturerAndSemesterRepositories(t *testing.T) {
	f := newFixture(t, model.JabatanAsistenAhli)
	ctx := context.Background()

	lecturers := NewLecturerRepository(f.db)
	got, err := lecturers.FindByID(ctx, f.lecturer.ID)
	if err != nil || got.Jabatan != model.JabatanAsistenAhli {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}
	if _, err := lecturers.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown lecturer err = %v", err)
	}

	semesters := NewSemesterRepository(f.db)
	active, err := semesters.FindActive(ctx)
	if err != nil || active.ID != f.semester.ID {
		t.Fatalf("FindActive = %+v, %v", active, err)
	}
}
