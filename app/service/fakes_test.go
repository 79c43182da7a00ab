package service

import (
	"context"
	"sort"
	"sync"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"

	"github.com/google/uuid"
)

// fakeRecords adalah record store di memori. Pembacaan SKS sebelumnya dan
// penyimpanan sengaja tidak atomik supaya race kuota bisa diuji.
type fakeRecords struct {
	mu      sync.Mutex
	recs    map[uuid.UUID]model.ActivityRecord
	seq     map[uuid.UUID]int // urutan pengajuan
	nextSeq int
	between func()

	rows     map[model.Domain][]model.GroupedRow
	queryErr map[model.Domain]error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{
		recs:     make(map[uuid.UUID]model.ActivityRecord),
		seq:      make(map[uuid.UUID]int),
		rows:     make(map[model.Domain][]model.GroupedRow),
		queryErr: make(map[model.Domain]error),
	}
}

func (f *fakeRecords) QueryGroupedSums(_ context.Context, filter repository.RecordFilter, groupBy []repository.GroupKey) ([]model.GroupedRow, error) {
	if err := f.queryErr[filter.Domain]; err != nil {
		return nil, err
	}
	type key [3]string
	merged := map[key]*model.GroupedRow{}
	var order []key
	for _, r := range f.rows[filter.Domain] {
		full := [3]string{r.Kategori, r.JenisKategori, r.SubDetail}
		var k key
		copy(k[:len(groupBy)], full[:len(groupBy)])
		acc, ok := merged[k]
		if !ok {
			acc = &model.GroupedRow{Kategori: k[0], JenisKategori: k[1], SubDetail: k[2]}
			merged[k] = acc
			order = append(order, k)
		}
		acc.Total += r.Total
		acc.Count += r.Count
		acc.Pending += r.Pending
		acc.Approved += r.Approved
		acc.Rejected += r.Rejected
	}
	out := make([]model.GroupedRow, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out, nil
}

func (f *fakeRecords) FindMatching(_ context.Context, filter repository.RecordFilter) ([]model.ActivityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ActivityRecord
	for _, r := range f.recs {
		if filter.Domain != "" && r.Domain != filter.Domain {
			continue
		}
		if filter.LecturerID != nil && r.LecturerID != *filter.LecturerID {
			continue
		}
		if filter.SemesterID != nil && r.SemesterID != *filter.SemesterID {
			continue
		}
		if filter.Kategori != "" && r.Kategori != filter.Kategori {
			continue
		}
		if filter.Status != nil && r.StatusValidasi != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeRecords) FindByID(_ context.Context, id uuid.UUID) (*model.ActivityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRecords) priorSKS(rec *model.ActivityRecord) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	own, existing := f.seq[rec.ID]
	total := 0.0
	for _, r := range f.recs {
		if r.ID == rec.ID || r.StatusValidasi == model.StatusRejected {
			continue
		}
		if existing && f.seq[r.ID] > own {
			continue
		}
		if r.Domain == rec.Domain && r.Kategori == rec.Kategori &&
			r.LecturerID == rec.LecturerID && r.SemesterID == rec.SemesterID {
			total += r.SKS
		}
	}
	return total
}

func (f *fakeRecords) SaveScored(_ context.Context, rec *model.ActivityRecord, isNew bool, score repository.ScoreFunc) error {
	prior := 0.0
	if model.NeedsSKSQuota(rec.Domain, rec.Kategori) {
		prior = f.priorSKS(rec)
	}
	if f.between != nil {
		f.between()
	}
	nilai, err := score(prior)
	if err != nil {
		return err
	}
	rec.NilaiPAK = nilai
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seq[rec.ID]; !ok {
		f.nextSeq++
		f.seq[rec.ID] = f.nextSeq
	}
	f.recs[rec.ID] = *rec
	return nil
}

func (f *fakeRecords) RescoreSKS(_ context.Context, key repository.QuotaKey, score repository.RescoreFunc) (map[uuid.UUID]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var recs []model.ActivityRecord
	for _, r := range f.recs {
		if r.Domain == key.Domain && r.Kategori == key.Kategori &&
			r.LecturerID == key.LecturerID && r.SemesterID == key.SemesterID &&
			r.StatusValidasi != model.StatusRejected {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return f.seq[recs[i].ID] < f.seq[recs[j].ID] })

	changed := map[uuid.UUID]float64{}
	prior := 0.0
	for _, r := range recs {
		nilai := score(r, prior)
		prior += r.SKS
		if nilai != r.NilaiPAK {
			r.NilaiPAK = nilai
			f.recs[r.ID] = r
			changed[r.ID] = nilai
		}
	}
	return changed, nil
}

func (f *fakeRecords) nilai(id uuid.UUID) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[id].NilaiPAK
}

func (f *fakeRecords) UpdateStatus(_ context.Context, id uuid.UUID, patch repository.StatusPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.StatusValidasi != model.StatusPending {
		return repository.ErrNotPending
	}
	r.StatusValidasi = patch.Status
	r.Catatan = patch.Catatan
	r.ReviewerID = patch.ReviewerID
	r.VerifiedAt = patch.VerifiedAt
	f.recs[id] = r
	return nil
}

func (f *fakeRecords) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.recs, id)
	return nil
}

func (f *fakeRecords) set(rec model.ActivityRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs[rec.ID] = rec
}

type fakeDocuments struct {
	mu        sync.Mutex
	docs      map[string]model.ActivityDocument
	upsertErr error
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{docs: make(map[string]model.ActivityDocument)}
}

func (f *fakeDocuments) Upsert(_ context.Context, doc *model.ActivityDocument) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.RecordID] = *doc
	return nil
}

func (f *fakeDocuments) FindByRecordID(_ context.Context, recordID uuid.UUID) (*model.ActivityDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[recordID.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDocuments) DeleteByRecordID(_ context.Context, recordID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[recordID.String()]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, recordID.String())
	return nil
}

func (f *fakeDocuments) UpdateNilai(_ context.Context, recordID uuid.UUID, nilai float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[recordID.String()]
	if !ok {
		return repository.ErrNotFound
	}
	d.NilaiPAK = nilai
	f.docs[recordID.String()] = d
	return nil
}

func (f *fakeDocuments) CountByKategori(_ context.Context, domain model.Domain, lecturerID *uuid.UUID) ([]repository.KategoriCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]*repository.KategoriCount{}
	for _, d := range f.docs {
		if d.Domain != domain || (lecturerID != nil && d.LecturerID != lecturerID.String()) {
			continue
		}
		c, ok := counts[d.Kategori]
		if !ok {
			c = &repository.KategoriCount{Kategori: d.Kategori}
			counts[d.Kategori] = c
		}
		c.Jumlah++
		c.TotalNilai += d.NilaiPAK
		if d.Lampiran != nil {
			c.DenganLampiran++
		}
	}
	out := []repository.KategoriCount{}
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kategori < out[j].Kategori })
	return out, nil
}

type fakeLecturers struct {
	byID map[uuid.UUID]model.Lecturer
}

func newFakeLecturers(lecs ...model.Lecturer) *fakeLecturers {
	f := &fakeLecturers{byID: make(map[uuid.UUID]model.Lecturer)}
	for _, l := range lecs {
		f.byID[l.ID] = l
	}
	return f
}

func (f *fakeLecturers) FindByID(_ context.Context, id uuid.UUID) (*model.Lecturer, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (f *fakeLecturers) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Lecturer, error) {
	for _, l := range f.byID {
		if l.UserID != nil && *l.UserID == userID {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLecturers) FindAll(context.Context) ([]model.Lecturer, error) {
	out := make([]model.Lecturer, 0, len(f.byID))
	for _, l := range f.byID {
		out = append(out, l)
	}
	return out, nil
}

type fakeSemesters struct {
	byID map[uuid.UUID]model.Semester
}

func newFakeSemesters(sems ...model.Semester) *fakeSemesters {
	f := &fakeSemesters{byID: make(map[uuid.UUID]model.Semester)}
	for _, s := range sems {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSemesters) FindByID(_ context.Context, id uuid.UUID) (*model.Semester, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSemesters) FindActive(context.Context) (*model.Semester, error) {
	for _, s := range f.byID {
		if s.IsActive {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSemesters) FindAll(context.Context) ([]model.Semester, error) {
	out := make([]model.Semester, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}
