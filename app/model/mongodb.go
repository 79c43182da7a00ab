package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityDocument menyimpan payload lengkap satu kegiatan di MongoDB
// (collection: activity_documents). Baris ActivityRecord di Postgres menunjuk ke
// dokumen ini lewat DocumentID.
type ActivityDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecordID      string             `bson:"recordId" json:"recordId"`     // activity_records.id (string UUID)
	LecturerID    string             `bson:"lecturerId" json:"lecturerId"` // lecturers.id (string UUID)
	Domain        Domain             `bson:"domain" json:"domain"`
	Kategori      string             `bson:"kategori" json:"kategori"`
	JenisKategori string             `bson:"jenisKategori,omitempty" json:"jenisKategori,omitempty"`
	SubDetail     string             `bson:"subDetail,omitempty" json:"subDetail,omitempty"`
	Judul         string             `bson:"judul" json:"judul"`
	Detail        Detail             `bson:"detail" json:"detail"` // tipe konkret sesuai kategori
	Lampiran      *Attachment        `bson:"lampiran,omitempty" json:"lampiran,omitempty"`
	NilaiPAK      float64            `bson:"nilaiPak" json:"nilaiPak"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Attachment merepresentasikan file bukti kegiatan. File fisiknya dikelola
// layanan upload di luar backend ini; yang disimpan hanya metadata.
type Attachment struct {
	FileName   string    `bson:"fileName" json:"fileName"`
	FileURL    string    `bson:"fileUrl" json:"fileUrl"`
	FileType   string    `bson:"fileType" json:"fileType"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// NewActivityDocument menyusun dokumen Mongo dari record + input yang sudah divalidasi.
func NewActivityDocument(rec *ActivityRecord, in ActivityInput) *ActivityDocument {
	now := time.Now()
	return &ActivityDocument{
		RecordID:      rec.ID.String(),
		LecturerID:    rec.LecturerID.String(),
		Domain:        rec.Domain,
		Kategori:      in.Kategori,
		JenisKategori: in.JenisKategori,
		SubDetail:     in.SubDetail,
		Judul:         in.Judul,
		Detail:        in.Detail,
		Lampiran:      in.Lampiran,
		NilaiPAK:      rec.NilaiPAK,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
