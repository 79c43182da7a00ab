package repository

import (
	"context"
	"fmt"
	"time"

	"angka-kredit-backend/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activity_documents"

// KategoriCount adalah statistik dokumen per kategori.
type KategoriCount struct {
	Kategori       string  `bson:"_id" json:"kategori"`
	Jumlah         int64   `bson:"jumlah" json:"jumlah"`
	DenganLampiran int64   `bson:"denganLampiran" json:"denganLampiran"`
	TotalNilai     float64 `bson:"totalNilai" json:"totalNilai"`
}

// DocumentRepository menyimpan payload lengkap kegiatan (detail + lampiran) di MongoDB.
type DocumentRepository interface {
	// Upsert menulis dokumen berdasarkan recordId; createdAt dan _id hanya diisi saat insert.
	Upsert(ctx context.Context, doc *model.ActivityDocument) error
	FindByRecordID(ctx context.Context, recordID uuid.UUID) (*model.ActivityDocument, error)
	DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error
	// UpdateNilai menyalin nilai hasil penilaian ulang ke dokumen.
	UpdateNilai(ctx context.Context, recordID uuid.UUID, nilai float64) error

	// CountByKategori menjalankan pipeline $group per kategori untuk satu domain.
	CountByKategori(ctx context.Context, domain model.Domain, lecturerID *uuid.UUID) ([]KategoriCount, error)
}

type documentRepository struct {
	mongo *mongo.Database
}

// NewDocumentRepository membuat instance DocumentRepository.
func NewDocumentRepository(mongoDB *mongo.Database) DocumentRepository {
	return &documentRepository{mongo: mongoDB}
}

func (r *documentRepository) coll() *mongo.Collection {
	return r.mongo.Collection(activityCollection)
}

// EnsureDocumentIndexes membuat index unik recordId dan index statistik.
func EnsureDocumentIndexes(ctx context.Context, mongoDB *mongo.Database) error {
	_, err := mongoDB.Collection(activityCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recordId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "domain", Value: 1}, {Key: "lecturerId", Value: 1}, {Key: "kategori", Value: 1}}},
	})
	return err
}

func (r *documentRepository) Upsert(ctx context.Context, doc *model.ActivityDocument) error {
	if doc.RecordID == "" {
		return fmt.Errorf("recordId dokumen kosong")
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"lecturerId":    doc.LecturerID,
			"domain":        doc.Domain,
			"kategori":      doc.Kategori,
			"jenisKategori": doc.JenisKategori,
			"subDetail":     doc.SubDetail,
			"judul":         doc.Judul,
			"detail":        doc.Detail,
			"lampiran":      doc.Lampiran,
			"nilaiPak":      doc.NilaiPAK,
			"updatedAt":     now,
		},
		"$setOnInsert": bson.M{
			"_id":       doc.ID,
			"createdAt": now,
		},
	}
	_, err := r.coll().UpdateOne(ctx, bson.M{"recordId": doc.RecordID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert error: %w", err)
	}
	return nil
}

// documentRow menampung dokumen mentah; detail di-decode belakangan karena
// tipenya bergantung pada (domain, kategori).
type documentRow struct {
	ID            primitive.ObjectID `bson:"_id"`
	RecordID      string             `bson:"recordId"`
	LecturerID    string             `bson:"lecturerId"`
	Domain        model.Domain       `bson:"domain"`
	Kategori      string             `bson:"kategori"`
	JenisKategori string             `bson:"jenisKategori"`
	SubDetail     string             `bson:"subDetail"`
	Judul         string             `bson:"judul"`
	Detail        bson.RawValue      `bson:"detail"`
	Lampiran      *model.Attachment  `bson:"lampiran"`
	NilaiPAK      float64            `bson:"nilaiPak"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (row documentRow) toModel() (*model.ActivityDocument, error) {
	doc := &model.ActivityDocument{
		ID:            row.ID,
		RecordID:      row.RecordID,
		LecturerID:    row.LecturerID,
		Domain:        row.Domain,
		Kategori:      row.Kategori,
		JenisKategori: row.JenisKategori,
		SubDetail:     row.SubDetail,
		Judul:         row.Judul,
		Lampiran:      row.Lampiran,
		NilaiPAK:      row.NilaiPAK,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	detail, ok := model.NewDetail(row.Domain, row.Kategori)
	if !ok {
		return doc, nil
	}
	if row.Detail.Type == bsontype.EmbeddedDocument {
		if err := row.Detail.Unmarshal(detail); err != nil {
			return nil, fmt.Errorf("decode detail %s: %w", row.Kategori, err)
		}
	}
	doc.Detail = detail
	return doc, nil
}

func (r *documentRepository) FindByRecordID(ctx context.Context, recordID uuid.UUID) (*model.ActivityDocument, error) {
	var row documentRow
	if err := r.coll().FindOne(ctx, bson.M{"recordId": recordID.String()}).Decode(&row); err != nil {
		return nil, translate(err)
	}
	return row.toModel()
}

func (r *documentRepository) DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"recordId": recordID.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepository) UpdateNilai(ctx context.Context, recordID uuid.UUID, nilai float64) error {
	res, err := r.coll().UpdateOne(ctx,
		bson.M{"recordId": recordID.String()},
		bson.M{"$set": bson.M{"nilaiPak": nilai, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("mongo update nilai error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepository) CountByKategori(ctx context.Context, domain model.Domain, lecturerID *uuid.UUID) ([]KategoriCount, error) {
	match := bson.M{"domain": domain}
	if lecturerID != nil {
		match["lecturerId"] = lecturerID.String()
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$kategori",
			"jumlah": bson.M{"$sum": 1},
			"denganLampiran": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{"$lampiran", nil}}, 1, 0},
			}},
			"totalNilai": bson.M{"$sum": "$nilaiPak"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []KategoriCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
