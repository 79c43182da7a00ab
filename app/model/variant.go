package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Detail adalah payload khusus sebuah kategori. Tipe konkretnya ditentukan oleh
// pasangan (domain, kategori) lewat detailRegistry, sehingga satu kegiatan tidak
// mungkin membawa field milik kategori lain.
type Detail interface {
	isDetail()
}

// crossChecker dipakai detail yang aturannya bergantung pada jenis/subDetail.
type crossChecker interface {
	check(kategori, jenis, sub string) error
}

// ActivityInput adalah kiriman kegiatan dari dosen (atau admin atas nama dosen).
// Kategori adalah diskriminan; Detail wajib bertipe sesuai kategorinya.
type ActivityInput struct {
	Kategori      string      `json:"kategori"`
	JenisKategori string      `json:"jenisKategori,omitempty"`
	SubDetail     string      `json:"subDetail,omitempty"`
	SemesterID    uuid.UUID   `json:"semesterId"`
	Judul         string      `json:"judul"`
	Tanggal       time.Time   `json:"tanggal"`
	Lampiran      *Attachment `json:"lampiran,omitempty"`
	Detail        Detail      `json:"detail"`
}

// ErrInvalidInput membungkus semua kegagalan decode / validasi kegiatan.
var ErrInvalidInput = errors.New("input kegiatan tidak valid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

var validate = validator.New()

var detailRegistry = map[Domain]map[string]func() Detail{
	DomainPendidikan: {
		KategoriFormal: func() Detail { return &PendidikanFormalDetail{} },
		KategoriDiklat: func() Detail { return &DiklatDetail{} },
	},
	DomainPelaksanaan: {
		KategoriPerkuliahan:                func() Detail { return &PerkuliahanDetail{} },
		KategoriMembimbingSeminar:          func() Detail { return &KegiatanDetail{} },
		KategoriMembimbingKKN:              func() Detail { return &KegiatanDetail{} },
		KategoriBimbinganTugasAkhir:        func() Detail { return &BimbinganTugasAkhirDetail{} },
		KategoriPengujiUjianAkhir:          func() Detail { return &PengujiDetail{} },
		KategoriMembinaKegiatanMahasiswa:   func() Detail { return &KegiatanDetail{} },
		KategoriMengembangkanProgramKuliah: func() Detail { return &KegiatanDetail{} },
		KategoriBahanPengajaran:            func() Detail { return &BahanPengajaranDetail{} },
		KategoriOrasiIlmiah:                func() Detail { return &KegiatanDetail{} },
		KategoriJabatanPimpinanPT:          func() Detail { return &JabatanDetail{} },
		KategoriMembimbingDosen:            func() Detail { return &KegiatanDetail{} },
		KategoriDatasering:                 func() Detail { return &KegiatanDetail{} },
		KategoriPengembanganDiri:           func() Detail { return &PengembanganDiriDetail{} },
	},
	DomainPenelitian: {
		KategoriKaryaIlmiah:                   func() Detail { return &PublikasiDetail{} },
		KategoriDiseminasi:                    func() Detail { return &DiseminasiDetail{} },
		KategoriPenelitianTidakDipublikasikan: func() Detail { return &PublikasiDetail{} },
		KategoriTerjemahanBuku:                func() Detail { return &PublikasiDetail{} },
		KategoriSuntinganBuku:                 func() Detail { return &PublikasiDetail{} },
		KategoriKaryaPaten:                    func() Detail { return &HakKekayaanDetail{} },
		KategoriKaryaNonPaten:                 func() Detail { return &HakKekayaanDetail{} },
		KategoriSeniNonPaten:                  func() Detail { return &HakKekayaanDetail{} },
	},
	DomainPengabdian: {
		KategoriJabatanPimpinan:     func() Detail { return &JabatanDetail{} },
		KategoriPengembanganHasil:   func() Detail { return &KegiatanDetail{} },
		KategoriPenyuluhan:          func() Detail { return &PenyuluhanDetail{} },
		KategoriPelayananMasyarakat: func() Detail { return &KegiatanDetail{} },
		KategoriKaryaPengabdian:     func() Detail { return &PublikasiDetail{} },
	},
	DomainPenunjang: {
		KategoriPanitiaPT:                  func() Detail { return &KegiatanDetail{} },
		KategoriPanitiaLembagaPemerintah:   func() Detail { return &KegiatanDetail{} },
		KategoriOrganisasiProfesi:          func() Detail { return &KegiatanDetail{} },
		KategoriWakilPTPanitiaAntarLembaga: func() Detail { return &KegiatanDetail{} },
		KategoriDelegasiNasional:           func() Detail { return &KegiatanDetail{} },
		KategoriPertemuanIlmiah:            func() Detail { return &KegiatanDetail{} },
		KategoriPenghargaan:                func() Detail { return &PenghargaanDetail{} },
		KategoriBukuPelajaran:              func() Detail { return &PublikasiDetail{} },
		KategoriPrestasiOlahragaSeni:       func() Detail { return &PenghargaanDetail{} },
		KategoriTimPenilai:                 func() Detail { return &KegiatanDetail{} },
	},
}

// NewDetail membuat detail kosong dengan tipe yang benar untuk (domain, kategori).
func NewDetail(domain Domain, kategori string) (Detail, bool) {
	byKategori, ok := detailRegistry[domain]
	if !ok {
		return nil, false
	}
	factory, ok := byKategori[kategori]
	if !ok {
		return nil, false
	}
	return factory(), true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("format tanggal %q tidak dikenal (pakai YYYY-MM-DD)", s)
}

// DecodeActivityInput membaca JSON kegiatan untuk domain tertentu. Detail di-decode
// ke tipe milik kategorinya dengan field asing ditolak.
func DecodeActivityInput(domain Domain, data []byte) (ActivityInput, error) {
	var env struct {
		Kategori      string          `json:"kategori"`
		JenisKategori string          `json:"jenisKategori"`
		SubDetail     string          `json:"subDetail"`
		SemesterID    uuid.UUID       `json:"semesterId"`
		Judul         string          `json:"judul"`
		Tanggal       string          `json:"tanggal"`
		Lampiran      *Attachment     `json:"lampiran"`
		Detail        json.RawMessage `json:"detail"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return ActivityInput{}, invalid("body tidak dapat dibaca: %v", err)
	}

	in := ActivityInput{
		Kategori:      strings.TrimSpace(env.Kategori),
		JenisKategori: strings.TrimSpace(env.JenisKategori),
		SubDetail:     strings.TrimSpace(env.SubDetail),
		SemesterID:    env.SemesterID,
		Judul:         strings.TrimSpace(env.Judul),
		Lampiran:      env.Lampiran,
	}
	if env.Tanggal != "" {
		t, err := parseTanggal(env.Tanggal)
		if err != nil {
			return ActivityInput{}, invalid("%v", err)
		}
		in.Tanggal = t
	}

	detail, ok := NewDetail(domain, in.Kategori)
	if !ok {
		return ActivityInput{}, invalid("kategori %q tidak dikenal untuk domain %s", in.Kategori, domain)
	}
	if len(env.Detail) > 0 && string(env.Detail) != "null" {
		dd := json.NewDecoder(bytes.NewReader(env.Detail))
		dd.DisallowUnknownFields()
		if err := dd.Decode(detail); err != nil {
			return ActivityInput{}, invalid("detail %s: %v", in.Kategori, err)
		}
	}
	in.Detail = detail
	return in, nil
}

// Validate memeriksa bentuk kegiatan terhadap taksonomi dan tipe detail domainnya.
func (in ActivityInput) Validate(domain Domain) error {
	tax, ok := TaxonomyOf(domain)
	if !ok {
		return invalid("domain %q tidak dikenal", domain)
	}
	if err := tax.ValidatePath(in.Kategori, in.JenisKategori, in.SubDetail); err != nil {
		return invalid("%v", err)
	}
	if in.SemesterID == uuid.Nil {
		return invalid("semesterId wajib diisi")
	}
	if strings.TrimSpace(in.Judul) == "" {
		return invalid("judul wajib diisi")
	}
	if in.Tanggal.IsZero() {
		return invalid("tanggal wajib diisi")
	}
	if in.Detail == nil {
		return invalid("detail wajib diisi untuk kategori %s", in.Kategori)
	}
	want, _ := NewDetail(domain, in.Kategori)
	if reflect.TypeOf(want) != reflect.TypeOf(in.Detail) {
		return invalid("detail bertipe %T tidak sesuai kategori %s", in.Detail, in.Kategori)
	}
	if err := validate.Struct(in.Detail); err != nil {
		return invalid("detail %s: %v", in.Kategori, err)
	}
	if cc, ok := in.Detail.(crossChecker); ok {
		if err := cc.check(in.Kategori, in.JenisKategori, in.SubDetail); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

// SKS mengembalikan jumlah SKS untuk kegiatan perkuliahan, selain itu 0.
func (in ActivityInput) SKS() float64 {
	if d, ok := in.Detail.(*PerkuliahanDetail); ok && d != nil {
		return d.SKS
	}
	return 0
}

// NeedsSKSQuota true untuk kegiatan yang nilainya bergantung pada kumulatif SKS semester.
func NeedsSKSQuota(domain Domain, kategori string) bool {
	return domain == DomainPelaksanaan && kategori == KategoriPerkuliahan
}

// Detail yang dipakai lintas domain.

// KegiatanDetail untuk kategori yang tidak punya field penilaian tambahan.
type KegiatanDetail struct {
	NomorSK    string `json:"nomorSk,omitempty" bson:"nomorSk,omitempty" validate:"max=100"`
	Keterangan string `json:"keterangan,omitempty" bson:"keterangan,omitempty" validate:"max=1000"`
}

func (*KegiatanDetail) isDetail() {}

// Peran penulis pada karya tulis.
const (
	PeranPenulisTunggal = "PENULIS_TUNGGAL"
	PeranPenulisUtama   = "PENULIS_UTAMA"
	PeranPenulisAnggota = "PENULIS_ANGGOTA"
)

// PublikasiDetail untuk karya tulis (jurnal, buku, terjemahan, dsb).
type PublikasiDetail struct {
	Penerbit      string `json:"penerbit" bson:"penerbit" validate:"required,max=255"`
	ISSN          string `json:"issn,omitempty" bson:"issn,omitempty" validate:"max=20"`
	ISBN          string `json:"isbn,omitempty" bson:"isbn,omitempty" validate:"max=20"`
	URL           string `json:"url,omitempty" bson:"url,omitempty" validate:"omitempty,url"`
	Peran         string `json:"peran,omitempty" bson:"peran,omitempty" validate:"omitempty,oneof=PENULIS_TUNGGAL PENULIS_UTAMA PENULIS_ANGGOTA"`
	JumlahPenulis int    `json:"jumlahPenulis,omitempty" bson:"jumlahPenulis,omitempty" validate:"gte=0,lte=100"`
}

func (*PublikasiDetail) isDetail() {}

func (d *PublikasiDetail) check(string, string, string) error {
	if d.Peran == PeranPenulisAnggota && d.JumlahPenulis < 2 {
		return errors.New("penulis anggota membutuhkan jumlahPenulis minimal 2")
	}
	return nil
}

// JabatanDetail untuk jabatan struktural / pimpinan.
type JabatanDetail struct {
	NomorSK   string `json:"nomorSk" bson:"nomorSk" validate:"required,max=100"`
	Institusi string `json:"institusi" bson:"institusi" validate:"required,max=255"`
}

func (*JabatanDetail) isDetail() {}

// PenghargaanDetail untuk penghargaan & prestasi.
type PenghargaanDetail struct {
	NamaPenghargaan string `json:"namaPenghargaan" bson:"namaPenghargaan" validate:"required,max=255"`
	Pemberi         string `json:"pemberi" bson:"pemberi" validate:"required,max=255"`
}

func (*PenghargaanDetail) isDetail() {}
