package model

import "fmt"

// Kategori domain pelaksanaan pendidikan (pengajaran).
const (
	KategoriPerkuliahan                = "PERKULIAHAN"
	KategoriMembimbingSeminar          = "MEMBIMBING_SEMINAR"
	KategoriMembimbingKKN              = "MEMBIMBING_KKN_PKN_PKL"
	KategoriBimbinganTugasAkhir        = "BIMBINGAN_TUGAS_AKHIR"
	KategoriPengujiUjianAkhir          = "PENGUJI_UJIAN_AKHIR"
	KategoriMembinaKegiatanMahasiswa   = "MEMBINA_KEGIATAN_MAHASISWA"
	KategoriMengembangkanProgramKuliah = "MENGEMBANGKAN_PROGRAM_KULIAH"
	KategoriBahanPengajaran            = "BAHAN_PENGAJARAN"
	KategoriOrasiIlmiah                = "ORASI_ILMIAH"
	KategoriJabatanPimpinanPT          = "JABATAN_PIMPINAN_PT"
	KategoriMembimbingDosen            = "MEMBIMBING_DOSEN"
	KategoriDatasering                 = "DATASERING_PENCANGKOKAN"
	KategoriPengembanganDiri           = "PENGEMBANGAN_DIRI"
)

// Peran pembimbing tugas akhir.
const (
	PembimbingUtama      = "PEMBIMBING_UTAMA"
	PembimbingPendamping = "PEMBIMBING_PENDAMPING"
)

// Jenis tugas akhir yang dibimbing.
const (
	TugasAkhirDisertasi    = "DISERTASI"
	TugasAkhirTesis        = "TESIS"
	TugasAkhirSkripsi      = "SKRIPSI"
	TugasAkhirLaporanAkhir = "LAPORAN_AKHIR"
)

// PerkuliahanDetail: satu mata kuliah yang diampu dalam semester.
type PerkuliahanDetail struct {
	KodeMataKuliah string  `json:"kodeMataKuliah,omitempty" bson:"kodeMataKuliah,omitempty" validate:"max=20"`
	NamaMataKuliah string  `json:"namaMataKuliah" bson:"namaMataKuliah" validate:"required,max=255"`
	SKS            float64 `json:"sks" bson:"sks" validate:"gt=0,lte=24"`
	Kelas          string  `json:"kelas,omitempty" bson:"kelas,omitempty" validate:"max=20"`
}

func (*PerkuliahanDetail) isDetail() {}

// BimbinganTugasAkhirDetail: satu mahasiswa bimbingan yang lulus.
type BimbinganTugasAkhirDetail struct {
	NamaMahasiswa   string `json:"namaMahasiswa" bson:"namaMahasiswa" validate:"required,max=255"`
	NIM             string `json:"nim" bson:"nim" validate:"required,max=30"`
	JudulTugasAkhir string `json:"judulTugasAkhir,omitempty" bson:"judulTugasAkhir,omitempty" validate:"max=500"`
}

func (*BimbinganTugasAkhirDetail) isDetail() {}

// PengujiDetail: keikutsertaan sebagai penguji ujian akhir.
type PengujiDetail struct {
	NamaMahasiswa string `json:"namaMahasiswa" bson:"namaMahasiswa" validate:"required,max=255"`
	NIM           string `json:"nim" bson:"nim" validate:"required,max=30"`
}

func (*PengujiDetail) isDetail() {}

// BahanPengajaranDetail: buku ajar, diktat, modul, dsb.
type BahanPengajaranDetail struct {
	JudulBahan string `json:"judulBahan" bson:"judulBahan" validate:"required,max=255"`
	ISBN       string `json:"isbn,omitempty" bson:"isbn,omitempty" validate:"max=20"`
	Penerbit   string `json:"penerbit,omitempty" bson:"penerbit,omitempty" validate:"max=255"`
}

func (*BahanPengajaranDetail) isDetail() {}

func (d *BahanPengajaranDetail) check(_, jenis, _ string) error {
	if jenis == "BUKU_AJAR" && d.ISBN == "" {
		return fmt.Errorf("buku ajar wajib mencantumkan ISBN")
	}
	return nil
}

// PengembanganDiriDetail: pelatihan pengembangan diri, dinilai dari durasi.
type PengembanganDiriDetail struct {
	NamaKegiatan  string  `json:"namaKegiatan" bson:"namaKegiatan" validate:"required,max=255"`
	Penyelenggara string  `json:"penyelenggara,omitempty" bson:"penyelenggara,omitempty" validate:"max=255"`
	DurasiJam     float64 `json:"durasiJam" bson:"durasiJam" validate:"gt=0"`
}

func (*PengembanganDiriDetail) isDetail() {}
