package model

// Kategori domain pengabdian kepada masyarakat.
const (
	KategoriJabatanPimpinan     = "JABATAN_PIMPINAN"
	KategoriPengembanganHasil   = "PENGEMBANGAN_HASIL"
	KategoriPenyuluhan          = "PENYULUHAN"
	KategoriPelayananMasyarakat = "PELAYANAN_MASYARAKAT"
	KategoriKaryaPengabdian     = "KARYA_PENGABDIAN"
)

// Jangka waktu penyuluhan.
const (
	PenyuluhanSatuSemester       = "SATU_SEMESTER"
	PenyuluhanKurangSatuSemester = "KURANG_SATU_SEMESTER"
)

// PenyuluhanDetail: latihan / penyuluhan / penataran kepada masyarakat.
type PenyuluhanDetail struct {
	NamaKegiatan string `json:"namaKegiatan" bson:"namaKegiatan" validate:"required,max=255"`
	Tingkat      string `json:"tingkat" bson:"tingkat" validate:"required,oneof=LOKAL NASIONAL INTERNASIONAL INSIDENTAL"`
	Lokasi       string `json:"lokasi,omitempty" bson:"lokasi,omitempty" validate:"max=255"`
}

func (*PenyuluhanDetail) isDetail() {}
