package model

// Kategori domain pendidikan (unsur pendidikan formal & diklat).
const (
	KategoriFormal = "FORMAL"
	KategoriDiklat = "DIKLAT"
)

// Jenjang pendidikan formal.
const (
	JenjangS1 = "S1"
	JenjangS2 = "S2"
	JenjangS3 = "S3"
)

// PendidikanFormalDetail: ijazah jenjang pendidikan formal.
type PendidikanFormalDetail struct {
	NamaInstitusi string `json:"namaInstitusi" bson:"namaInstitusi" validate:"required,max=255"`
	ProgramStudi  string `json:"programStudi" bson:"programStudi" validate:"required,max=255"`
	TahunLulus    int    `json:"tahunLulus" bson:"tahunLulus" validate:"required,gte=1950,lte=2100"`
	NomorIjazah   string `json:"nomorIjazah,omitempty" bson:"nomorIjazah,omitempty" validate:"max=100"`
}

func (*PendidikanFormalDetail) isDetail() {}

// DiklatDetail: pendidikan & pelatihan prajabatan.
type DiklatDetail struct {
	NamaDiklat    string  `json:"namaDiklat" bson:"namaDiklat" validate:"required,max=255"`
	Penyelenggara string  `json:"penyelenggara" bson:"penyelenggara" validate:"required,max=255"`
	DurasiJam     float64 `json:"durasiJam,omitempty" bson:"durasiJam,omitempty" validate:"gte=0"`
}

func (*DiklatDetail) isDetail() {}
