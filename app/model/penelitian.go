package model

import "fmt"

// Kategori domain penelitian.
const (
	KategoriKaryaIlmiah                   = "KARYA_ILMIAH"
	KategoriDiseminasi                    = "DISEMINASI"
	KategoriPenelitianTidakDipublikasikan = "PENELITIAN_TIDAK_DIPUBLIKASIKAN"
	KategoriTerjemahanBuku                = "TERJEMAHAN_BUKU"
	KategoriSuntinganBuku                 = "SUNTINGAN_BUKU"
	KategoriKaryaPaten                    = "KARYA_PATEN"
	KategoriKaryaNonPaten                 = "KARYA_NON_PATEN"
	KategoriSeniNonPaten                  = "SENI_NON_PATEN"
)

// Jenis karya ilmiah.
const (
	KaryaBuku        = "BUKU"
	KaryaBookChapter = "BOOK_CHAPTER"
	KaryaJurnal      = "JURNAL"
)

// Jenis buku.
const (
	BukuReferensi = "BUKU_REFERENSI"
	BukuMonograf  = "MONOGRAF"
)

// Peringkat jurnal.
const (
	JurnalInternasionalBereputasi = "JURNAL_INTERNASIONAL_BEREPUTASI"
	JurnalInternasionalTerindeks  = "JURNAL_INTERNASIONAL_TERINDEKS"
	JurnalInternasional           = "JURNAL_INTERNASIONAL"
	JurnalNasionalPeringkat12     = "JURNAL_NASIONAL_TERAKREDITASI_PERINGKAT_1_2"
	JurnalNasionalBahasaPBB       = "JURNAL_NASIONAL_BAHASA_PBB"
	JurnalNasionalPeringkat34     = "JURNAL_NASIONAL_TERAKREDITASI_PERINGKAT_3_4"
	JurnalNasionalPeringkat56     = "JURNAL_NASIONAL_TERAKREDITASI_PERINGKAT_5_6"
	JurnalNasional                = "JURNAL_NASIONAL"
)

// Jenis diseminasi hasil penelitian.
const (
	DiseminasiProsiding             = "PROSIDING_DIPUBLIKASIKAN"
	DiseminasiSeminar               = "SEMINAR_TANPA_PROSIDING"
	DiseminasiProsidingTanpaSeminar = "PROSIDING_TANPA_SEMINAR"
	DiseminasiKoranMajalah          = "KORAN_MAJALAH"
)

// Tingkat cakupan, dipakai beberapa domain.
const (
	TingkatInternasionalBereputasi = "INTERNASIONAL_BEREPUTASI"
	TingkatInternasional           = "INTERNASIONAL"
	TingkatNasional                = "NASIONAL"
	TingkatDaerah                  = "DAERAH"
	TingkatLokal                   = "LOKAL"
	TingkatInsidental              = "INSIDENTAL"
)

// DiseminasiDetail: publikasi di forum ilmiah atau media massa.
type DiseminasiDetail struct {
	NamaForum     string `json:"namaForum" bson:"namaForum" validate:"required,max=255"`
	Tingkat       string `json:"tingkat,omitempty" bson:"tingkat,omitempty" validate:"omitempty,oneof=INTERNASIONAL_BEREPUTASI INTERNASIONAL NASIONAL"`
	Peran         string `json:"peran,omitempty" bson:"peran,omitempty" validate:"omitempty,oneof=PENULIS_TUNGGAL PENULIS_UTAMA PENULIS_ANGGOTA"`
	JumlahPenulis int    `json:"jumlahPenulis,omitempty" bson:"jumlahPenulis,omitempty" validate:"gte=0,lte=100"`
	URL           string `json:"url,omitempty" bson:"url,omitempty" validate:"omitempty,url"`
}

func (*DiseminasiDetail) isDetail() {}

func (d *DiseminasiDetail) check(_, jenis, _ string) error {
	if jenis != DiseminasiKoranMajalah && d.Tingkat == "" {
		return fmt.Errorf("tingkat wajib diisi untuk diseminasi %s", jenis)
	}
	if d.Peran == PeranPenulisAnggota && d.JumlahPenulis < 2 {
		return fmt.Errorf("penulis anggota membutuhkan jumlahPenulis minimal 2")
	}
	return nil
}

// HakKekayaanDetail: paten dan karya non-paten.
type HakKekayaanDetail struct {
	NomorRegistrasi string `json:"nomorRegistrasi" bson:"nomorRegistrasi" validate:"required,max=100"`
	Pemegang        string `json:"pemegang,omitempty" bson:"pemegang,omitempty" validate:"max=255"`
}

func (*HakKekayaanDetail) isDetail() {}
