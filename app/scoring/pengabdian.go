package scoring

import "angka-kredit-backend/app/model"

const (
	nilaiJabatanPimpinan   = 5.5
	nilaiPengembanganHasil = 3
)

var nilaiPenyuluhan = map[string]map[string]float64{
	model.PenyuluhanSatuSemester: {
		model.TingkatInternasional: 4,
		model.TingkatNasional:      3,
		model.TingkatLokal:         2,
	},
	model.PenyuluhanKurangSatuSemester: {
		model.TingkatInternasional: 3,
		model.TingkatNasional:      2,
		model.TingkatLokal:         1,
		model.TingkatInsidental:    1,
	},
}

var nilaiPerJenisPengabdian = map[string]map[string]float64{
	model.KategoriPelayananMasyarakat: {
		"BIDANG_KEAHLIAN":   1.5,
		"PENUGASAN_LEMBAGA": 1,
		"FUNGSI_JABATAN":    0.5,
	},
	model.KategoriKaryaPengabdian: {
		"DIPUBLIKASIKAN":       5,
		"TIDAK_DIPUBLIKASIKAN": 3,
	},
}

func pengabdian(in model.ActivityInput, _ Context) float64 {
	switch in.Kategori {
	case model.KategoriJabatanPimpinan:
		return nilaiJabatanPimpinan
	case model.KategoriPengembanganHasil:
		return nilaiPengembanganHasil
	case model.KategoriPenyuluhan:
		d, ok := in.Detail.(*model.PenyuluhanDetail)
		if !ok || d == nil {
			return 0
		}
		return lookup2(nilaiPenyuluhan, in.JenisKategori, d.Tingkat)
	}
	return lookup2(nilaiPerJenisPengabdian, in.Kategori, in.JenisKategori)
}
