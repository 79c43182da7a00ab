package scoring

import "angka-kredit-backend/app/model"

var nilaiFlatPenunjang = map[string]float64{
	model.KategoriWakilPTPanitiaAntarLembaga: 1,
	model.KategoriBukuPelajaran:              5,
	model.KategoriTimPenilai:                 0.5,
}

var nilaiPerJenisPenunjang = map[string]map[string]float64{
	model.KategoriPanitiaPT: {
		"KETUA_WAKIL": 3,
		"ANGGOTA":     2,
	},
	model.KategoriPanitiaLembagaPemerintah: {
		"KETUA_WAKIL_PUSAT":  3,
		"ANGGOTA_PUSAT":      2,
		"KETUA_WAKIL_DAERAH": 2,
		"ANGGOTA_DAERAH":     1,
	},
	model.KategoriOrganisasiProfesi: {
		"PENGURUS_INTERNASIONAL":                2,
		"ANGGOTA_ATAS_PERMINTAAN_INTERNASIONAL": 1,
		"ANGGOTA_INTERNASIONAL":                 0.5,
		"PENGURUS_NASIONAL":                     1.5,
		"ANGGOTA_ATAS_PERMINTAAN_NASIONAL":      1,
		"ANGGOTA_NASIONAL":                      0.5,
	},
	model.KategoriDelegasiNasional: {
		"KETUA":   3,
		"ANGGOTA": 2,
	},
	model.KategoriPertemuanIlmiah: {
		"KETUA_NASIONAL_INTERNASIONAL":   3,
		"ANGGOTA_NASIONAL_INTERNASIONAL": 2,
		"KETUA_LINGKUP_PT":               2,
		"ANGGOTA_LINGKUP_PT":             1,
	},
	model.KategoriPenghargaan: {
		"SATYALANCANA_30_TAHUN":    3,
		"SATYALANCANA_20_TAHUN":    2,
		"SATYALANCANA_10_TAHUN":    1,
		model.TingkatInternasional: 5,
		model.TingkatNasional:      3,
		model.TingkatDaerah:        1,
	},
	model.KategoriPrestasiOlahragaSeni: {
		model.TingkatInternasional: 5,
		model.TingkatNasional:      3,
		model.TingkatDaerah:        1,
	},
}

func penunjang(in model.ActivityInput, _ Context) float64 {
	if v, ok := nilaiFlatPenunjang[in.Kategori]; ok {
		return v
	}
	return lookup2(nilaiPerJenisPenunjang, in.Kategori, in.JenisKategori)
}
