package scoring

import "angka-kredit-backend/app/model"

var nilaiKaryaIlmiah = map[string]map[string]float64{
	model.KaryaBuku: {
		model.BukuReferensi: 40,
		model.BukuMonograf:  20,
	},
	model.KaryaBookChapter: {
		model.TingkatInternasional: 15,
		model.TingkatNasional:      10,
	},
	model.KaryaJurnal: {
		model.JurnalInternasionalBereputasi: 40,
		model.JurnalInternasionalTerindeks:  30,
		model.JurnalInternasional:           20,
		model.JurnalNasionalPeringkat12:     25,
		model.JurnalNasionalBahasaPBB:       20,
		model.JurnalNasionalPeringkat34:     20,
		model.JurnalNasionalPeringkat56:     15,
		model.JurnalNasional:                10,
	},
}

var nilaiDiseminasi = map[string]map[string]float64{
	model.DiseminasiProsiding: {
		model.TingkatInternasionalBereputasi: 30,
		model.TingkatInternasional:           15,
		model.TingkatNasional:                10,
	},
	model.DiseminasiSeminar: {
		model.TingkatInternasional: 10,
		model.TingkatNasional:      5,
	},
	model.DiseminasiProsidingTanpaSeminar: {
		model.TingkatInternasional: 10,
		model.TingkatNasional:      5,
	},
}

const nilaiKoranMajalah = 1

var nilaiFlatPenelitian = map[string]float64{
	model.KategoriPenelitianTidakDipublikasikan: 3,
	model.KategoriTerjemahanBuku:                15,
	model.KategoriSuntinganBuku:                 10,
}

var nilaiHakKekayaan = map[string]map[string]float64{
	model.KategoriKaryaPaten: {
		model.TingkatInternasional: 60,
		model.TingkatNasional:      40,
		"SEDERHANA":                20,
	},
	model.KategoriKaryaNonPaten: {
		model.TingkatInternasional: 20,
		model.TingkatNasional:      15,
		model.TingkatLokal:         10,
	},
	model.KategoriSeniNonPaten: {
		model.TingkatInternasional: 20,
		model.TingkatNasional:      15,
		model.TingkatLokal:         10,
	},
}

func penelitian(in model.ActivityInput, _ Context) float64 {
	switch in.Kategori {
	case model.KategoriKaryaIlmiah:
		base := lookup2(nilaiKaryaIlmiah, in.JenisKategori, in.SubDetail)
		return base * authorshipOf(in.Detail)
	case model.KategoriDiseminasi:
		d, _ := in.Detail.(*model.DiseminasiDetail)
		if in.JenisKategori == model.DiseminasiKoranMajalah {
			return nilaiKoranMajalah * authorshipOf(d)
		}
		if d == nil {
			return 0
		}
		return lookup2(nilaiDiseminasi, in.JenisKategori, d.Tingkat) * AuthorshipFactor(d.Peran, d.JumlahPenulis)
	case model.KategoriKaryaPaten, model.KategoriKaryaNonPaten, model.KategoriSeniNonPaten:
		return lookup2(nilaiHakKekayaan, in.Kategori, in.JenisKategori)
	}
	return lookup(nilaiFlatPenelitian, in.Kategori) * authorshipOf(in.Detail)
}

func authorshipOf(d model.Detail) float64 {
	switch v := d.(type) {
	case *model.PublikasiDetail:
		if v != nil {
			return AuthorshipFactor(v.Peran, v.JumlahPenulis)
		}
	case *model.DiseminasiDetail:
		if v != nil {
			return AuthorshipFactor(v.Peran, v.JumlahPenulis)
		}
	}
	return 1
}

// AuthorshipFactor membagi nilai karya bersama: penulis utama 60%, sisa 40%
// dibagi rata ke penulis anggota. Tanpa peran berarti penulis tunggal.
func AuthorshipFactor(peran string, jumlahPenulis int) float64 {
	switch peran {
	case "", model.PeranPenulisTunggal:
		return 1
	case model.PeranPenulisUtama:
		if jumlahPenulis <= 1 {
			return 1
		}
		return 0.6
	case model.PeranPenulisAnggota:
		anggota := jumlahPenulis - 1
		if anggota < 1 {
			anggota = 1
		}
		return 0.4 / float64(anggota)
	}
	return 0
}
