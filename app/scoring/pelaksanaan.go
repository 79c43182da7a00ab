package scoring

import (
	"math"
	"strings"

	"angka-kredit-backend/app/model"
)

// Batas SKS semester yang dinilai penuh ("awal"); kelebihannya dinilai "lanjut".
const KuotaSKSAwal = 10.0

var nilaiFlatPelaksanaan = map[string]float64{
	model.KategoriMembimbingSeminar:          1,
	model.KategoriMembimbingKKN:              1,
	model.KategoriMembinaKegiatanMahasiswa:   2,
	model.KategoriMengembangkanProgramKuliah: 2,
	model.KategoriOrasiIlmiah:                5,
}

var nilaiBimbinganTugasAkhir = map[string]map[string]float64{
	model.PembimbingUtama: {
		model.TugasAkhirDisertasi:    8,
		model.TugasAkhirTesis:        3,
		model.TugasAkhirSkripsi:      1,
		model.TugasAkhirLaporanAkhir: 1,
	},
	model.PembimbingPendamping: {
		model.TugasAkhirDisertasi:    6,
		model.TugasAkhirTesis:        2,
		model.TugasAkhirSkripsi:      0.5,
		model.TugasAkhirLaporanAkhir: 0.5,
	},
}

var nilaiPerJenisPelaksanaan = map[string]map[string]float64{
	model.KategoriPengujiUjianAkhir: {
		"KETUA_PENGUJI":   1,
		"ANGGOTA_PENGUJI": 0.5,
	},
	model.KategoriBahanPengajaran: {
		"BUKU_AJAR":          20,
		"DIKTAT":             5,
		"MODUL":              5,
		"PETUNJUK_PRAKTIKUM": 5,
		"ALAT_BANTU":         5,
		"AUDIO_VISUAL":       5,
		"NASKAH_TUTORIAL":    5,
	},
	model.KategoriJabatanPimpinanPT: {
		"REKTOR":              6,
		"WAKIL_REKTOR":        5,
		"DEKAN":               5,
		"WAKIL_DEKAN":         4,
		"KETUA_JURUSAN":       4,
		"SEKRETARIS_JURUSAN":  3,
		"KEPALA_LABORATORIUM": 3,
	},
	model.KategoriMembimbingDosen: {
		"PEMBIMBING_PENCANGKOKAN": 2,
		"PEMBIMBING_REGULER":      1,
	},
	model.KategoriDatasering: {
		"DATASERING":   5,
		"PENCANGKOKAN": 4,
	},
}

func pelaksanaan(in model.ActivityInput, c Context) float64 {
	switch in.Kategori {
	case model.KategoriPerkuliahan:
		return Perkuliahan(in.SKS(), c.PriorSKS, c.Jabatan)
	case model.KategoriBimbinganTugasAkhir:
		return lookup2(nilaiBimbinganTugasAkhir, in.JenisKategori, in.SubDetail)
	case model.KategoriPengembanganDiri:
		if d, ok := in.Detail.(*model.PengembanganDiriDetail); ok && d != nil {
			return PengembanganDiri(d.DurasiJam)
		}
		return 0
	}
	if v, ok := nilaiFlatPelaksanaan[in.Kategori]; ok {
		return v
	}
	return lookup2(nilaiPerJenisPelaksanaan, in.Kategori, in.JenisKategori)
}

// IsAsistenAhli mengenali jabatan "Asisten Ahli" dalam beberapa penulisan.
func IsAsistenAhli(jabatan string) bool {
	j := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(jabatan, "_", " ")))
	return j == "ASISTEN AHLI"
}

// Perkuliahan menilai SKS baru dengan memperhitungkan SKS yang sudah tercatat:
// SKS dalam kuota awal berbobot 1.0 (0.5 untuk Asisten Ahli), sisanya 0.5 (0.25).
func Perkuliahan(sks, priorSKS float64, jabatan string) float64 {
	if sks <= 0 {
		return 0
	}
	sisaKuota := math.Max(KuotaSKSAwal-math.Max(priorSKS, 0), 0)
	awal := math.Min(sisaKuota, sks)
	lanjut := sks - awal

	bobotAwal, bobotLanjut := 1.0, 0.5
	if IsAsistenAhli(jabatan) {
		bobotAwal, bobotLanjut = 0.5, 0.25
	}
	return awal*bobotAwal + lanjut*bobotLanjut
}

// PengembanganDiri menilai pelatihan berdasarkan total jam.
func PengembanganDiri(jam float64) float64 {
	switch {
	case jam > 960:
		return 15
	case jam >= 641:
		return 9
	case jam >= 481:
		return 6
	case jam >= 161:
		return 3
	case jam >= 81:
		return 2
	case jam >= 30:
		return 1
	case jam >= 10:
		return 0.5
	}
	return 0
}
