// Package scoring berisi tabel penilaian angka kredit untuk kelima domain.
// Semua fungsi di sini murni: tidak ada I/O, input yang sama selalu menghasilkan
// nilai yang sama, dan kombinasi kategori yang tidak dikenal bernilai 0.
package scoring

import (
	"math"

	"angka-kredit-backend/app/model"
)

// Context membawa data hidup yang dibutuhkan beberapa aturan.
type Context struct {
	Jabatan  string  // jabatan fungsional dosen pemilik kegiatan
	PriorSKS float64 // SKS perkuliahan yang sudah tercatat di semester yang sama
}

type table func(in model.ActivityInput, c Context) float64

var tables = map[model.Domain]table{
	model.DomainPendidikan:  pendidikan,
	model.DomainPelaksanaan: pelaksanaan,
	model.DomainPenelitian:  penelitian,
	model.DomainPengabdian:  pengabdian,
	model.DomainPenunjang:   penunjang,
}

// Compute menghitung nilai PAK satu kegiatan. Hasilnya tidak pernah negatif.
func Compute(domain model.Domain, in model.ActivityInput, c Context) float64 {
	t, ok := tables[domain]
	if !ok {
		return 0
	}
	v := t(in, c)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// lookup mengambil nilai dari tabel dua tingkat; kunci yang tidak ada bernilai 0.
func lookup(t map[string]float64, key string) float64 {
	return t[key]
}

func lookup2(t map[string]map[string]float64, k1, k2 string) float64 {
	return t[k1][k2]
}
