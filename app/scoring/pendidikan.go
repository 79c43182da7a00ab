package scoring

import "angka-kredit-backend/app/model"

const nilaiDiklat = 3

var nilaiJenjang = map[string]float64{
	model.JenjangS2: 150,
	model.JenjangS3: 200,
}

func pendidikan(in model.ActivityInput, _ Context) float64 {
	switch in.Kategori {
	case model.KategoriDiklat:
		return nilaiDiklat
	case model.KategoriFormal:
		return lookup(nilaiJenjang, in.JenisKategori)
	}
	return 0
}
