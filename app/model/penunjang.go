package model

// Kategori domain penunjang tridharma.
const (
	KategoriPanitiaPT                  = "PANITIA_PT"
	KategoriPanitiaLembagaPemerintah   = "PANITIA_LEMBAGA_PEMERINTAH"
	KategoriOrganisasiProfesi          = "ORGANISASI_PROFESI"
	KategoriWakilPTPanitiaAntarLembaga = "WAKIL_PT_PANITIA_ANTAR_LEMBAGA"
	KategoriDelegasiNasional           = "DELEGASI_NASIONAL"
	KategoriPertemuanIlmiah            = "PERTEMUAN_ILMIAH"
	KategoriPenghargaan                = "PENGHARGAAN"
	KategoriBukuPelajaran              = "BUKU_PELAJARAN"
	KategoriPrestasiOlahragaSeni       = "PRESTASI_OLAHRAGA_SENI"
	KategoriTimPenilai                 = "TIM_PENILAI"
)
