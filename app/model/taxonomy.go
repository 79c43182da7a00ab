package model

import (
	"fmt"
	"strings"
)

// Domain adalah salah satu dari lima unsur penilaian angka kredit.
type Domain string

const (
	DomainPendidikan  Domain = "PENDIDIKAN"
	DomainPelaksanaan Domain = "PELAKSANAAN_PENDIDIKAN"
	DomainPenelitian  Domain = "PENELITIAN"
	DomainPengabdian  Domain = "PENGABDIAN"
	DomainPenunjang   Domain = "PENUNJANG"
)

// Domains mengembalikan kelima domain dalam urutan laporan.
func Domains() []Domain {
	return []Domain{DomainPendidikan, DomainPelaksanaan, DomainPenelitian, DomainPengabdian, DomainPenunjang}
}

// ParseDomain menerima nama domain (case-insensitive, '-' boleh dipakai untuk '_').
func ParseDomain(s string) (Domain, bool) {
	d := Domain(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if _, ok := taxonomies[d]; ok {
		return d, true
	}
	return "", false
}

// TaxonomyNode adalah satu simpul pohon kategori. Simpul tanpa Children adalah daun.
type TaxonomyNode struct {
	Key        string         `json:"key"`
	ChildLabel string         `json:"childLabel,omitempty"` // nama map anak di output agregasi
	Children   []TaxonomyNode `json:"children,omitempty"`
}

// HasSubLevel true jika simpul punya tingkat di bawahnya.
func (n TaxonomyNode) HasSubLevel() bool { return len(n.Children) > 0 }

// Child mencari anak langsung berdasarkan key.
func (n TaxonomyNode) Child(key string) (TaxonomyNode, bool) {
	for _, c := range n.Children {
		if c.Key == key {
			return c, true
		}
	}
	return TaxonomyNode{}, false
}

// SubValues mengembalikan daftar key anak langsung.
func (n TaxonomyNode) SubValues() []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Key)
	}
	return out
}

// Taxonomy adalah pohon kategori statis untuk satu domain. Nilainya tidak boleh
// diubah setelah inisialisasi paket; akses lewat TaxonomyOf.
type Taxonomy struct {
	Domain     Domain         `json:"domain"`
	Categories []TaxonomyNode `json:"categories"`
}

// Category mencari kategori tingkat atas.
func (t Taxonomy) Category(kategori string) (TaxonomyNode, bool) {
	for _, c := range t.Categories {
		if c.Key == kategori {
			return c, true
		}
	}
	return TaxonomyNode{}, false
}

// Depth adalah kedalaman maksimum pohon (1 = kategori saja).
func (t Taxonomy) Depth() int {
	var depth func(nodes []TaxonomyNode) int
	depth = func(nodes []TaxonomyNode) int {
		max := 0
		for _, n := range nodes {
			if d := depth(n.Children); d > max {
				max = d
			}
		}
		if len(nodes) == 0 {
			return 0
		}
		return max + 1
	}
	return depth(t.Categories)
}

// ValidatePath memastikan kombinasi kategori → jenis → subDetail legal:
// setiap tingkat yang punya anak wajib diisi, tingkat daun tidak boleh punya turunan.
func (t Taxonomy) ValidatePath(kategori, jenis, sub string) error {
	cat, ok := t.Category(kategori)
	if !ok {
		return fmt.Errorf("kategori %q tidak dikenal untuk domain %s", kategori, t.Domain)
	}
	path := []string{jenis, sub}
	node := cat
	for i, key := range path {
		if !node.HasSubLevel() {
			for _, rest := range path[i:] {
				if rest != "" {
					return fmt.Errorf("kategori %s tidak memiliki sub tingkat, nilai %q tidak diperbolehkan", kategori, rest)
				}
			}
			return nil
		}
		if key == "" {
			return fmt.Errorf("%s wajib diisi untuk %s (pilihan: %s)", levelName(i), node.Key, strings.Join(node.SubValues(), ", "))
		}
		next, ok := node.Child(key)
		if !ok {
			return fmt.Errorf("%s %q tidak valid untuk %s (pilihan: %s)", levelName(i), key, node.Key, strings.Join(node.SubValues(), ", "))
		}
		node = next
	}
	if node.HasSubLevel() {
		return fmt.Errorf("taksonomi %s lebih dalam dari yang didukung", kategori)
	}
	return nil
}

func levelName(i int) string {
	if i == 0 {
		return "jenisKategori"
	}
	return "subDetail"
}

var taxonomies = map[Domain]Taxonomy{
	DomainPendidikan:  pendidikanTaxonomy,
	DomainPelaksanaan: pelaksanaanTaxonomy,
	DomainPenelitian:  penelitianTaxonomy,
	DomainPengabdian:  pengabdianTaxonomy,
	DomainPenunjang:   penunjangTaxonomy,
}

// TaxonomyOf mengembalikan taksonomi sebuah domain.
func TaxonomyOf(d Domain) (Taxonomy, bool) {
	t, ok := taxonomies[d]
	return t, ok
}

func leaf(key string) TaxonomyNode { return TaxonomyNode{Key: key} }

func branch(key, label string, children ...string) TaxonomyNode {
	n := TaxonomyNode{Key: key, ChildLabel: label}
	for _, c := range children {
		n.Children = append(n.Children, leaf(c))
	}
	return n
}

var pendidikanTaxonomy = Taxonomy{
	Domain: DomainPendidikan,
	Categories: []TaxonomyNode{
		branch(KategoriFormal, "jenis", JenjangS1, JenjangS2, JenjangS3),
		leaf(KategoriDiklat),
	},
}

var pelaksanaanTaxonomy = Taxonomy{
	Domain: DomainPelaksanaan,
	Categories: []TaxonomyNode{
		leaf(KategoriPerkuliahan),
		leaf(KategoriMembimbingSeminar),
		leaf(KategoriMembimbingKKN),
		{
			Key:        KategoriBimbinganTugasAkhir,
			ChildLabel: "detail",
			Children: []TaxonomyNode{
				branch(PembimbingUtama, "subDetail", TugasAkhirDisertasi, TugasAkhirTesis, TugasAkhirSkripsi, TugasAkhirLaporanAkhir),
				branch(PembimbingPendamping, "subDetail", TugasAkhirDisertasi, TugasAkhirTesis, TugasAkhirSkripsi, TugasAkhirLaporanAkhir),
			},
		},
		branch(KategoriPengujiUjianAkhir, "detail", "KETUA_PENGUJI", "ANGGOTA_PENGUJI"),
		leaf(KategoriMembinaKegiatanMahasiswa),
		leaf(KategoriMengembangkanProgramKuliah),
		branch(KategoriBahanPengajaran, "detail", "BUKU_AJAR", "DIKTAT", "MODUL", "PETUNJUK_PRAKTIKUM", "ALAT_BANTU", "AUDIO_VISUAL", "NASKAH_TUTORIAL"),
		leaf(KategoriOrasiIlmiah),
		branch(KategoriJabatanPimpinanPT, "detail", "REKTOR", "WAKIL_REKTOR", "DEKAN", "WAKIL_DEKAN", "KETUA_JURUSAN", "SEKRETARIS_JURUSAN", "KEPALA_LABORATORIUM"),
		branch(KategoriMembimbingDosen, "detail", "PEMBIMBING_PENCANGKOKAN", "PEMBIMBING_REGULER"),
		branch(KategoriDatasering, "detail", "DATASERING", "PENCANGKOKAN"),
		leaf(KategoriPengembanganDiri),
	},
}

var penelitianTaxonomy = Taxonomy{
	Domain: DomainPenelitian,
	Categories: []TaxonomyNode{
		{
			Key:        KategoriKaryaIlmiah,
			ChildLabel: "jenis",
			Children: []TaxonomyNode{
				branch(KaryaBuku, "sub", BukuReferensi, BukuMonograf),
				branch(KaryaBookChapter, "sub", TingkatInternasional, TingkatNasional),
				branch(KaryaJurnal, "sub",
					JurnalInternasionalBereputasi,
					JurnalInternasionalTerindeks,
					JurnalInternasional,
					JurnalNasionalPeringkat12,
					JurnalNasionalBahasaPBB,
					JurnalNasionalPeringkat34,
					JurnalNasionalPeringkat56,
					JurnalNasional,
				),
			},
		},
		branch(KategoriDiseminasi, "jenis", DiseminasiProsiding, DiseminasiSeminar, DiseminasiProsidingTanpaSeminar, DiseminasiKoranMajalah),
		leaf(KategoriPenelitianTidakDipublikasikan),
		leaf(KategoriTerjemahanBuku),
		leaf(KategoriSuntinganBuku),
		branch(KategoriKaryaPaten, "jenis", TingkatInternasional, TingkatNasional, "SEDERHANA"),
		branch(KategoriKaryaNonPaten, "jenis", TingkatInternasional, TingkatNasional, TingkatLokal),
		branch(KategoriSeniNonPaten, "jenis", TingkatInternasional, TingkatNasional, TingkatLokal),
	},
}

var pengabdianTaxonomy = Taxonomy{
	Domain: DomainPengabdian,
	Categories: []TaxonomyNode{
		leaf(KategoriJabatanPimpinan),
		leaf(KategoriPengembanganHasil),
		branch(KategoriPenyuluhan, "jenis", PenyuluhanSatuSemester, PenyuluhanKurangSatuSemester),
		branch(KategoriPelayananMasyarakat, "jenis", "BIDANG_KEAHLIAN", "PENUGASAN_LEMBAGA", "FUNGSI_JABATAN"),
		branch(KategoriKaryaPengabdian, "jenis", "DIPUBLIKASIKAN", "TIDAK_DIPUBLIKASIKAN"),
	},
}

var penunjangTaxonomy = Taxonomy{
	Domain: DomainPenunjang,
	Categories: []TaxonomyNode{
		branch(KategoriPanitiaPT, "jenis", "KETUA_WAKIL", "ANGGOTA"),
		branch(KategoriPanitiaLembagaPemerintah, "jenis", "KETUA_WAKIL_PUSAT", "ANGGOTA_PUSAT", "KETUA_WAKIL_DAERAH", "ANGGOTA_DAERAH"),
		branch(KategoriOrganisasiProfesi, "jenis",
			"PENGURUS_INTERNASIONAL", "ANGGOTA_ATAS_PERMINTAAN_INTERNASIONAL", "ANGGOTA_INTERNASIONAL",
			"PENGURUS_NASIONAL", "ANGGOTA_ATAS_PERMINTAAN_NASIONAL", "ANGGOTA_NASIONAL",
		),
		leaf(KategoriWakilPTPanitiaAntarLembaga),
		branch(KategoriDelegasiNasional, "jenis", "KETUA", "ANGGOTA"),
		branch(KategoriPertemuanIlmiah, "jenis", "KETUA_NASIONAL_INTERNASIONAL", "ANGGOTA_NASIONAL_INTERNASIONAL", "KETUA_LINGKUP_PT", "ANGGOTA_LINGKUP_PT"),
		branch(KategoriPenghargaan, "jenis",
			"SATYALANCANA_30_TAHUN", "SATYALANCANA_20_TAHUN", "SATYALANCANA_10_TAHUN",
			TingkatInternasional, TingkatNasional, TingkatDaerah,
		),
		leaf(KategoriBukuPelajaran),
		branch(KategoriPrestasiOlahragaSeni, "jenis", TingkatInternasional, TingkatNasional, TingkatDaerah),
		leaf(KategoriTimPenilai),
	},
}
