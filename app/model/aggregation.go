package model

import (
	"encoding/json"
	"sort"
)

// StatusCounts menghitung jumlah kegiatan per status validasi.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// AggregationNode adalah unit ringkasan {total, count, statusCounts} pada satu
// tingkat taksonomi. Jika Children terisi, nilai simpul ini selalu hasil rollup
// dari anak-anaknya.
type AggregationNode struct {
	Total        float64                     `json:"total"`
	Count        int64                       `json:"count"`
	StatusCounts StatusCounts                `json:"statusCounts"`
	Children     map[string]*AggregationNode `json:"-"`

	childLabel string
	hideStatus bool
}

// MarshalJSON menaruh anak di bawah label taksonomi (jenis / detail / sub).
func (n AggregationNode) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"total": n.Total,
		"count": n.Count,
	}
	if !n.hideStatus {
		out["statusCounts"] = n.StatusCounts
	}
	if len(n.Children) > 0 {
		label := n.childLabel
		if label == "" {
			label = "detail"
		}
		out[label] = n.Children
	}
	return json.Marshal(out)
}

// MergeNodes menjumlahkan dua simpul komponen demi komponen. Anak tidak ikut digabung.
func MergeNodes(a, b AggregationNode) AggregationNode {
	return AggregationNode{
		Total: a.Total + b.Total,
		Count: a.Count + b.Count,
		StatusCounts: StatusCounts{
			Pending:  a.StatusCounts.Pending + b.StatusCounts.Pending,
			Approved: a.StatusCounts.Approved + b.StatusCounts.Approved,
			Rejected: a.StatusCounts.Rejected + b.StatusCounts.Rejected,
		},
		hideStatus: a.hideStatus && b.hideStatus,
	}
}

func (n *AggregationNode) addRow(r GroupedRow) {
	merged := MergeNodes(*n, AggregationNode{
		Total: r.Total,
		Count: r.Count,
		StatusCounts: StatusCounts{
			Pending:  r.Pending,
			Approved: r.Approved,
			Rejected: r.Rejected,
		},
	})
	n.Total, n.Count, n.StatusCounts = merged.Total, merged.Count, merged.StatusCounts
}

func sortedKeys(m map[string]*AggregationNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Rollup menghitung ulang simpul dari bawah ke atas: setiap simpul yang punya anak
// diganti nilainya dengan jumlah anak langsungnya. Berlaku untuk kedalaman berapa pun.
func Rollup(n *AggregationNode) {
	if n == nil || len(n.Children) == 0 {
		return
	}
	sum := AggregationNode{hideStatus: n.hideStatus}
	for _, k := range sortedKeys(n.Children) {
		child := n.Children[k]
		Rollup(child)
		sum = MergeNodes(sum, *child)
	}
	n.Total, n.Count, n.StatusCounts = sum.Total, sum.Count, sum.StatusCounts
}

// GroupedRow adalah satu baris hasil query agregat dari record store.
type GroupedRow struct {
	Kategori      string  `gorm:"column:kategori"`
	JenisKategori string  `gorm:"column:jenis_kategori"`
	SubDetail     string  `gorm:"column:sub_detail"`
	Total         float64 `gorm:"column:total"`
	Count         int64   `gorm:"column:count"`
	Pending       int64   `gorm:"column:pending"`
	Approved      int64   `gorm:"column:approved"`
	Rejected      int64   `gorm:"column:rejected"`
}

// AggregationResult memetakan nama kategori ke simpul agregasinya.
type AggregationResult map[string]*AggregationNode

// Prefill membangun pohon bernilai nol dari taksonomi sampai kedalaman depth
// (1 = kategori, 2 = + jenis, 3 = + sub), sehingga bentuk output selalu lengkap.
func (t Taxonomy) Prefill(depth int, includeStatus bool) AggregationResult {
	result := make(AggregationResult, len(t.Categories))
	for _, c := range t.Categories {
		result[c.Key] = prefillNode(c, depth-1, !includeStatus)
	}
	return result
}

func prefillNode(tn TaxonomyNode, remaining int, hideStatus bool) *AggregationNode {
	n := &AggregationNode{childLabel: tn.ChildLabel, hideStatus: hideStatus}
	if remaining <= 0 || len(tn.Children) == 0 {
		return n
	}
	n.Children = make(map[string]*AggregationNode, len(tn.Children))
	for _, c := range tn.Children {
		n.Children[c.Key] = prefillNode(c, remaining-1, hideStatus)
	}
	return n
}

// Fold memasukkan baris agregat ke simpul yang sesuai di pohon hasil Prefill.
// Baris dengan kategori / jenis / sub yang tidak ada di pohon dibuang; jumlah
// baris yang dibuang dikembalikan.
func (r AggregationResult) Fold(rows []GroupedRow) int {
	dropped := 0
	for _, row := range rows {
		node, ok := r[row.Kategori]
		if !ok {
			dropped++
			continue
		}
		for _, key := range []string{row.JenisKategori, row.SubDetail} {
			if key == "" || len(node.Children) == 0 {
				break
			}
			child, ok := node.Children[key]
			if !ok {
				node = nil
				break
			}
			node = child
		}
		if node == nil {
			dropped++
			continue
		}
		node.addRow(row)
	}
	return dropped
}

// RollupAll menjalankan Rollup untuk setiap kategori.
func (r AggregationResult) RollupAll() {
	for _, n := range r {
		Rollup(n)
	}
}

// CalculateSummary menggabungkan semua kategori tingkat atas menjadi satu total.
func CalculateSummary(r AggregationResult) AggregationNode {
	sum := AggregationNode{hideStatus: true}
	if len(r) == 0 {
		sum.hideStatus = false
	}
	for _, k := range sortedKeys(r) {
		sum = MergeNodes(sum, *r[k])
	}
	return sum
}

// WithoutChildren mengembalikan salinan simpul tanpa anak (untuk ringkasan).
func (n AggregationNode) WithoutChildren() AggregationNode {
	n.Children = nil
	return n
}
