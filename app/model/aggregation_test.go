package model

import (
	"encoding/json"
	"testing"

	"pgregory.net/rapid"
)

// nodeGen menghasilkan simpul dengan total kelipatan 0.5 supaya penjumlahan float
// tetap eksak dan sifat asosiatif bisa dibandingkan dengan ==.
func nodeGen() *rapid.Generator[AggregationNode] {
	return rapid.Custom(func(t *rapid.T) AggregationNode {
		return AggregationNode{
			Total: float64(rapid.IntRange(0, 2000).Draw(t, "halfPoints")) / 2,
			Count: rapid.Int64Range(0, 500).Draw(t, "count"),
			StatusCounts: StatusCounts{
				Pending:  rapid.Int64Range(0, 100).Draw(t, "pending"),
				Approved: rapid.Int64Range(0, 100).Draw(t, "approved"),
				Rejected: rapid.Int64Range(0, 100).Draw(t, "rejected"),
			},
		}
	})
}

func sameValues(a, b AggregationNode) bool {
	return a.Total == b.Total && a.Count == b.Count && a.StatusCounts == b.StatusCounts
}

func TestMergeNodesCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := nodeGen().Draw(t, "a")
		b := nodeGen().Draw(t, "b")
		if !sameValues(MergeNodes(a, b), MergeNodes(b, a)) {
			t.Fatalf("merge(a,b) != merge(b,a)")
		}
	})
}

func TestMergeNodesAssociative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := nodeGen().Draw(t, "a")
		b := nodeGen().Draw(t, "b")
		c := nodeGen().Draw(t, "c")
		left := MergeNodes(MergeNodes(a, b), c)
		right := MergeNodes(a, MergeNodes(b, c))
		if !sameValues(left, right) {
			t.Fatalf("merge is not associative: %+v vs %+v", left, right)
		}
	})
}

func TestMergeNodesIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := nodeGen().Draw(t, "a")
		if !sameValues(MergeNodes(a, AggregationNode{}), a) {
			t.Fatalf("zero node is not an identity")
		}
	})
}

func checkRollup(t *rapid.T, path string, n *AggregationNode) {
	if len(n.Children) == 0 {
		return
	}
	var sum AggregationNode
	for k, c := range n.Children {
		checkRollup(t, path+"/"+k, c)
		sum = MergeNodes(sum, *c)
	}
	if !sameValues(sum, *n) {
		t.Fatalf("%s: parent %+v != sum of children %+v", path, *n, sum)
	}
}

func TestRollupInvariantAllDomains(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		domain := rapid.SampledFrom(Domains()).Draw(t, "domain")
		tax, _ := TaxonomyOf(domain)
		result := tax.Prefill(tax.Depth(), true)

		var rows []GroupedRow
		for _, c := range tax.Categories {
			for _, p := range leafPaths(c) {
				if !rapid.Bool().Draw(t, "present") {
					continue
				}
				n := nodeGen().Draw(t, "row")
				rows = append(rows, GroupedRow{
					Kategori: c.Key, JenisKategori: p[0], SubDetail: p[1],
					Total: n.Total, Count: n.Count,
					Pending: n.StatusCounts.Pending, Approved: n.StatusCounts.Approved, Rejected: n.StatusCounts.Rejected,
				})
			}
		}
		if dropped := result.Fold(rows); dropped != 0 {
			t.Fatalf("dropped %d rows built from the taxonomy", dropped)
		}
		result.RollupAll()
		for k, n := range result {
			checkRollup(t, k, n)
		}
	})
}

func leafPaths(c TaxonomyNode) [][2]string {
	if !c.HasSubLevel() {
		return [][2]string{{"", ""}}
	}
	var out [][2]string
	for _, j := range c.Children {
		if !j.HasSubLevel() {
			out = append(out, [2]string{j.Key, ""})
			continue
		}
		for _, s := range j.Children {
			out = append(out, [2]string{j.Key, s.Key})
		}
	}
	return out
}

func TestPrefillIsCompleteWithoutRecords(t *testing.T) {
	for _, d := range Domains() {
		tax, _ := TaxonomyOf(d)
		result := tax.Prefill(tax.Depth(), true)
		if len(result) != len(tax.Categories) {
			t.Fatalf("%s: %d categories, want %d", d, len(result), len(tax.Categories))
		}
		for _, c := range tax.Categories {
			n, ok := result[c.Key]
			if !ok {
				t.Fatalf("%s: missing category %s", d, c.Key)
			}
			if n.Total != 0 || n.Count != 0 {
				t.Fatalf("%s/%s: expected zero node, got %+v", d, c.Key, *n)
			}
			if len(n.Children) != len(c.Children) {
				t.Fatalf("%s/%s: %d children, want %d", d, c.Key, len(n.Children), len(c.Children))
			}
		}
		summary := CalculateSummary(result)
		if summary.Total != 0 || summary.Count != 0 {
			t.Fatalf("%s: summary %+v, want zero", d, summary)
		}
	}
}

func TestFoldDropsUnknownKeys(t *testing.T) {
	tax, _ := TaxonomyOf(DomainPenunjang)
	result := tax.Prefill(2, true)
	rows := []GroupedRow{
		{Kategori: KategoriPanitiaPT, JenisKategori: "ANGGOTA", Total: 4, Count: 2, Pending: 2},
		{Kategori: KategoriPanitiaPT, JenisKategori: "BENDAHARA", Total: 9, Count: 1},
		{Kategori: "KATEGORI_LAMA", Total: 7, Count: 1},
		{Kategori: KategoriTimPenilai, Total: 0.5, Count: 1, Approved: 1},
	}
	if dropped := result.Fold(rows); dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	result.RollupAll()

	if got := result[KategoriPanitiaPT].Total; got != 4 {
		t.Fatalf("PANITIA_PT total = %v, want 4", got)
	}
	if got := result[KategoriPanitiaPT].Children["ANGGOTA"].StatusCounts.Pending; got != 2 {
		t.Fatalf("ANGGOTA pending = %d, want 2", got)
	}
	summary := CalculateSummary(result)
	if summary.Total != 4.5 || summary.Count != 3 {
		t.Fatalf("summary = %+v, want total 4.5 count 3", summary)
	}
}

func TestFoldCategoryOnlyDepth(t *testing.T) {
	tax, _ := TaxonomyOf(DomainPenelitian)
	result := tax.Prefill(1, false)
	result.Fold([]GroupedRow{
		{Kategori: KategoriKaryaIlmiah, Total: 40, Count: 1},
		{Kategori: KategoriKaryaIlmiah, Total: 10, Count: 1},
	})
	result.RollupAll()
	n := result[KategoriKaryaIlmiah]
	if n.Total != 50 || n.Count != 2 || len(n.Children) != 0 {
		t.Fatalf("KARYA_ILMIAH = %+v", *n)
	}
}

func TestAggregationNodeJSON(t *testing.T) {
	tax, _ := TaxonomyOf(DomainPelaksanaan)
	result := tax.Prefill(3, false)
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	bta := decoded[KategoriBimbinganTugasAkhir]
	if _, ok := bta["statusCounts"]; ok {
		t.Fatalf("statusCounts should be hidden")
	}
	detail, ok := bta["detail"].(map[string]any)
	if !ok {
		t.Fatalf("expected detail map, got %v", bta)
	}
	utama, _ := detail[PembimbingUtama].(map[string]any)
	if _, ok := utama["subDetail"]; !ok {
		t.Fatalf("expected subDetail under %s, got %v", PembimbingUtama, utama)
	}
}
