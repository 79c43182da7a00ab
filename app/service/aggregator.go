package service

import (
	"context"
	"fmt"
	"time"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
)

// GroupedSumQuerier adalah bagian record store yang dibutuhkan agregator.
type GroupedSumQuerier interface {
	QueryGroupedSums(ctx context.Context, filter repository.RecordFilter, groupBy []repository.GroupKey) ([]model.GroupedRow, error)
}

// AggregateFilter membatasi record yang ikut direkap.
type AggregateFilter struct {
	SemesterID *uuid.UUID
	Tahun      *int
	Status     *model.StatusValidasi
}

// AggregateOptions mengatur kedalaman pohon hasil rekap.
type AggregateOptions struct {
	IncludeDetail    bool // tingkat jenis / detail
	IncludeSubDetail bool // tingkat ketiga, hanya berlaku bila IncludeDetail
	IncludeStatus    bool
	Filter           AggregateFilter
}

// FormattedResult adalah bentuk rekap untuk API.
type FormattedResult struct {
	Data        model.AggregationResult `json:"data"`
	Summary     model.AggregationNode   `json:"summary"`
	LastUpdated time.Time               `json:"lastUpdated"`
}

// DomainAggregator merekap kegiatan satu domain mengikuti taksonominya:
// prefill pohon nol, fold baris hasil GROUP BY, lalu rollup.
type DomainAggregator struct {
	domain   model.Domain
	taxonomy model.Taxonomy
	records  GroupedSumQuerier
	log      *utils.Logger
	now      func() time.Time
}

// NewDomainAggregator membuat agregator untuk satu domain.
func NewDomainAggregator(domain model.Domain, records GroupedSumQuerier, log *utils.Logger) (*DomainAggregator, error) {
	tax, ok := model.TaxonomyOf(domain)
	if !ok {
		return nil, fmt.Errorf("domain %q tidak dikenal", domain)
	}
	return &DomainAggregator{
		domain:   domain,
		taxonomy: tax,
		records:  records,
		log:      log.With("component", "aggregator", "domain", domain),
		now:      time.Now,
	}, nil
}

// NewAggregators membuat kelima agregator domain.
func NewAggregators(records GroupedSumQuerier, log *utils.Logger) map[model.Domain]*DomainAggregator {
	out := make(map[model.Domain]*DomainAggregator, len(model.Domains()))
	for _, d := range model.Domains() {
		agg, _ := NewDomainAggregator(d, records, log)
		out[d] = agg
	}
	return out
}

func (a *DomainAggregator) Domain() model.Domain { return a.domain }

func (a *DomainAggregator) depth(opts AggregateOptions) int {
	depth := 1
	if opts.IncludeDetail {
		depth = 2
		if opts.IncludeSubDetail {
			depth = 3
		}
	}
	if maxDepth := a.taxonomy.Depth(); depth > maxDepth {
		depth = maxDepth
	}
	return depth
}

func (a *DomainAggregator) recordFilter(lecturerID *uuid.UUID, f AggregateFilter) repository.RecordFilter {
	return repository.RecordFilter{
		Domain:     a.domain,
		LecturerID: lecturerID,
		SemesterID: f.SemesterID,
		Tahun:      f.Tahun,
		Status:     f.Status,
	}
}

func (a *DomainAggregator) build(ctx context.Context, lecturerID *uuid.UUID, depth int, includeStatus bool, f AggregateFilter) (model.AggregationResult, error) {
	rows, err := a.records.QueryGroupedSums(ctx, a.recordFilter(lecturerID, f), repository.GroupPath(depth))
	if err != nil {
		return nil, fmt.Errorf("rekap %s: %w", a.domain, err)
	}

	result := a.taxonomy.Prefill(depth, includeStatus)
	if dropped := result.Fold(rows); dropped > 0 {
		a.log.Warn("baris rekap di luar taksonomi dibuang", "dropped", dropped, "lecturerId", lecturerID)
	}
	result.RollupAll()
	return result, nil
}

// AggregateByDosen merekap kegiatan satu dosen; lecturerID nil berarti semua dosen.
func (a *DomainAggregator) AggregateByDosen(ctx context.Context, lecturerID *uuid.UUID, opts AggregateOptions) (model.AggregationResult, error) {
	return a.build(ctx, lecturerID, a.depth(opts), opts.IncludeStatus, opts.Filter)
}

// GetSummary adalah rekap dangkal: satu total untuk seluruh domain.
func (a *DomainAggregator) GetSummary(ctx context.Context, lecturerID *uuid.UUID, f AggregateFilter) (model.AggregationNode, error) {
	result, err := a.build(ctx, lecturerID, 1, true, f)
	if err != nil {
		return model.AggregationNode{}, err
	}
	return model.CalculateSummary(result), nil
}

// FormatForAPI membungkus hasil rekap dengan ringkasan dan waktu hitung.
func (a *DomainAggregator) FormatForAPI(result model.AggregationResult) FormattedResult {
	return FormattedResult{
		Data:        result,
		Summary:     model.CalculateSummary(result),
		LastUpdated: a.now(),
	}
}
