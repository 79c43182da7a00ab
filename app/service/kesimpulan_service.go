package service

import (
	"context"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// KesimpulanOptions adalah opsi rekap gabungan satu dosen.
type KesimpulanOptions struct {
	IncludeDetails bool
	SemesterID     *uuid.UUID
	Tahun          *int
	Status         *model.StatusValidasi
}

func (o KesimpulanOptions) filter() AggregateFilter {
	return AggregateFilter{SemesterID: o.SemesterID, Tahun: o.Tahun, Status: o.Status}
}

// DomainBreakdown adalah ringkasan satu domain beserta kategorinya.
type DomainBreakdown struct {
	Summary    model.AggregationNode   `json:"summary"`
	Categories model.AggregationResult `json:"categories"`
}

// KesimpulanSummary berisi total keseluruhan dan rincian per domain.
type KesimpulanSummary struct {
	TotalSummary model.AggregationNode            `json:"totalSummary"`
	Categories   map[model.Domain]DomainBreakdown `json:"categories"`
}

// Kesimpulan adalah rekap gabungan kelima domain untuk satu dosen.
type Kesimpulan struct {
	Dosen   *model.Lecturer                  `json:"dosen"`
	Summary KesimpulanSummary                `json:"summary"`
	Details map[model.Domain]FormattedResult `json:"details,omitempty"`
}

// QuickSummary adalah versi ringkas tanpa rincian kategori.
type QuickSummary struct {
	Dosen     *model.Lecturer                        `json:"dosen"`
	Total     model.AggregationNode                  `json:"total"`
	Breakdown map[model.Domain]model.AggregationNode `json:"breakdown"`
}

// KesimpulanService menjalankan kelima agregator domain secara bersamaan.
type KesimpulanService interface {
	FindByID(ctx context.Context, lecturerID uuid.UUID, opts KesimpulanOptions) (*Kesimpulan, error)
	GetQuickSummary(ctx context.Context, lecturerID uuid.UUID, opts KesimpulanOptions) (*QuickSummary, error)
}

type kesimpulanService struct {
	lecturers   repository.LecturerRepository
	aggregators []*DomainAggregator
	log         *utils.Logger
}

// NewKesimpulanService memakai agregator dalam urutan model.Domains().
func NewKesimpulanService(lecturers repository.LecturerRepository, aggregators map[model.Domain]*DomainAggregator, log *utils.Logger) KesimpulanService {
	ordered := make([]*DomainAggregator, 0, len(aggregators))
	for _, d := range model.Domains() {
		if agg, ok := aggregators[d]; ok {
			ordered = append(ordered, agg)
		}
	}
	return &kesimpulanService{
		lecturers:   lecturers,
		aggregators: ordered,
		log:         log.With("component", "kesimpulan"),
	}
}

func (s *kesimpulanService) lecturer(ctx context.Context, id uuid.UUID) (*model.Lecturer, error) {
	lec, err := s.lecturers.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepo("dosen tidak ditemukan", err)
	}
	return lec, nil
}

func (s *kesimpulanService) FindByID(ctx context.Context, lecturerID uuid.UUID, opts KesimpulanOptions) (*Kesimpulan, error) {
	lec, err := s.lecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	aggOpts := AggregateOptions{
		IncludeDetail:    opts.IncludeDetails,
		IncludeSubDetail: opts.IncludeDetails,
		IncludeStatus:    true,
		Filter:           opts.filter(),
	}

	// setiap goroutine hanya menulis slot miliknya sendiri
	results := make([]model.AggregationResult, len(s.aggregators))
	g, gctx := errgroup.WithContext(ctx)
	for i, agg := range s.aggregators {
		g.Go(func() error {
			res, err := agg.AggregateByDosen(gctx, &lec.ID, aggOpts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("kesimpulan gagal", "lecturerId", lec.ID, "error", err)
		return nil, err
	}

	out := &Kesimpulan{
		Dosen: lec,
		Summary: KesimpulanSummary{
			Categories: make(map[model.Domain]DomainBreakdown, len(results)),
		},
	}
	if opts.IncludeDetails {
		out.Details = make(map[model.Domain]FormattedResult, len(results))
	}
	for i, agg := range s.aggregators {
		formatted := agg.FormatForAPI(results[i])
		out.Summary.TotalSummary = model.MergeNodes(out.Summary.TotalSummary, formatted.Summary)
		out.Summary.Categories[agg.Domain()] = DomainBreakdown{
			Summary:    formatted.Summary,
			Categories: results[i],
		}
		if opts.IncludeDetails {
			out.Details[agg.Domain()] = formatted
		}
	}
	return out, nil
}

func (s *kesimpulanService) GetQuickSummary(ctx context.Context, lecturerID uuid.UUID, opts KesimpulanOptions) (*QuickSummary, error) {
	lec, err := s.lecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AggregationNode, len(s.aggregators))
	g, gctx := errgroup.WithContext(ctx)
	for i, agg := range s.aggregators {
		g.Go(func() error {
			sum, err := agg.GetSummary(gctx, &lec.ID, opts.filter())
			if err != nil {
				return err
			}
			summaries[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &QuickSummary{
		Dosen:     lec,
		Breakdown: make(map[model.Domain]model.AggregationNode, len(summaries)),
	}
	for i, agg := range s.aggregators {
		out.Total = model.MergeNodes(out.Total, summaries[i])
		out.Breakdown[agg.Domain()] = summaries[i]
	}
	return out, nil
}
