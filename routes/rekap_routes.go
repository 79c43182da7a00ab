package routes

import (
	"net/http"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/middleware"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
)

// RekapHandler melayani rekap per domain, kesimpulan lima domain, dan taksonomi.
type RekapHandler struct {
	aggregators map[model.Domain]*service.DomainAggregator
	kesimpulan  service.KesimpulanService
}

func NewRekapHandler(aggregators map[model.Domain]*service.DomainAggregator, kesimpulan service.KesimpulanService) *RekapHandler {
	return &RekapHandler{aggregators: aggregators, kesimpulan: kesimpulan}
}

func (h *RekapHandler) SetupRekapRoutes(r *gin.Engine) {
	rekap := r.Group("/api/v1/rekap")
	rekap.Use(middleware.AuthMiddleware())
	{
		rekap.GET("/:domain", h.Rekap)
		rekap.GET("/:domain/summary", h.Summary)
	}

	kesimpulan := r.Group("/api/v1/kesimpulan")
	kesimpulan.Use(middleware.AuthMiddleware())
	{
		kesimpulan.GET("/:dosenId", h.Kesimpulan)
		kesimpulan.GET("/:dosenId/quick", h.QuickSummary)
	}

	r.GET("/api/v1/taksonomi/:domain", h.Taksonomi)
}

type rekapQuery struct {
	filterQuery
	Detail       bool `form:"detail"`
	SubDetail    bool `form:"subDetail"`
	StatusCounts bool `form:"statusCounts"`
}

func (h *RekapHandler) aggregator(c *gin.Context) (*service.DomainAggregator, bool) {
	domain, found := domainParam(c)
	if !found {
		return nil, false
	}
	agg, found := h.aggregators[domain]
	if !found {
		c.JSON(http.StatusNotFound, utils.BuildResponseFailed("Domain tidak dikenal", "unknown_domain", nil))
		return nil, false
	}
	return agg, true
}

// Rekap: GET /api/v1/rekap/:domain?dosenId=&semesterId=&tahun=&status=&detail=&subDetail=&statusCounts=
func (h *RekapHandler) Rekap(c *gin.Context) {
	agg, found := h.aggregator(c)
	if !found {
		return
	}
	var q rekapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Query tidak valid", err)
		return
	}
	lecturerID, err := scopeLecturer(middleware.ActorFrom(c), optionalUUID(q.DosenID))
	if err != nil {
		respondError(c, "Akses ditolak", err)
		return
	}

	result, err := agg.AggregateByDosen(c.Request.Context(), lecturerID, service.AggregateOptions{
		IncludeDetail:    q.Detail,
		IncludeSubDetail: q.SubDetail,
		IncludeStatus:    q.StatusCounts,
		Filter:           q.aggregateFilter(),
	})
	if err != nil {
		respondError(c, "Gagal menghitung rekap", err)
		return
	}
	respondOK(c, "Berhasil menghitung rekap", agg.FormatForAPI(result))
}

func (h *RekapHandler) Summary(c *gin.Context) {
	agg, found := h.aggregator(c)
	if !found {
		return
	}
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Query tidak valid", err)
		return
	}
	lecturerID, err := scopeLecturer(middleware.ActorFrom(c), optionalUUID(q.DosenID))
	if err != nil {
		respondError(c, "Akses ditolak", err)
		return
	}

	sum, err := agg.GetSummary(c.Request.Context(), lecturerID, q.aggregateFilter())
	if err != nil {
		respondError(c, "Gagal menghitung ringkasan", err)
		return
	}
	respondOK(c, "Berhasil menghitung ringkasan", sum)
}

type kesimpulanQuery struct {
	filterQuery
	IncludeDetails bool `form:"includeDetails"`
}

func (h *RekapHandler) kesimpulanOptions(c *gin.Context) (service.KesimpulanOptions, bool) {
	var q kesimpulanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Query tidak valid", err)
		return service.KesimpulanOptions{}, false
	}
	f := q.aggregateFilter()
	return service.KesimpulanOptions{
		IncludeDetails: q.IncludeDetails,
		SemesterID:     f.SemesterID,
		Tahun:          f.Tahun,
		Status:         f.Status,
	}, true
}

func (h *RekapHandler) Kesimpulan(c *gin.Context) {
	dosenID, valid := uuidParam(c, "dosenId")
	if !valid {
		return
	}
	if _, err := scopeLecturer(middleware.ActorFrom(c), &dosenID); err != nil {
		respondError(c, "Akses ditolak", err)
		return
	}
	opts, valid := h.kesimpulanOptions(c)
	if !valid {
		return
	}

	out, err := h.kesimpulan.FindByID(c.Request.Context(), dosenID, opts)
	if err != nil {
		respondError(c, "Gagal menghitung kesimpulan", err)
		return
	}
	respondOK(c, "Berhasil menghitung kesimpulan", out)
}

func (h *RekapHandler) QuickSummary(c *gin.Context) {
	dosenID, valid := uuidParam(c, "dosenId")
	if !valid {
		return
	}
	if _, err := scopeLecturer(middleware.ActorFrom(c), &dosenID); err != nil {
		respondError(c, "Akses ditolak", err)
		return
	}
	opts, valid := h.kesimpulanOptions(c)
	if !valid {
		return
	}

	out, err := h.kesimpulan.GetQuickSummary(c.Request.Context(), dosenID, opts)
	if err != nil {
		respondError(c, "Gagal menghitung ringkasan", err)
		return
	}
	respondOK(c, "Berhasil menghitung ringkasan", out)
}

// Taksonomi mengembalikan pohon kategori domain untuk form di frontend.
func (h *RekapHandler) Taksonomi(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	tax, _ := model.TaxonomyOf(domain)
	respondOK(c, "Taksonomi kategori", tax)
}
