package routes

import (
	"net/http"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/middleware"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KegiatanHandler melayani CRUD kegiatan kelima domain dan validasinya.
type KegiatanHandler struct {
	submissions service.SubmissionService
}

func NewKegiatanHandler(submissions service.SubmissionService) *KegiatanHandler {
	return &KegiatanHandler{submissions: submissions}
}

// SetupKegiatanRoutes mendaftarkan /api/v1/kegiatan/:domain.
func (h *KegiatanHandler) SetupKegiatanRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/kegiatan/:domain")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.POST("", h.Create)

		// hitung nilai tanpa menyimpan
		g.POST("/preview", h.Preview)

		g.GET("/:id", h.Detail)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		// hanya tim penilai (admin)
		g.PATCH("/:id/validasi", middleware.RequireRole(model.RoleAdmin), h.Validasi)
	}
}

// targetLecturer: admin wajib mengisi ?dosenId=, dosen memakai miliknya sendiri.
func targetLecturer(c *gin.Context, actor service.Actor) (uuid.UUID, bool) {
	if raw := c.Query("dosenId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "dosenId tidak valid", err)
			return uuid.Nil, false
		}
		return id, true
	}
	if actor.LecturerID == uuid.Nil {
		c.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("dosenId wajib diisi", "missing_dosen_id", nil))
		return uuid.Nil, false
	}
	return actor.LecturerID, true
}

// readInput membaca body kegiatan sesuai domain.
func readInput(c *gin.Context, domain model.Domain) (model.ActivityInput, bool) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Body tidak dapat dibaca", err)
		return model.ActivityInput{}, false
	}
	in, err := model.DecodeActivityInput(domain, body)
	if err != nil {
		badRequest(c, "Input kegiatan tidak valid", err)
		return model.ActivityInput{}, false
	}
	return in, true
}

func (h *KegiatanHandler) List(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Query tidak valid", err)
		return
	}

	recs, err := h.submissions.List(c.Request.Context(), middleware.ActorFrom(c), repository.RecordFilter{
		Domain:     domain,
		LecturerID: optionalUUID(q.DosenID),
		SemesterID: optionalUUID(q.SemesterID),
		Tahun:      q.Tahun,
		Status:     q.status(),
		Kategori:   q.Kategori,
	})
	if err != nil {
		respondError(c, "Gagal mengambil kegiatan", err)
		return
	}
	respondOK(c, "Berhasil mengambil kegiatan", recs)
}

func (h *KegiatanHandler) Create(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	// 1. Tentukan dosen pemilik kegiatan
	actor := middleware.ActorFrom(c)
	lecturerID, found := targetLecturer(c, actor)
	if !found {
		return
	}
	// 2. Decode body sesuai tipe detail kategorinya
	in, valid := readInput(c, domain)
	if !valid {
		return
	}

	// 3. Simpan + hitung nilai PAK
	rec, err := h.submissions.Create(c.Request.Context(), actor, lecturerID, domain, in)
	if err != nil {
		respondError(c, "Gagal menyimpan kegiatan", err)
		return
	}
	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Kegiatan berhasil disimpan", rec))
}

func (h *KegiatanHandler) Preview(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	actor := middleware.ActorFrom(c)
	lecturerID, found := targetLecturer(c, actor)
	if !found {
		return
	}
	// dosen hanya boleh menghitung untuk dirinya sendiri
	if !actor.CanActFor(lecturerID) {
		c.JSON(http.StatusForbidden, utils.BuildResponseFailed("Akses ditolak", "forbidden", nil))
		return
	}
	in, valid := readInput(c, domain)
	if !valid {
		return
	}

	res, err := h.submissions.Preview(c.Request.Context(), lecturerID, domain, in)
	if err != nil {
		respondError(c, "Gagal menghitung nilai", err)
		return
	}
	respondOK(c, "Perhitungan nilai PAK", res)
}

func (h *KegiatanHandler) Detail(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	detail, err := h.submissions.Detail(c.Request.Context(), middleware.ActorFrom(c), domain, id)
	if err != nil {
		respondError(c, "Gagal mengambil kegiatan", err)
		return
	}
	respondOK(c, "Berhasil mengambil kegiatan", detail)
}

func (h *KegiatanHandler) Update(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	in, valid := readInput(c, domain)
	if !valid {
		return
	}

	rec, err := h.submissions.Update(c.Request.Context(), middleware.ActorFrom(c), domain, id, in)
	if err != nil {
		respondError(c, "Gagal memperbarui kegiatan", err)
		return
	}
	respondOK(c, "Kegiatan berhasil diperbarui", rec)
}

func (h *KegiatanHandler) Delete(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	if err := h.submissions.Delete(c.Request.Context(), middleware.ActorFrom(c), domain, id); err != nil {
		respondError(c, "Gagal menghapus kegiatan", err)
		return
	}
	respondOK(c, "Kegiatan berhasil dihapus", nil)
}

// Validasi: admin menyetujui atau menolak kegiatan PENDING.
func (h *KegiatanHandler) Validasi(c *gin.Context) {
	domain, found := domainParam(c)
	if !found {
		return
	}
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	// 1. Bind body; catatan wajib untuk REJECTED dicek di service
	var input struct {
		Status  string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
		Catatan string `json:"catatan" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Input validasi tidak valid", err)
		return
	}

	// 2. Transisi PENDING -> APPROVED | REJECTED
	rec, err := h.submissions.Verify(c.Request.Context(), middleware.ActorFrom(c), domain, id,
		model.StatusValidasi(input.Status), input.Catatan)
	if err != nil {
		respondError(c, "Gagal memvalidasi kegiatan", err)
		return
	}
	respondOK(c, "Kegiatan berhasil divalidasi", rec)
}
