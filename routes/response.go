package routes

import (
	"errors"
	"net/http"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusOf memetakan jenis error layanan ke status HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError mengirim envelope gagal. Pesan AppError dipakai apa adanya;
// error internal tidak dibocorkan ke klien.
func respondError(c *gin.Context, fallback string, err error) {
	status := statusOf(err)
	message := fallback
	var appErr *service.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "internal_error"
		_ = c.Error(err)
	}
	c.JSON(status, utils.BuildResponseFailed(message, detail, nil))
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, utils.BuildResponseFailed(message, err.Error(), nil))
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, utils.BuildResponseSuccess(message, data))
}

// domainParam membaca :domain; respons 404 sudah dikirim bila tidak dikenal.
func domainParam(c *gin.Context) (model.Domain, bool) {
	d, found := model.ParseDomain(c.Param("domain"))
	if !found {
		c.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Domain tidak dikenal", "unknown_domain", nil))
		return "", false
	}
	return d, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "ID tidak valid", err)
		return uuid.Nil, false
	}
	return id, true
}

// filterQuery adalah query string bersama untuk daftar kegiatan, rekap, dan kesimpulan.
type filterQuery struct {
	DosenID    string `form:"dosenId" binding:"omitempty,uuid"`
	SemesterID string `form:"semesterId" binding:"omitempty,uuid"`
	Tahun      *int   `form:"tahun" binding:"omitempty,gte=1900,lte=2200"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Kategori   string `form:"kategori"`
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func (q filterQuery) status() *model.StatusValidasi {
	if q.Status == "" {
		return nil
	}
	st := model.StatusValidasi(q.Status)
	return &st
}

func (q filterQuery) aggregateFilter() service.AggregateFilter {
	return service.AggregateFilter{
		SemesterID: optionalUUID(q.SemesterID),
		Tahun:      q.Tahun,
		Status:     q.status(),
	}
}

// scopeLecturer menentukan dosen yang direkap: dosen selalu dirinya sendiri,
// admin boleh memilih lewat dosenId (kosong = semua dosen).
func scopeLecturer(actor service.Actor, requested *uuid.UUID) (*uuid.UUID, error) {
	if actor.IsAdmin() {
		return requested, nil
	}
	if requested != nil && !actor.CanActFor(*requested) {
		return nil, &service.AppError{Kind: service.ErrForbidden, Message: "dosen hanya dapat melihat rekap sendiri"}
	}
	if actor.LecturerID == uuid.Nil {
		return nil, &service.AppError{Kind: service.ErrForbidden, Message: "akun tidak terhubung dengan data dosen"}
	}
	own := actor.LecturerID
	return &own, nil
}
