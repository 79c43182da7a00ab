package routes

import (
	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/middleware"

	"github.com/gin-gonic/gin"
)

// LecturerRoutes mendaftarkan data referensi:
// GET /api/v1/dosen          (admin)
// GET /api/v1/dosen/me
// GET /api/v1/semester
// GET /api/v1/semester/aktif
func LecturerRoutes(r *gin.Engine, s service.LecturerService) {
	dosen := r.Group("/api/v1/dosen")
	dosen.Use(middleware.AuthMiddleware())
	{
		dosen.GET("", middleware.RequireRole(model.RoleAdmin), func(c *gin.Context) {
			lects, err := s.List(c.Request.Context(), middleware.ActorFrom(c))
			if err != nil {
				respondError(c, "Gagal mengambil daftar dosen", err)
				return
			}
			respondOK(c, "Berhasil mengambil daftar dosen", lects)
		})
		dosen.GET("/me", func(c *gin.Context) {
			lec, err := s.Profile(c.Request.Context(), middleware.ActorFrom(c))
			if err != nil {
				respondError(c, "Gagal mengambil profil dosen", err)
				return
			}
			respondOK(c, "Berhasil mengambil profil dosen", lec)
		})
	}

	semester := r.Group("/api/v1/semester")
	semester.Use(middleware.AuthMiddleware())
	{
		semester.GET("", func(c *gin.Context) {
			sems, err := s.Semesters(c.Request.Context())
			if err != nil {
				respondError(c, "Gagal mengambil daftar semester", err)
				return
			}
			respondOK(c, "Berhasil mengambil daftar semester", sems)
		})
		semester.GET("/aktif", func(c *gin.Context) {
			sem, err := s.ActiveSemester(c.Request.Context())
			if err != nil {
				respondError(c, "Gagal mengambil semester aktif", err)
				return
			}
			respondOK(c, "Berhasil mengambil semester aktif", sem)
		})
	}
}
