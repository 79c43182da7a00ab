package routes

import (
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/middleware"

	"github.com/gin-gonic/gin"
)

// ReportRoutes mendaftarkan statistik dokumen kegiatan (MongoDB).
//   - Admin : semua dosen, atau ?dosenId= untuk satu dosen
//   - Dosen : hanya dokumen sendiri
func ReportRoutes(r *gin.Engine, s service.ReportService) {
	g := r.Group("/api/v1/dokumen")
	g.Use(middleware.AuthMiddleware())
	{
		// GET /api/v1/dokumen/statistik/:domain
		g.GET("/statistik/:domain", func(c *gin.Context) {
			domain, found := domainParam(c)
			if !found {
				return
			}
			var q filterQuery
			if err := c.ShouldBindQuery(&q); err != nil {
				badRequest(c, "Query tidak valid", err)
				return
			}

			stats, err := s.DocumentStatistics(c.Request.Context(), middleware.ActorFrom(c), domain, optionalUUID(q.DosenID))
			if err != nil {
				respondError(c, "Gagal menghitung statistik dokumen", err)
				return
			}
			respondOK(c, "Berhasil mengambil statistik dokumen", stats)
		})
	}
}
