package routes

import (
	"net/http"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/middleware"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler adalah struct pengelola request untuk fitur Autentikasi.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler dipanggil di main.go untuk menyambungkan Service ke Handler ini.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mendaftarkan /api/v1/auth. Registrasi akun hanya oleh admin.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RequireRole(model.RoleAdmin),
			h.Register)
	}
}

// Register menangani pendaftaran user baru.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName" binding:"required"`
		Role     string `json:"role" binding:"required,oneof=admin dosen"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, "Input tidak valid", err)
		return
	}

	newUser := model.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		IsActive: true,
	}
	if err := h.authService.Register(ctx.Request.Context(), &newUser, input.Role, input.Password); err != nil {
		respondError(ctx, "Gagal registrasi", err)
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Registrasi berhasil", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"role":     newUser.Role.Name,
	}))
}

// Login memeriksa kredensial dan mengembalikan token JWT.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, "Input login tidak valid", err)
		return
	}

	result, err := h.authService.Login(ctx.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(ctx, "Login gagal", err)
		return
	}

	data := map[string]interface{}{
		"token": result.Token,
		"user": map[string]interface{}{
			"id":         result.User.ID,
			"username":   result.User.Username,
			"fullName":   result.User.FullName,
			"role":       result.User.Role.Name,
			"lecturerId": result.LecturerID,
		},
	}
	respondOK(ctx, "Login berhasil", data)
}
