package middleware

import (
	"net/http"
	"strings"

	"angka-kredit-backend/app/service"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Key context yang diisi AuthMiddleware.
const (
	KeyUserID     = "userID"
	KeyLecturerID = "lecturerID"
	KeyRole       = "role"
)

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// dan menyimpan informasi user (userID, lecturerID, role) ke dalam context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_or_invalid_authorization_header", nil))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "empty_token", nil))
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			return
		}

		c.Set(KeyUserID, claims.UserID)         // UUID user (tabel users)
		c.Set(KeyLecturerID, claims.LecturerID) // uuid.Nil jika bukan dosen
		c.Set(KeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole menolak request dari role di luar daftar. Dipasang setelah AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			utils.BuildResponseFailed("Role tidak diizinkan mengakses fitur ini", "forbidden_role", nil))
	}
}

func uuidFrom(c *gin.Context, key string) uuid.UUID {
	if v, ok := c.Get(key); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// ActorFrom menyusun service.Actor dari nilai yang diisi AuthMiddleware.
func ActorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		UserID:     uuidFrom(c, KeyUserID),
		LecturerID: uuidFrom(c, KeyLecturerID),
		Role:       c.GetString(KeyRole),
	}
}
