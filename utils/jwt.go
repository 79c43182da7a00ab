package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

/*
 JWTCustomClaims

 Token menyimpan:
 - UserID     (uuid)  : identitas user
 - LecturerID (uuid)  : identitas dosen pemilik kegiatan PAK
                       (uuid.Nil apabila user bukan dosen, misal admin)
 - Role       (string): nama role (admin / dosen)
*/
type JWTCustomClaims struct {
	UserID     uuid.UUID `json:"userId"`
	LecturerID uuid.UUID `json:"lecturerId"`
	Role       string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL adalah masa berlaku access token.
const TokenTTL = 24 * time.Hour

// getJWTSecret membaca JWT_SECRET dari environment setiap kali dipanggil.
// Ini menghindari masalah ketika .env baru di-load setelah package di-import.
func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return []byte(secret), nil
}

// GenerateToken membuat JWT access token untuk user.
func GenerateToken(userID uuid.UUID, lecturerID uuid.UUID, role string) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := JWTCustomClaims{
		UserID:     userID,
		LecturerID: lecturerID, // uuid.Nil kalau bukan dosen
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken mem-validasi JWT dan mengembalikan *JWTCustomClaims jika valid.
// - Mengecek signing method (HMAC).
// - Mengecek expiration dan validitas klaim.
func ValidateToken(tokenString string) (*JWTCustomClaims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTCustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			// verifikasi signing method HMAC
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
