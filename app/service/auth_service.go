package service

import (
	"context"
	"errors"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult dikirim ke frontend setelah login berhasil.
type LoginResult struct {
	Token      string      `json:"token"`
	User       *model.User `json:"user"`
	LecturerID *uuid.UUID  `json:"lecturerId,omitempty"`
}

// AuthService mendefinisikan layanan autentikasi.
type AuthService interface {
	Register(ctx context.Context, user *model.User, roleName, password string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	userRepo     repository.UserRepository
	lecturerRepo repository.LecturerRepository
	log          *utils.Logger
}

// NewAuthService menghubungkan Service dengan Repository
func NewAuthService(userRepo repository.UserRepository, lecturerRepo repository.LecturerRepository, log *utils.Logger) AuthService {
	return &authService{
		userRepo:     userRepo,
		lecturerRepo: lecturerRepo,
		log:          log.With("component", "auth"),
	}
}

// Register menyimpan user baru dengan password yang sudah di-hash bcrypt.
func (s *authService) Register(ctx context.Context, user *model.User, roleName, password string) error {
	if len(password) < 6 {
		return newError(ErrValidation, "password minimal 6 karakter", nil)
	}
	role, err := s.userRepo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrValidation, "role tidak dikenal", nil)
		}
		return err
	}
	user.RoleID = role.ID
	user.Role = *role
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	return s.userRepo.Create(ctx, user)
}

// Login memeriksa email + password lalu menerbitkan JWT.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "email atau password salah", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("login gagal", "email", email)
		return nil, newError(ErrUnauthorized, "email atau password salah", nil)
	}

	if !user.IsActive {
		return nil, newError(ErrForbidden, "akun anda dinonaktifkan", nil)
	}

	// user dosen membawa lecturerId di token
	result := &LoginResult{User: user}
	lecturerID := uuid.Nil
	if user.Role.Name == model.RoleDosen {
		lec, err := s.lecturerRepo.FindByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if lec != nil {
			lecturerID = lec.ID
			result.LecturerID = &lec.ID
		}
	}

	token, err := utils.GenerateToken(user.ID, lecturerID, user.Role.Name)
	if err != nil {
		return nil, err
	}
	result.Token = token
	s.log.Info("login berhasil", "userId", user.ID, "role", user.Role.Name)
	return result, nil
}
