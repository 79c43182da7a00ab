package service

import (
	"context"
	"errors"
	"testing"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
)

type fakeUsers struct {
	byEmail map[string]model.User
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindRoleByName(_ context.Context, name string) (*model.Role, error) {
	return &model.Role{ID: uuid.New(), Name: name}, nil
}

func TestLoginDosenCarriesLecturerID(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-test")
	ctx := context.Background()
	users := &fakeUsers{byEmail: map[string]model.User{}}

	user := &model.User{Email: "rina@kampus.ac.id", Username: "rina", FullName: "Rina", IsActive: true}
	svc := NewAuthService(users, newFakeLecturers(), utils.NopLogger())
	if err := svc.Register(ctx, user, model.RoleDosen, "pendek"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	lec := model.Lecturer{ID: uuid.New(), UserID: &user.ID, NIP: "9", Nama: "Rina"}
	svc = NewAuthService(users, newFakeLecturers(lec), utils.NopLogger())

	res, err := svc.Login(ctx, "rina@kampus.ac.id", "pendek")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.LecturerID == nil || *res.LecturerID != lec.ID {
		t.Fatalf("lecturerId = %v", res.LecturerID)
	}
	claims, err := utils.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.LecturerID != lec.ID || claims.Role != model.RoleDosen {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-test")
	ctx := context.Background()
	users := &fakeUsers{byEmail: map[string]model.User{}}
	svc := NewAuthService(users, newFakeLecturers(), utils.NopLogger())

	if err := svc.Register(ctx, &model.User{Email: "x@y.z"}, model.RoleDosen, "123"); !errors.Is(err, ErrValidation) {
		t.Fatalf("short password err = %v", err)
	}

	admin := &model.User{Email: "admin@kampus.ac.id", IsActive: false}
	if err := svc.Register(ctx, admin, model.RoleAdmin, "admin123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "admin@kampus.ac.id", "salah"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "tidak@ada.id", "admin123"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email err = %v", err)
	}
	if _, err := svc.Login(ctx, "admin@kampus.ac.id", "admin123"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("inactive err = %v", err)
	}
}
