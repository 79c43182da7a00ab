package database

import (
	"fmt"
	"time"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword adalah password awal semua akun contoh.
const SeedPassword = "123123"

// RunSeeders menjalankan seluruh seeder. Setiap seeder dilewati bila tabelnya sudah berisi.
func RunSeeders(db *gorm.DB, log *utils.Logger) error {
	log = log.With("component", "seeder")
	steps := []struct {
		name string
		run  func(*gorm.DB, *utils.Logger) error
	}{
		{"roles", SeedRoles},
		{"users", SeedUsers},
		{"lecturers", SeedLecturers},
		{"semesters", SeedSemesters},
	}
	for _, s := range steps {
		if err := s.run(db, log); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
	}
	return nil
}

func hasRows(db *gorm.DB, m any) (bool, error) {
	var count int64
	if err := db.Model(m).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ===============================
//  SEED ROLES
// ===============================

// SeedRoles menambahkan 2 role: admin (validator) dan dosen.
func SeedRoles(db *gorm.DB, log *utils.Logger) error {
	if exists, err := hasRows(db, &model.Role{}); err != nil || exists {
		if exists {
			log.Info("role sudah ada, skip")
		}
		return err
	}

	roles := []model.Role{
		{ID: uuid.New(), Name: model.RoleAdmin, Description: "Tim penilai angka kredit"},
		{ID: uuid.New(), Name: model.RoleDosen, Description: "Dosen pengusul"},
	}
	if err := db.Create(&roles).Error; err != nil {
		return err
	}
	log.Info("berhasil seed role", "roles", len(roles))
	return nil
}

// ===============================
//  SEED USERS
// ===============================

// SeedUsers menambahkan akun admin dan dua akun dosen.
func SeedUsers(db *gorm.DB, log *utils.Logger) error {
	if exists, err := hasRows(db, &model.User{}); err != nil || exists {
		if exists {
			log.Info("user sudah ada, skip")
		}
		return err
	}

	var adminRole, dosenRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", model.RoleDosen).First(&dosenRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{Username: "admin", Email: "admin@kampus.ac.id", FullName: "Tim Penilai PAK", RoleID: adminRole.ID},
		{Username: "rina", Email: "rina@kampus.ac.id", FullName: "Dr. Rina Wulandari", RoleID: dosenRole.ID},
		{Username: "budi", Email: "budi@kampus.ac.id", FullName: "Budi Santoso, M.Kom.", RoleID: dosenRole.ID},
	}
	for i := range users {
		users[i].ID = uuid.New()
		users[i].PasswordHash = string(hash)
		users[i].IsActive = true
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	log.Info("berhasil seed user", "users", len(users), "password", SeedPassword)
	return nil
}

// ===============================
//  SEED LECTURERS
// ===============================

// SeedLecturers membuat data dosen untuk akun rina (Lektor) dan budi (Asisten Ahli),
// sehingga aturan kuota SKS kedua jabatan bisa langsung dicoba.
func SeedLecturers(db *gorm.DB, log *utils.Logger) error {
	if exists, err := hasRows(db, &model.Lecturer{}); err != nil || exists {
		if exists {
			log.Info("dosen sudah ada, skip")
		}
		return err
	}

	seeds := []struct {
		username string
		lecturer model.Lecturer
	}{
		{"rina", model.Lecturer{NIP: "198501012010122001", Nama: "Dr. Rina Wulandari", Jabatan: model.JabatanLektor, Prodi: "Teknik Informatika", Fakultas: "Teknik"}},
		{"budi", model.Lecturer{NIP: "199203152019031004", Nama: "Budi Santoso, M.Kom.", Jabatan: model.JabatanAsistenAhli, Prodi: "Sistem Informasi", Fakultas: "Teknik"}},
	}
	for _, s := range seeds {
		var user model.User
		if err := db.Where("username = ?", s.username).First(&user).Error; err != nil {
			log.Warn("user untuk dosen tidak ditemukan, skip", "username", s.username)
			continue
		}
		lec := s.lecturer
		lec.ID = uuid.New()
		lec.UserID = &user.ID
		if err := db.Create(&lec).Error; err != nil {
			return err
		}
	}
	log.Info("berhasil seed dosen")
	return nil
}

// ===============================
//  SEED SEMESTERS
// ===============================

// SeedSemesters membuat semester tahun akademik berjalan; semester genap diaktifkan.
func SeedSemesters(db *gorm.DB, log *utils.Logger) error {
	if exists, err := hasRows(db, &model.Semester{}); err != nil || exists {
		if exists {
			log.Info("semester sudah ada, skip")
		}
		return err
	}

	year := time.Now().Year()
	sems := []model.Semester{
		{ID: uuid.New(), Nama: fmt.Sprintf("Ganjil %d/%d", year-1, year), Tahun: year - 1, Periode: "GANJIL"},
		{ID: uuid.New(), Nama: fmt.Sprintf("Genap %d/%d", year-1, year), Tahun: year, Periode: "GENAP", IsActive: true},
	}
	if err := db.Create(&sems).Error; err != nil {
		return err
	}
	log.Info("berhasil seed semester", "aktif", sems[1].Nama)
	return nil
}
