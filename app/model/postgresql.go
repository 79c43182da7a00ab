package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User merepresentasikan akun login (admin atau dosen)
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"fullName"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null" json:"roleId"`
	Role         Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nama role yang dikenal sistem.
const (
	RoleAdmin = "admin"
	RoleDosen = "dosen"
)

// Role menyimpan peran pengguna (admin, dosen)
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Jabatan fungsional dosen. Nilainya disimpan apa adanya (label resmi).
const (
	JabatanTenagaPengajar = "Tenaga Pengajar"
	JabatanAsistenAhli    = "Asisten Ahli"
	JabatanLektor         = "Lektor"
	JabatanLektorKepala   = "Lektor Kepala"
	JabatanGuruBesar      = "Guru Besar"
)

// Lecturer merepresentasikan data dosen pemilik kegiatan PAK.
type Lecturer struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	NIP       string     `gorm:"column:nip;unique;not null" json:"nip"`
	Nama      string     `gorm:"not null" json:"nama"`
	Jabatan   string     `gorm:"type:varchar(50)" json:"jabatan"` // jabatan fungsional
	Prodi     string     `gorm:"type:varchar(100)" json:"prodi,omitempty"`
	Fakultas  string     `gorm:"type:varchar(100)" json:"fakultas,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Semester akademik, dipakai untuk kuota SKS dan filter rekap.
type Semester struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nama      string    `gorm:"not null" json:"nama"` // contoh: "Ganjil 2024/2025"
	Tahun     int       `gorm:"not null" json:"tahun"`
	Periode   string    `gorm:"type:varchar(10);not null" json:"periode"` // GANJIL / GENAP
	IsActive  bool      `gorm:"default:false" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// StatusValidasi adalah status review sebuah kegiatan.
type StatusValidasi string

const (
	StatusPending  StatusValidasi = "PENDING"
	StatusApproved StatusValidasi = "APPROVED"
	StatusRejected StatusValidasi = "REJECTED"
)

// Valid mengecek apakah status termasuk salah satu nilai yang dikenal.
func (s StatusValidasi) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ActivityRecord adalah baris kegiatan PAK di PostgreSQL. Kolom di sini hanya
// yang dibutuhkan scoring & agregasi; field domain lengkap ada di dokumen Mongo
// (lihat ActivityDocument).
type ActivityRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Domain         Domain         `gorm:"type:varchar(40);not null;index:idx_activity_owner" json:"domain"`
	LecturerID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_owner" json:"lecturerId"`
	SemesterID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"semesterId"`
	Kategori       string         `gorm:"type:varchar(60);not null" json:"kategori"`
	JenisKategori  string         `gorm:"type:varchar(60);not null;default:''" json:"jenisKategori,omitempty"`
	SubDetail      string         `gorm:"type:varchar(60);not null;default:''" json:"subDetail,omitempty"`
	Judul          string         `gorm:"type:varchar(255)" json:"judul"`
	Tanggal        datatypes.Date `json:"tanggal"`
	SKS            float64        `gorm:"column:sks;type:double precision;not null;default:0" json:"sks,omitempty"`
	NilaiPAK       float64        `gorm:"column:nilai_pak;type:double precision;not null;default:0" json:"nilaiPak"`
	StatusValidasi StatusValidasi `gorm:"type:varchar(20);not null;default:'PENDING'" json:"statusValidasi"`
	Catatan        *string        `json:"catatan,omitempty"`
	ReviewerID     *uuid.UUID     `gorm:"type:uuid" json:"reviewerId,omitempty"`
	VerifiedAt     *time.Time     `json:"verifiedAt,omitempty"`
	DocumentID     string         `gorm:"type:varchar(40)" json:"documentId,omitempty"` // _id dokumen di MongoDB (hex)
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName memakai satu tabel untuk kelima domain; kolom domain jadi diskriminan.
func (ActivityRecord) TableName() string { return "activity_records" }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// BeforeCreate hooks: ID dibuat di aplikasi supaya skema tidak bergantung pada
// gen_random_uuid() milik Postgres.
func (u *User) BeforeCreate(*gorm.DB) error           { ensureID(&u.ID); return nil }
func (r *Role) BeforeCreate(*gorm.DB) error           { ensureID(&r.ID); return nil }
func (l *Lecturer) BeforeCreate(*gorm.DB) error       { ensureID(&l.ID); return nil }
func (s *Semester) BeforeCreate(*gorm.DB) error       { ensureID(&s.ID); return nil }
func (a *ActivityRecord) BeforeCreate(*gorm.DB) error { ensureID(&a.ID); return nil }
