package database

import (
	"context"
	"fmt"
	"time"

	"angka-kredit-backend/app/model"
	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/config"
	"angka-kredit-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database
}

// Migrate membuat / memperbarui tabel Postgres untuk seluruh model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Lecturer{},
		&model.Semester{},
		&model.ActivityRecord{},
	)
}

func InitDB(ctx context.Context, cfg *config.Config, log *utils.Logger) (*Database, error) {
	// 1. Setup PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %w", err)
	}

	log.Info("menjalankan migrasi database PostgreSQL")
	if err := Migrate(pgDB); err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %w", err)
	}

	// 2. Setup MongoDB
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke mongo: %w", err)
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("gagal ping mongo: %w", err)
	}

	mongoDatabase := mongoClient.Database(cfg.MongoDBName)
	if err := repository.EnsureDocumentIndexes(connectCtx, mongoDatabase); err != nil {
		return nil, fmt.Errorf("gagal membuat index mongo: %w", err)
	}

	log.Info("berhasil terhubung ke PostgreSQL dan MongoDB", "postgres", cfg.DBName, "mongo", cfg.MongoDBName)

	return &Database{
		Postgres: pgDB,
		Mongo:    mongoDatabase,
	}, nil
}

// Close menutup koneksi Postgres dan Mongo.
func (d *Database) Close(ctx context.Context) error {
	var firstErr error
	if sqlDB, err := d.Postgres.DB(); err == nil {
		firstErr = sqlDB.Close()
	}
	if err := d.Mongo.Client().Disconnect(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
