package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite store migrated for all collections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	// Every connection of an in-memory SQLite store is its own database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Subject{},
		&model.File{},
		&model.User{},
		&model.Statistics{},
	); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// newTestServices wires the full service set over one test store.
func newTestServices(t *testing.T) (*SubjectService, *FileService, *UserService, *StatsService, *BackupService) {
	t.Helper()

	db := newTestDB(t)
	stats := NewStatsService(db)
	return NewSubjectService(db, stats),
		NewFileService(db, stats),
		NewUserService(db, stats),
		stats,
		NewBackupService(db, stats)
}

// mustCreateSubject creates a subject or fails the test.
func mustCreateSubject(t *testing.T, s *SubjectService, name string) *model.Subject {
	t.Helper()

	subject, err := s.Create(context.Background(), CreateSubjectRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create subject %q: %v", name, err)
	}
	return subject
}

// mustCreateFile attaches a file to a subject or fails the test.
func mustCreateFile(t *testing.T, s *FileService, subjectID uint, name string) *model.File {
	t.Helper()

	file, err := s.Create(context.Background(), CreateFileRequest{
		SubjectID: subjectID,
		FileName:  name,
	})
	if err != nil {
		t.Fatalf("failed to create file %q: %v", name, err)
	}
	return file
}
