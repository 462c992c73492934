package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

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

func TestSeedPopulatesEmptyStore(t *testing.T) {
	db := newSeedTestDB(t)

	if err := RunSeeds(db); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	var subjectCount, fileCount, userCount int64
	db.Model(&model.Subject{}).Count(&subjectCount)
	db.Model(&model.File{}).Count(&fileCount)
	db.Model(&model.User{}).Count(&userCount)

	if subjectCount != 6 {
		t.Fatalf("expected 6 seeded subjects, got %d", subjectCount)
	}
	if fileCount != 5 {
		t.Fatalf("expected 5 seeded files, got %d", fileCount)
	}
	if userCount != 1 {
		t.Fatalf("expected 1 seeded user, got %d", userCount)
	}
}

func TestSeedFilesReferenceSubjectsByPosition(t *testing.T) {
	db := newSeedTestDB(t)

	if err := RunSeeds(db); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	var subjects []model.Subject
	if err := db.Order("id ASC").Find(&subjects).Error; err != nil {
		t.Fatalf("failed to load subjects: %v", err)
	}

	// The first fixture subject owns two files, positions 2-4 one each
	wantCounts := []int64{2, 1, 1, 1, 0, 0}
	for i, subject := range subjects {
		var count int64
		db.Model(&model.File{}).Where("subject_id = ?", subject.ID).Count(&count)
		if count != wantCounts[i] {
			t.Fatalf("subject %q: expected %d files, got %d",
				subject.Name, wantCounts[i], count)
		}
		if subject.FilesCount != wantCounts[i] {
			t.Fatalf("subject %q: files_count %d out of sync with %d files",
				subject.Name, subject.FilesCount, wantCounts[i])
		}
	}
}

func TestSeedAdminUser(t *testing.T) {
	db := newSeedTestDB(t)

	if err := RunSeeds(db); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	var admin model.User
	if err := db.Where("user_id = ?", AdminUserID).First(&admin).Error; err != nil {
		t.Fatalf("seeded admin not found: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected role admin, got %q", admin.Role)
	}
	if string(admin.Permissions) != `["all"]` {
		t.Fatalf("expected permissions [\"all\"], got %s", admin.Permissions)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)

	if err := RunSeeds(db); err != nil {
		t.Fatalf("first seeding failed: %v", err)
	}
	if err := RunSeeds(db); err != nil {
		t.Fatalf("second seeding failed: %v", err)
	}

	var subjectCount, userCount int64
	db.Model(&model.Subject{}).Count(&subjectCount)
	db.Model(&model.User{}).Count(&userCount)
	if subjectCount != 6 {
		t.Fatalf("re-seeding duplicated subjects: got %d", subjectCount)
	}
	if userCount != 1 {
		t.Fatalf("re-seeding duplicated users: got %d", userCount)
	}
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	db := newSeedTestDB(t)

	existing := model.Subject{Name: "Chemistry"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}

	if err := RunSeeds(db); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	var subjectCount int64
	db.Model(&model.Subject{}).Count(&subjectCount)
	if subjectCount != 1 {
		t.Fatalf("seeding must be a no-op on a non-empty store, got %d subjects", subjectCount)
	}
}
