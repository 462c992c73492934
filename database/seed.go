package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminUserID is the hardcoded external identifier of the seeded admin.
const AdminUserID = 5795991022

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll populates the fixed default data set. It runs only when the
// subjects collection is empty, so re-running it is a no-op.
func (s *Seeder) SeedAll() error {
	var count int64
	if err := s.db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Store already populated, skipping seeding...")
		return nil
	}

	log.Println("Empty store detected, seeding default data...")

	if err := s.SeedSubjects(); err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	if err := s.SeedFiles(); err != nil {
		return fmt.Errorf("failed to seed files: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedSubjects creates the default subjects
func (s *Seeder) SeedSubjects() error {
	now := time.Now()
	subjects := []model.Subject{
		{
			Name:        "Philosophy",
			Description: "Summaries and revision notes for philosophy",
			Category:    "Humanities",
			Icon:        "fas fa-brain",
			Color:       "#3498db",
			CreatedAt:   now,
		},
		{
			Name:        "Arabic Literature",
			Description: "Summaries for Arabic literature",
			Category:    "Humanities",
			Icon:        "fas fa-book",
			Color:       "#2ecc71",
			CreatedAt:   now,
		},
		{
			Name:        "History",
			Description: "History revisions and summaries",
			Category:    "Humanities",
			Icon:        "fas fa-landmark",
			Color:       "#e74c3c",
			CreatedAt:   now,
		},
		{
			Name:        "Geography",
			Description: "Geography course summaries",
			Category:    "Humanities",
			Icon:        "fas fa-globe-africa",
			Color:       "#9b59b6",
			CreatedAt:   now,
		},
		{
			Name:        "Islamic Studies",
			Description: "Revisions for Islamic studies",
			Category:    "Religious Studies",
			Icon:        "fas fa-mosque",
			Color:       "#f39c12",
			CreatedAt:   now,
		},
		{
			Name:        "French",
			Description: "French language summaries",
			Category:    "Languages",
			Icon:        "fas fa-language",
			Color:       "#1abc9c",
			CreatedAt:   now,
		},
	}

	if err := s.db.Create(&subjects).Error; err != nil {
		return err
	}

	log.Printf("Created %d subjects\n", len(subjects))
	return nil
}

// SeedFiles creates the default files. Each entry references a seeded
// subject by 1-based position in the subject fixture.
func (s *Seeder) SeedFiles() error {
	var subjects []model.Subject
	if err := s.db.Order("id ASC").Find(&subjects).Error; err != nil {
		return err
	}

	if len(subjects) == 0 {
		return fmt.Errorf("no subjects found, seed subjects first")
	}

	now := time.Now()
	fixtures := []struct {
		position int // 1-based index into the seeded subjects
		file     model.File
	}{
		{1, model.File{
			FileName:    "Greek Philosophy Summary.pdf",
			FileType:    "pdf",
			FileSize:    "2.4 MB",
			FileURL:     "#",
			Description: "Complete summary of Greek philosophy",
			UploadDate:  now,
			Downloads:   150,
			Views:       300,
		}},
		{1, model.File{
			FileName:    "Philosophy Questions with Answers.docx",
			FileType:    "docx",
			FileSize:    "1.8 MB",
			FileURL:     "#",
			Description: "Question set with worked answers",
			UploadDate:  now,
			Downloads:   120,
			Views:       250,
		}},
		{2, model.File{
			FileName:    "Pre-Islamic Poetry Summary.pdf",
			FileType:    "pdf",
			FileSize:    "3.1 MB",
			FileURL:     "#",
			Description: "Complete summary of pre-Islamic poetry",
			UploadDate:  now,
			Downloads:   200,
			Views:       400,
		}},
		{3, model.File{
			FileName:    "History of the Islamic World.pdf",
			FileType:    "pdf",
			FileSize:    "4.2 MB",
			FileURL:     "#",
			Description: "History of the Islamic world from the beginning",
			UploadDate:  now,
			Downloads:   180,
			Views:       350,
		}},
		{4, model.File{
			FileName:    "Geographic Maps.pptx",
			FileType:    "pptx",
			FileSize:    "5.3 MB",
			FileURL:     "#",
			Description: "Slide deck of geographic maps",
			UploadDate:  now,
			Downloads:   90,
			Views:       180,
		}},
	}

	var files []model.File
	for _, f := range fixtures {
		if f.position > len(subjects) {
			continue
		}
		file := f.file
		file.SubjectID = subjects[f.position-1].ID
		files = append(files, file)
	}

	if err := s.db.Create(&files).Error; err != nil {
		return err
	}

	// Bring the denormalized counters in line with the fixture.
	for _, subject := range subjects {
		var fileCount int64
		if err := s.db.Model(&model.File{}).
			Where("subject_id = ?", subject.ID).
			Count(&fileCount).Error; err != nil {
			return err
		}
		if err := s.db.Model(&model.Subject{}).
			Where("id = ?", subject.ID).
			Update("files_count", fileCount).Error; err != nil {
			return err
		}
	}

	log.Printf("Created %d files\n", len(files))
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	now := time.Now()
	admin := &model.User{
		ID:          "admin_" + uuid.NewString(),
		UserID:      AdminUserID,
		Username:    "admin",
		FirstName:   "System",
		LastName:    "Administrator",
		Role:        model.RoleAdmin,
		Email:       "admin@example.com",
		Permissions: datatypes.JSON([]byte(`["all"]`)),
		JoinedAt:    now,
		LastActive:  now,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user: %s\n", admin.Username)
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
