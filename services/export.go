package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// ExportCSV renders subjects and files as a two-section CSV document.
func (s *BackupService) ExportCSV(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Backup(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Name", "Description", "Category", "Files Count", "Created At"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, subject := range snapshot.Subjects {
		record := []string{
			strconv.FormatUint(uint64(subject.ID), 10),
			subject.Name,
			subject.Description,
			subject.Category,
			strconv.FormatInt(subject.FilesCount, 10),
			subject.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write subject row: %w", err)
		}
	}

	// blank separator row between the two sections
	if err := w.Write([]string{}); err != nil {
		return nil, fmt.Errorf("failed to write separator: %w", err)
	}

	if err := w.Write([]string{"File ID", "Subject ID", "File Name", "File Type", "File Size", "Downloads", "Views", "Upload Date"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, file := range snapshot.Files {
		record := []string{
			strconv.FormatUint(uint64(file.ID), 10),
			strconv.FormatUint(uint64(file.SubjectID), 10),
			file.FileName,
			file.FileType,
			file.FileSize,
			strconv.FormatInt(file.Downloads, 10),
			strconv.FormatInt(file.Views, 10),
			file.UploadDate.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write file row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName returns the download name for a CSV export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("export_%s.csv", t.Format("2006-01-02"))
}
