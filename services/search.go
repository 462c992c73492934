package services

import (
	"strings"

	"github.com/studyshelf/catalog-api/model"
)

// FilterSubjects returns the subjects whose name, description or category
// contains the query, case-insensitively. Pure function; an empty query
// matches everything.
func FilterSubjects(subjects []model.Subject, query string) []model.Subject {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return subjects
	}

	matched := make([]model.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if strings.Contains(strings.ToLower(subject.Name), term) ||
			strings.Contains(strings.ToLower(subject.Description), term) ||
			strings.Contains(strings.ToLower(subject.Category), term) {
			matched = append(matched, subject)
		}
	}
	return matched
}
