package services

import (
	"testing"

	"github.com/studyshelf/catalog-api/model"
)

func TestFilterSubjects(t *testing.T) {
	subjects := []model.Subject{
		{ID: 1, Name: "Philosophy", Description: "Greek thinkers", Category: "Humanities"},
		{ID: 2, Name: "History", Description: "World history notes", Category: "Humanities"},
		{ID: 3, Name: "French", Description: "Language summaries", Category: "Languages"},
	}

	cases := []struct {
		name    string
		query   string
		wantIDs []uint
	}{
		{"empty query matches everything", "", []uint{1, 2, 3}},
		{"whitespace query matches everything", "   ", []uint{1, 2, 3}},
		{"match by name", "philo", []uint{1}},
		{"match is case-insensitive", "PHILO", []uint{1}},
		{"match by description", "greek", []uint{1}},
		{"match by category", "languages", []uint{3}},
		{"match across fields", "histor", []uint{2}},
		{"shared category matches several", "humanities", []uint{1, 2}},
		{"no match is empty, not nil error", "chemistry", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterSubjects(subjects, tc.query)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %d matches, got %d", len(tc.wantIDs), len(got))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("match %d: expected subject %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}
