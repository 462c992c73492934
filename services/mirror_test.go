package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studyshelf/catalog-api/model"
)

func newTestMirror(t *testing.T, handler http.HandlerFunc) *MirrorClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewMirrorClient(MirrorConfig{BaseURL: server.URL})
}

func writeMirrorEnvelope(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    json.RawMessage(payload),
	})
}

func TestMirrorSubjects(t *testing.T) {
	client := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/subjects" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeMirrorEnvelope(t, w, []model.Subject{
			{ID: 1, Name: "Philosophy"},
			{ID: 2, Name: "History"},
		})
	})

	subjects, err := client.Subjects(context.Background())
	if err != nil {
		t.Fatalf("Subjects failed: %v", err)
	}
	if len(subjects) != 2 || subjects[0].Name != "Philosophy" {
		t.Fatalf("unexpected subjects %+v", subjects)
	}
}

func TestMirrorFilesBySubject(t *testing.T) {
	client := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/files/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeMirrorEnvelope(t, w, []model.File{{ID: 3, SubjectID: 7, FileName: "a.pdf"}})
	})

	files, err := client.FilesBySubject(context.Background(), 7)
	if err != nil {
		t.Fatalf("FilesBySubject failed: %v", err)
	}
	if len(files) != 1 || files[0].FileName != "a.pdf" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestMirrorStatistics(t *testing.T) {
	client := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
		writeMirrorEnvelope(t, w, model.Statistics{TotalSubjects: 6, TotalFiles: 25})
	})

	stats, err := client.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalSubjects != 6 || stats.TotalFiles != 25 {
		t.Fatalf("unexpected statistics %+v", stats)
	}
}

func TestMirrorErrorStatus(t *testing.T) {
	client := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.Subjects(context.Background()); err == nil {
		t.Fatal("expected an error for a non-200 mirror response")
	}
}

func TestMirrorReportedFailure(t *testing.T) {
	client := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false}`))
	})

	if _, err := client.Subjects(context.Background()); err == nil {
		t.Fatal("expected an error when the mirror reports failure")
	}
}
