package services

import (
	"context"
	"testing"

	"github.com/studyshelf/catalog-api/model"
)

func TestStatsDefaultSnapshot(t *testing.T) {
	_, _, _, stats, _ := newTestServices(t)

	snapshot, err := stats.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}

	want := model.DefaultStatistics()
	if snapshot.TotalSubjects != want.TotalSubjects ||
		snapshot.TotalFiles != want.TotalFiles ||
		snapshot.TotalUsers != want.TotalUsers ||
		snapshot.TotalDownloads != want.TotalDownloads ||
		snapshot.TotalViews != want.TotalViews {
		t.Fatalf("expected the documented default snapshot, got %+v", snapshot)
	}
}

func TestStatsRecompute(t *testing.T) {
	subjects, files, users, stats, _ := newTestServices(t)
	ctx := context.Background()

	subject := mustCreateSubject(t, subjects, "Philosophy")
	file := mustCreateFile(t, files, subject.ID, "a.pdf")
	mustCreateFile(t, files, subject.ID, "b.pdf")

	if _, err := users.Touch(ctx, 1001); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := files.IncrementDownloads(ctx, file.ID); err != nil {
			t.Fatalf("IncrementDownloads failed: %v", err)
		}
	}
	if _, err := files.IncrementViews(ctx, file.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	// Mutations already recompute; read back the persisted snapshot.
	snapshot, err := stats.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if snapshot.TotalSubjects != 1 {
		t.Fatalf("expected 1 subject, got %d", snapshot.TotalSubjects)
	}
	if snapshot.TotalFiles != 2 {
		t.Fatalf("expected 2 files, got %d", snapshot.TotalFiles)
	}
	if snapshot.TotalUsers != 1 {
		t.Fatalf("expected 1 user, got %d", snapshot.TotalUsers)
	}
	if snapshot.TotalDownloads != 3 {
		t.Fatalf("expected 3 downloads, got %d", snapshot.TotalDownloads)
	}
	if snapshot.TotalViews != 1 {
		t.Fatalf("expected 1 view, got %d", snapshot.TotalViews)
	}
	if snapshot.LastUpdated.IsZero() {
		t.Fatal("expected lastUpdated to be stamped")
	}
}

func TestStatsRecomputeAfterDelete(t *testing.T) {
	subjects, files, _, stats, _ := newTestServices(t)
	ctx := context.Background()

	subject := mustCreateSubject(t, subjects, "History")
	mustCreateFile(t, files, subject.ID, "a.pdf")

	if err := subjects.Delete(ctx, subject.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snapshot, err := stats.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if snapshot.TotalSubjects != 0 || snapshot.TotalFiles != 0 {
		t.Fatalf("expected empty totals after delete, got %+v", snapshot)
	}
}

func TestStatsPopularRanking(t *testing.T) {
	subjects, files, _, stats, _ := newTestServices(t)
	ctx := context.Background()

	subject := mustCreateSubject(t, subjects, "Philosophy")
	low := mustCreateFile(t, files, subject.ID, "low.pdf")
	high := mustCreateFile(t, files, subject.ID, "high.pdf")
	tied := mustCreateFile(t, files, subject.ID, "tied.pdf")

	for i := 0; i < 5; i++ {
		if _, err := files.IncrementDownloads(ctx, high.ID); err != nil {
			t.Fatalf("IncrementDownloads failed: %v", err)
		}
	}
	// low and tied stay at 0 downloads and tie; insertion order breaks it

	ranked, err := stats.PopularFiles(ctx, 10)
	if err != nil {
		t.Fatalf("PopularFiles failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 files, got %d", len(ranked))
	}
	if ranked[0].ID != high.ID {
		t.Fatalf("expected most-downloaded first, got file %d", ranked[0].ID)
	}
	if ranked[1].ID != low.ID || ranked[2].ID != tied.ID {
		t.Fatal("ties must keep insertion order")
	}

	capped, err := stats.PopularFiles(ctx, 2)
	if err != nil {
		t.Fatalf("PopularFiles failed: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(capped))
	}
}

func TestStatsRecentUsers(t *testing.T) {
	_, _, users, stats, _ := newTestServices(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if _, err := users.Touch(ctx, id); err != nil {
			t.Fatalf("Touch failed: %v", err)
		}
	}
	// Re-touch the first user so it becomes most recent
	if _, err := users.Touch(ctx, 1); err != nil {
		t.Fatalf("re-Touch failed: %v", err)
	}

	recent, err := stats.RecentUsers(ctx, 2)
	if err != nil {
		t.Fatalf("RecentUsers failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 users, got %d", len(recent))
	}
	if recent[0].UserID != 1 {
		t.Fatalf("expected the re-touched user first, got %d", recent[0].UserID)
	}
}

func TestStatsDashboard(t *testing.T) {
	subjects, files, users, stats, _ := newTestServices(t)
	ctx := context.Background()

	subject := mustCreateSubject(t, subjects, "Philosophy")
	mustCreateFile(t, files, subject.ID, "a.pdf")
	if _, err := users.Touch(ctx, 7); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	data, err := stats.GetDashboardData(ctx)
	if err != nil {
		t.Fatalf("GetDashboardData failed: %v", err)
	}
	if data.Statistics == nil {
		t.Fatal("expected a statistics snapshot")
	}
	if len(data.Subjects) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(data.Subjects))
	}
	if len(data.RecentFiles) != 1 || len(data.PopularFiles) != 1 {
		t.Fatal("expected the file in both rankings")
	}
	if len(data.RecentUsers) != 1 {
		t.Fatalf("expected 1 recent user, got %d", len(data.RecentUsers))
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		fallback int
		want     int
	}{
		{"zero uses fallback", 0, 10, 10},
		{"negative uses fallback", -3, 5, 5},
		{"in range passes through", 7, 10, 7},
		{"above max is capped", 5000, 10, maxRankingLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampLimit(tc.limit, tc.fallback); got != tc.want {
				t.Fatalf("clampLimit(%d, %d) = %d, want %d",
					tc.limit, tc.fallback, got, tc.want)
			}
		})
	}
}
