package storage

import (
	"path/filepath"
	"testing"

	"videoSlides/core"
)

func sampleResult(jobID string) core.SelectionResult {
	return core.SelectionResult{
		JobID:    jobID,
		VideoRef: "dQw4w9WgXcQ",
		Records: []core.FrameRecord{
			{TimeKey: 0, ImagePath: "frames/frame_000000.jpg", Text: "intro"},
			{TimeKey: 30, ImagePath: "frames/frame_000030.jpg", Text: ""},
			{TimeKey: 44, ImagePath: "frames/frame_000044.jpg", Text: "split point"},
		},
	}
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()

	if err := store.SaveRun(sampleResult("job-a")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := store.SaveRun(sampleResult("job-b")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("job-a")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.VideoRef != "dQw4w9WgXcQ" {
		t.Errorf("VideoRef = %q", got.VideoRef)
	}
	if len(got.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(got.Records))
	}
	for i := 1; i < len(got.Records); i++ {
		if got.Records[i].TimeKey <= got.Records[i-1].TimeKey {
			t.Errorf("records out of order: %d then %d", got.Records[i-1].TimeKey, got.Records[i].TimeKey)
		}
	}
	if got.Records[2].Text != "split point" {
		t.Errorf("record text = %q", got.Records[2].Text)
	}

	if _, err := store.GetRun("no-such-job"); err == nil {
		t.Error("GetRun of unknown job should fail")
	}

	infos, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("ListRuns returned %d runs, want 2", len(infos))
	}
	for _, info := range infos {
		if info.RecordCount != 3 {
			t.Errorf("run %s has RecordCount %d, want 3", info.JobID, info.RecordCount)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if err := store.SaveRun(sampleResult("job-a")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	smaller := core.SelectionResult{
		JobID:    "job-a",
		VideoRef: "other-video",
		Records: []core.FrameRecord{
			{TimeKey: 0, ImagePath: "frames/frame_000000.jpg", Text: "only one"},
		},
	}
	if err := store.SaveRun(smaller); err != nil {
		t.Fatalf("SaveRun overwrite failed: %v", err)
	}

	got, err := store.GetRun("job-a")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.VideoRef != "other-video" || len(got.Records) != 1 {
		t.Errorf("overwrite left stale data: ref=%q records=%d", got.VideoRef, len(got.Records))
	}
}
