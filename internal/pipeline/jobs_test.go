package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/extract"
	"github.com/google/uuid"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusPublishing, "publishing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusExtracting,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "extraction error")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("extract: truncated xref")
	job.AddError("publish: status 503")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "extract: truncated xref" {
		t.Errorf("expected first error %q, got %q", "extract: truncated xref", snap.Progress.Errors[0])
	}
}

func TestNewJob(t *testing.T) {
	data := []byte("%PDF-1.4 bulletin")
	job := NewJob("CA20230512.pdf", data)

	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("status = %q, phase = %q", job.Status, job.Phase)
	}
	if _, err := uuid.Parse(job.ID); err != nil {
		t.Errorf("job id %q is not a uuid: %v", job.ID, err)
	}
	if job.ContentHash != ContentHashHex(data) {
		t.Errorf("content hash = %q", job.ContentHash)
	}
	if string(job.FileData()) != string(data) {
		t.Errorf("file data = %q", job.FileData())
	}
	if other := NewJob("CA20230512.pdf", data); other.ID == job.ID {
		t.Error("expected distinct job ids")
	}
}

func TestJob_SetResult(t *testing.T) {
	job := &Job{ID: "result-test", UpdatedAt: time.Now()}
	if bk, rep := job.Result(); bk != nil || rep != nil {
		t.Fatal("expected no result before extraction")
	}

	bk := &booklet.Booklet{Number: "17234"}
	ch := &booklet.Chamber{Name: "SALA PENAL"}
	ch.AddCaseFile(&booklet.CaseFile{Code: "casación n. 1-2021 lima", Page: 3})
	ch.AddCaseFile(&booklet.CaseFile{Code: "casación n. 2-2021 lima", Page: 4})
	bk.AddChamber(ch)
	rep := &extract.Report{Filename: "x.pdf"}

	job.SetResult(bk, rep, 1500*time.Millisecond)

	snap := job.Snapshot()
	if snap.Progress.Chambers != 1 || snap.Progress.CaseFiles != 2 {
		t.Errorf("progress = %+v", snap.Progress)
	}
	if snap.Progress.ExtractionMs != 1500 {
		t.Errorf("extraction ms = %d", snap.Progress.ExtractionMs)
	}
	gotBk, gotRep := job.Result()
	if gotBk != bk || gotRep != rep {
		t.Error("Result returned different values")
	}
}

func TestJob_AddStored(t *testing.T) {
	job := &Job{ID: "stored-test", UpdatedAt: time.Now()}
	job.AddStored(3)
	job.AddStored(2)

	if got := job.Snapshot().Progress.RecordsStored; got != 5 {
		t.Errorf("expected 5 records stored, got %d", got)
	}
}

func TestJob_ReleaseFileData(t *testing.T) {
	job := NewJob("a.pdf", []byte("content"))
	job.releaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
