package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/extract"
)

// Extractor builds a booklet from raw PDF bytes.
type Extractor interface {
	BuildBytes(data []byte, filename string) (*booklet.Booklet, *extract.Report, error)
}

// Publisher emits extracted booklets as records. *pathstore.Client
// implements it.
type Publisher interface {
	Publish(ctx context.Context, bk *booklet.Booklet, contentHash string) (int, error)
	LookupHash(ctx context.Context, contentHash string) (string, error)
}

// Worker processes a single bulletin job.
type Worker struct {
	extractor Extractor
	publisher Publisher
	stats     *LatencyStats
	log       *slog.Logger
}

// NewWorker creates a worker. publisher may be nil, in which case jobs
// complete after extraction.
func NewWorker(extractor Extractor, publisher Publisher, stats *LatencyStats, log *slog.Logger) *Worker {
	return &Worker{
		extractor: extractor,
		publisher: publisher,
		stats:     stats,
		log:       log,
	}
}

// Process runs extraction and publication for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)
	defer job.releaseFileData()

	// Phase 1: Dedup check
	if w.publisher != nil {
		existing, err := w.publisher.LookupHash(ctx, job.ContentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != "" {
			log.Info("duplicate bulletin, skipping", "existing", existing)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	bk, rep, err := w.extractor.BuildBytes(job.FileData(), job.Filename)
	elapsed := time.Since(start)
	if w.stats != nil {
		w.stats.Record(elapsed, err != nil)
	}
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetResult(bk, rep, elapsed)
	log.Info("extraction complete",
		"booklet", bk.Number,
		"chambers", len(bk.Chambers),
		"case_files", bk.CaseFileCount(),
		"duration_ms", elapsed.Milliseconds(),
	)

	if w.publisher == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 3: Publish
	job.SetStatus(StatusPublishing, "publishing")
	n, err := w.publisher.Publish(ctx, bk, job.ContentHash)
	job.AddStored(n)
	switch {
	case err != nil && n > 0:
		log.Error("publish incomplete", "stored", n, "error", err)
		job.AddError(fmt.Sprintf("publish: %s", err))
		job.SetStatus(StatusPartial, "done")
	case err != nil:
		log.Error("publish failed", "error", err)
		job.AddError(fmt.Sprintf("publish: %s", err))
		job.SetStatus(StatusFailed, "publishing")
	default:
		log.Info("publish complete", "stored", n)
		job.SetStatus(StatusCompleted, "done")
	}
}
