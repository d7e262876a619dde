package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/pipeline"
	"github.com/dgallion1/casgest/internal/report"
	"github.com/go-chi/chi/v5"
)

// handleBooklet returns the extracted booklet and stage report of a job.
func (s *Server) handleBooklet(w http.ResponseWriter, r *http.Request) {
	job, bk, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	_, rep := job.Result()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job":     job.Snapshot(),
		"booklet": bk.Snapshot(),
		"report":  rep,
	})
}

// handleBookletReport renders the booklet as markdown, html, csv, docx or json.
func (s *Server) handleBookletReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, bk, ok := s.finishedJob(w, r)
	if !ok {
		return
	}

	// Render fully before writing so a failure can still produce an error status.
	var buf bytes.Buffer
	if err := report.Write(&buf, format, bk); err != nil {
		s.log.Error("render report", "format", format, "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", report.ContentTypes[format])
	if format == report.FormatDOCX || format == report.FormatCSV {
		name := strings.TrimSuffix(bk.Filename, ".pdf") + "." + format.Extension()
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	w.Write(buf.Bytes())
}

// finishedJob resolves the job in the URL and its extracted booklet,
// writing the error response itself when either is unavailable.
func (s *Server) finishedJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, *booklet.Booklet, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, nil, false
	}
	bk, _ := job.Result()
	if bk == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed || snap.Status == pipeline.StatusDupSkipped {
			jsonError(w, "no booklet for job in status "+string(snap.Status), http.StatusNotFound)
		} else {
			jsonError(w, "extraction not finished", http.StatusConflict)
		}
		return nil, nil, false
	}
	return job, bk, true
}
