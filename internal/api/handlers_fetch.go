package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/dgallion1/casgest/internal/pipeline"
)

type fetchRequest struct {
	Year    int  `json:"year"`
	Month   int  `json:"month"`
	Extract bool `json:"extract"`
}

// handleFetch downloads a month of bulletins into the data directory and
// optionally queues the new files for extraction.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil || s.store == nil {
		jsonError(w, "fetching is not configured", http.StatusServiceUnavailable)
		return
	}

	var req fetchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		jsonError(w, "month must be between 1 and 12", http.StatusBadRequest)
		return
	}
	if req.Year < 2000 || req.Year > time.Now().Year() {
		jsonError(w, "year out of range", http.StatusBadRequest)
		return
	}

	result, err := s.fetcher.Sync(r.Context(), req.Year, req.Month, s.store)
	if err != nil {
		s.log.Error("fetch failed", "year", req.Year, "month", req.Month, "error", err)
		jsonError(w, "fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	resp := map[string]any{"sync": result}
	if req.Extract {
		jobs := []map[string]any{}
		for _, name := range result.Downloaded {
			jobs = append(jobs, s.submitStored(name))
		}
		resp["jobs"] = jobs
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleListStored lists the bulletins held in the data directory.
func (s *Server) handleListStored(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "storage is not configured", http.StatusServiceUnavailable)
		return
	}
	names, err := s.store.List()
	if err != nil {
		jsonError(w, "failed to list bulletins: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"bulletins": names})
}

func (s *Server) submitStored(name string) map[string]any {
	data, err := os.ReadFile(s.store.Path(name))
	if err != nil {
		return map[string]any{"filename": name, "error": "failed to read stored file"}
	}
	job := pipeline.NewJob(name, data)
	if err := s.orchestrator.Submit(job); err != nil {
		return map[string]any{"filename": name, "error": err.Error()}
	}
	return jobAccepted(job)
}
