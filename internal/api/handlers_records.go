package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleListRecords lists the booklets published to pathstore.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		jsonError(w, "record sink is not configured", http.StatusServiceUnavailable)
		return
	}
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	metas, err := s.records.ListBooklets(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list records: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"booklets": metas})
}

// handleDeleteRecord removes a published booklet, addressed by issue date
// (YYYY-MM-DD) or its undated-<hash> key.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		jsonError(w, "record sink is not configured", http.StatusServiceUnavailable)
		return
	}
	name := chi.URLParam(r, "key")
	if name == "" || strings.ContainsAny(name, "/.*") {
		jsonError(w, "invalid booklet key", http.StatusBadRequest)
		return
	}
	key := "bulletins/" + name

	ctx := r.Context()
	meta, err := s.records.GetMeta(ctx, key)
	if err != nil {
		jsonError(w, "failed to read record: "+err.Error(), http.StatusBadGateway)
		return
	}
	if meta == nil {
		jsonError(w, "booklet not found", http.StatusNotFound)
		return
	}
	if err := s.records.DeleteBooklet(ctx, key, meta.ContentHash); err != nil {
		jsonError(w, "failed to delete record: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"deleted":  key,
		"filename": meta.Filename,
	})
}
