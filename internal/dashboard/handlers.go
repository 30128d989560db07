package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dyluth/kennel/internal/geo"
	"github.com/dyluth/kennel/internal/pipeline"
	"github.com/dyluth/kennel/internal/summary"
	"github.com/dyluth/kennel/pkg/shelter"
)

// recordsResponse carries a ResultSet plus a degraded-store marker, so the
// page can tell "no matches" from "store outage" if it wants to. The rows
// are identical either way: the worst case the user sees is an empty
// table, never an error page.
type recordsResponse struct {
	Filter     string           `json:"filter"`
	Columns    []string         `json:"columns"`
	Rows       []shelter.Record `json:"rows"`
	StoreError bool             `json:"store_error,omitempty"`
}

type summaryResponse struct {
	Filter string `json:"filter"`
	summary.Summary
	StoreError bool `json:"store_error,omitempty"`
}

// mapRequest mirrors the page's table state: the currently visible
// (client-filtered and client-sorted) rows and the selected index within
// them. Selected is a pointer so "no selection" is distinguishable from
// row zero.
type mapRequest struct {
	Rows     []shelter.Record `json:"rows"`
	Selected *int             `json:"selected"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := struct {
		Filters []struct{ Name, Label string }
		Center  geo.Point
	}{Center: s.center}
	for _, f := range s.catalog.Filters() {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		data.Filters = append(data.Filters, struct{ Name, Label string }{f.Name, label})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("[Dashboard] failed to render index: %v", err)
	}
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Filters())
}

// handleRecords recomputes the table for the requested filter. Store
// failures degrade to an empty, schema-stable result.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := r.URL.Query().Get("filter")
	rs, err := pipeline.Run(r.Context(), s.store, s.catalog, filter)

	writeJSON(w, http.StatusOK, recordsResponse{
		Filter:     filter,
		Columns:    rs.Columns,
		Rows:       rs.Rows,
		StoreError: err != nil,
	})
}

// handleSummary recomputes the pie chart breakdown for the requested
// filter. The long-tail merge only applies in the reset state.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := r.URL.Query().Get("filter")
	rs, err := pipeline.Run(r.Context(), s.store, s.catalog, filter)

	writeJSON(w, http.StatusOK, summaryResponse{
		Filter:     filter,
		Summary:    summary.Summarize(rs, s.catalog.IsReset(filter)),
		StoreError: err != nil,
	})
}

// handleMap resolves the page's current selection into map state. It
// always answers 200 with a renderable state - a malformed body or a
// nonsense index just yields the default view.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req mapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[Dashboard] bad map request: %v", err)
		writeJSON(w, http.StatusOK, geo.MapState{Center: s.center})
		return
	}

	selected := -1
	if req.Selected != nil {
		selected = *req.Selected
	}

	writeJSON(w, http.StatusOK, geo.Resolve(req.Rows, selected, s.center))
}

// handleHealth handles GET /healthz requests.
// Returns 200 OK if the store is accessible, 503 Service Unavailable otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "healthy", Store: "connected"}
	status := http.StatusOK

	if err := s.store.Ping(ctx); err != nil {
		resp = healthResponse{Status: "unhealthy", Store: "disconnected", Error: err.Error()}
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

// healthResponse is the JSON response structure for health checks.
type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Dashboard] failed to encode response: %v", err)
	}
}
