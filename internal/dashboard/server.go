// Package dashboard is the HTTP render surface: it serves the single-page
// dashboard and the JSON endpoints the page's reactive callbacks consume.
// Every endpoint recomputes its output from explicit inputs (filter name,
// visible rows, selected index); the server holds no per-user state.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dyluth/kennel/internal/catalog"
	"github.com/dyluth/kennel/internal/geo"
	"github.com/dyluth/kennel/internal/pipeline"
)

//go:embed assets/index.html
var assets embed.FS

var indexTmpl = template.Must(template.ParseFS(assets, "assets/index.html"))

// Store is what the dashboard needs from the record store: reads for the
// query pipeline and a ping for health checks.
type Store interface {
	pipeline.Store
	Ping(ctx context.Context) error
}

// Server serves the dashboard page and its JSON API.
type Server struct {
	store   Store
	catalog *catalog.Catalog
	center  geo.Point
	server  *http.Server
}

// NewServer creates a dashboard server. center is the default map center
// used when no row is selected.
func NewServer(store Store, cat *catalog.Catalog, center geo.Point) *Server {
	return &Server{
		store:   store,
		catalog: cat,
		center:  center,
	}
}

// Handler returns the server's route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/filters", s.handleFilters)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/map", s.handleMap)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start starts the HTTP server on addr in the background.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Dashboard server error: %v\n", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
