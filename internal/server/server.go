package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sprayguard/internal/catalog"
	"sprayguard/internal/database"
	"sprayguard/internal/economics"
	"sprayguard/internal/engine"
	"sprayguard/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Assessor evaluates a request on behalf of a paddock
type Assessor interface {
	Assess(ctx context.Context, paddock string, req engine.Request) (*models.Assessment, error)
}

// HistoryStore lists stored assessments and loads one by ID
type HistoryStore interface {
	GetAssessments(paddock string, limit int) ([]models.AssessmentSummary, error)
	GetAssessment(id string) (*models.Assessment, error)
}

// Server represents the HTTP server
type Server struct {
	assessor Assessor
	catalog  *catalog.Catalog
	history  HistoryStore
	mux      *http.ServeMux
}

// NewServer creates a new HTTP server. history may be nil when no database is configured.
func NewServer(assessor Assessor, c *catalog.Catalog, history HistoryStore) *Server {
	s := &Server{
		assessor: assessor,
		catalog:  c,
		history:  history,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/assess", s.handleAssess)
	s.mux.HandleFunc("/catalog", s.handleCatalog)
	s.mux.HandleFunc("/break-even", s.handleBreakEven)
	s.mux.HandleFunc("/assessments", s.handleAssessments)
	s.mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrWeatherUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleHealth returns the server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().String(),
	})
}

// handleAssess evaluates one request
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	req, err := body.EngineRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	assessment, err := s.assessor.Assess(r.Context(), body.Paddock, req)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.Printf("Assessment for %q failed: %v", body.Paddock, err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// handleCatalog lists fungicide options, for one disease or all of them
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("disease")
	if name == "" {
		all := make(map[models.Disease][]models.FungicideOption)
		for _, d := range s.catalog.Diseases() {
			opts, err := s.catalog.Options(d)
			if err != nil {
				continue
			}
			all[d] = opts
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"catalogs": all})
		return
	}

	disease, err := models.ParseDisease(name)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.catalog.Options(disease)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"disease": disease,
		"count":   len(opts),
		"options": opts,
	})
}

// handleBreakEven computes break-even yield for a spray
func (s *Server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in models.EconomicInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := economics.Evaluate(in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAssessments returns stored assessment history
func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.history == nil {
		http.Error(w, "assessment history not configured", http.StatusServiceUnavailable)
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		s.handleAssessment(w, id)
		return
	}

	limit := defaultHistoryLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	paddock := r.URL.Query().Get("paddock")
	summaries, err := s.history.GetAssessments(paddock, limit)
	if err != nil {
		log.Printf("Failed to list assessments: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(summaries),
		"assessments": summaries,
	})
}

func (s *Server) handleAssessment(w http.ResponseWriter, id string) {
	a, err := s.history.GetAssessment(id)
	if errors.Is(err, database.ErrAssessmentNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Failed to load assessment %s: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
