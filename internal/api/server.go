package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/agent"
	"github.com/adeolu/candidate-ranker/internal/ingestion"
	"github.com/adeolu/candidate-ranker/internal/models"
)

const maxUploadBytes = 32 << 20 // 32 MB

// Server handles HTTP requests.
type Server struct {
	agent           *agent.Agent
	defaultCriteria models.RankingCriteria
	log             *zap.Logger
}

// NewServer creates an API server. defaultCriteria applies to requests that do
// not carry their own criteria field.
func NewServer(a *agent.Agent, defaultCriteria models.RankingCriteria, log *zap.Logger) *Server {
	return &Server{
		agent:           a,
		defaultCriteria: defaultCriteria,
		log:             log,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze-candidate", s.handleAnalyzeCandidate)
	mux.HandleFunc("POST /api/analyze-batch", s.handleAnalyzeBatch)
	mux.HandleFunc("POST /api/ingest-gmail", s.handleIngestGmail)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "candidate-ranker",
		"endpoints": map[string]string{
			"POST /api/analyze-candidate": "Analyze a single resume and return its score",
			"POST /api/analyze-batch":     "Analyze multiple resumes and return ranked results",
			"POST /api/ingest-gmail":      "Fetch resume attachments from Gmail and rank them",
			"GET /api/report":             "Get the most recent ranked report",
			"GET /api/health":             "Health check",
		},
	})
}

// handleHealth provides a health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleAnalyzeCandidate scores a single uploaded resume.
func (s *Server) handleAnalyzeCandidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	criteria, err := s.requestCriteria(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !ingestion.SupportedExtension(header.Filename) {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)))
		return
	}

	path, err := s.agent.FileHandler().SaveUploadedFile(header.Filename, file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile, err := s.agent.AnalyzeFile(r.Context(), path, criteria)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("processing error: %v", err))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidate_id":    profile.CandidateID,
		"score":           profile.Score,
		"score_breakdown": profile.ScoreBreakdown,
		"extracted_data": map[string]interface{}{
			"skills":               profile.ExtractedData.Skills,
			"education":            profile.ExtractedData.Education,
			"experience_available": profile.ExtractedData.Experience != "",
		},
	})
}

// handleAnalyzeBatch ranks a batch of uploaded resumes.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	criteria, err := s.requestCriteria(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var paths []string
	for _, header := range files {
		if !ingestion.SupportedExtension(header.Filename) {
			s.log.Info("skipping unsupported file type", zap.String("filename", header.Filename))
			continue
		}

		file, err := header.Open()
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
			return
		}

		path, err := s.agent.FileHandler().SaveUploadedFile(header.Filename, file)
		file.Close()
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		s.respondError(w, http.StatusBadRequest, "no supported files uploaded")
		return
	}

	report, err := s.agent.AnalyzeFiles(r.Context(), paths, criteria)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("batch processing error: %v", err))
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// handleIngestGmail fetches resume attachments from Gmail and ranks them.
func (s *Server) handleIngestGmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	subject := r.FormValue("subject")
	if subject == "" {
		s.respondError(w, http.StatusBadRequest, "subject is required")
		return
	}

	criteria, err := s.requestCriteria(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.agent.IngestFromGmail(r.Context(), subject, criteria)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// handleReport returns the most recent ranked report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.agent.Report()
	if err != nil {
		if errors.Is(err, agent.ErrNoReport) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// requestCriteria parses the optional criteria form field, falling back to the
// configured defaults.
func (s *Server) requestCriteria(r *http.Request) (models.RankingCriteria, error) {
	raw := r.FormValue("criteria")
	if raw == "" {
		return s.defaultCriteria, nil
	}

	var criteria models.RankingCriteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return models.RankingCriteria{}, fmt.Errorf("invalid criteria: %w", err)
	}
	return criteria, nil
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr))
		next.ServeHTTP(w, r)
	})
}
