// Package server exposes the pipeline over HTTP with the JSON contract the
// web front-end expects.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dekleptocracy/campaign-agent/internal/llm"
	"github.com/dekleptocracy/campaign-agent/internal/logging"
	"github.com/dekleptocracy/campaign-agent/internal/model"
	"github.com/dekleptocracy/campaign-agent/internal/store"
)

// Pipeline is the subset of *pipeline.Pipeline the handlers need.
type Pipeline interface {
	ListCandidates(ctx context.Context) ([]string, error)
	Investigate(ctx context.Context, company string) (string, error)
	GenerateCampaign(ctx context.Context, req model.CampaignRequest) (string, error)
	ResetMemory(ctx context.Context) error
	Memory(ctx context.Context) ([]string, error)
}

// Server routes HTTP requests to a Pipeline.
type Server struct {
	pipeline Pipeline
	logger   *zap.Logger
	mux      *http.ServeMux
}

// New builds the handler tree.
func New(p Pipeline, logger *zap.Logger) *Server {
	s := &Server{
		pipeline: p,
		logger:   logging.OrNop(logger),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /generate_initial_list", s.handleList)
	s.mux.HandleFunc("POST /investigate_company", s.handleInvestigate)
	s.mux.HandleFunc("POST /reset_memory", s.handleReset)
	s.mux.HandleFunc("POST /generate_content", s.handleCampaign)
	s.mux.HandleFunc("GET /memory", s.handleMemory)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// ServeHTTP tags the request with an id and logs it once it completes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	s.mux.ServeHTTP(rec, r)

	s.logger.Info("request",
		zap.String("id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("took", time.Since(start)))
}

// HTTPServer returns an *http.Server for addr. No write timeout is set since
// generation calls can take minutes.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type listResponse struct {
	Companies []string `json:"companies"`
}

type investigateRequest struct {
	Company string `json:"company"`
}

type investigateResponse struct {
	Details string `json:"details"`
}

type campaignResponse struct {
	Content string `json:"content"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type memoryResponse struct {
	Companies []string          `json:"companies"`
	Stats     model.MemoryStats `json:"stats"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	companies, err := s.pipeline.ListCandidates(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Companies: companies})
}

func (s *Server) handleInvestigate(w http.ResponseWriter, r *http.Request) {
	var req investigateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	details, err := s.pipeline.Investigate(r.Context(), req.Company)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, investigateResponse{Details: details})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.ResetMemory(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Memory has been reset."})
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	var req model.CampaignRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	content, err := s.pipeline.GenerateCampaign(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{Content: content})
}

func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	names, err := s.pipeline.Memory(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memoryResponse{Companies: names, Stats: store.Summarize(names)})
}

var errBadBody = errors.New("request body must be a JSON object")

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

// fail maps an error onto a status code and writes the error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadBody), errors.Is(err, store.ErrEmptyName):
		status = http.StatusBadRequest
	case errors.Is(err, llm.ErrGeneration):
		status = http.StatusBadGateway
	}

	log := s.logger.Warn
	if status == http.StatusInternalServerError {
		log = s.logger.Error
	}
	log("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))

	writeJSON(w, status, statusResponse{Status: "error", Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
