package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/cryvora/cryvora/internal/application/analysis"
	domain "github.com/cryvora/cryvora/internal/domain/analysis"
	"github.com/cryvora/cryvora/internal/middleware"
)

// maxImageBytes bounds multipart uploads held in memory.
const maxImageBytes = 10 << 20

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	// browser dashboard calls these endpoints cross-origin
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze", r.wrap(r.handleAnalyzeURL))
	mux.Post("/analyze-image", r.wrap(r.handleAnalyzeImage))
	mux.Post("/ai-analyze", r.wrap(r.handleAIAnalyze))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, domain.ErrMalformedInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

type verdictResponse struct {
	Risk       string `json:"risk"`
	Details    string `json:"details"`
	Confidence int    `json:"confidence"`
}

// POST /analyze
// Body: {"url": "<absolute url>"}
func (r *Router) handleAnalyzeURL(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateURL(body.URL); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	v, err := r.svc.AnalyzeURL(req.Context(), body.URL)
	if err != nil {
		return err
	}
	countVerdict(v)

	return writeJSON(w, verdictResponse{
		Risk:       string(v.Risk),
		Details:    v.Details,
		Confidence: v.Confidence,
	})
}

// POST /analyze-image
// Multipart form with field "image" (binary).
func (r *Router) handleAnalyzeImage(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxImageBytes); err != nil {
		return noImageUploaded(w)
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		return noImageUploaded(w)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return noImageUploaded(w)
	}

	v, err := r.svc.AnalyzeImage(req.Context(), data, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInput) {
			return noImageUploaded(w)
		}
		return err
	}
	countVerdict(v)

	return writeJSON(w, verdictResponse{
		Risk:       string(v.Risk),
		Details:    v.Details,
		Confidence: v.Confidence,
	})
}

// POST /ai-analyze
// Body: {"input": "...", "platform": "..."}
func (r *Router) handleAIAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Input    string `json:"input"`
		Platform string `json:"platform"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	tv, err := r.svc.AnalyzeText(req.Context(), middleware.SanitizeString(body.Input), body.Platform)
	if err != nil {
		return err
	}

	return writeJSON(w, tv)
}

func noImageUploaded(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	return json.NewEncoder(w).Encode(map[string]string{
		"risk":    "Error",
		"details": "No image uploaded.",
	})
}

func countVerdict(v domain.Verdict) {
	middleware.IncrementAnalyses()
	if v.Risk == domain.RiskMalicious {
		middleware.IncrementMalicious()
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
