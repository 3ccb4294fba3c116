package serving

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// scoreResponse is the success payload: one score per input record, in
// input order.
type scoreResponse struct {
	RiskScore []float64 `json:"risk_score"`
}

// errorResponse is the failure payload. Every failure inside the shim
// is reported this way; nothing propagates past the handler.
type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the shim's HTTP router around a loaded bundle. The
// bundle is read-only shared state; handlers never mutate it.
func NewRouter(bundle *Bundle) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/score", scoreHandler(bundle))

	return r
}

// scoreHandler decodes a JSON array of flat records, remaps categorical
// fields through the loaded encoders, and applies the model. Any
// failure (malformed JSON, unseen label, non-numeric feature) is
// caught and returned as the error-JSON shape.
func scoreHandler(bundle *Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("serving: panic in score handler", zap.Any("panic", rec))
				writeJSON(w, http.StatusOK, errorResponse{Error: "internal scoring failure"})
			}
		}()

		var records []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			writeJSON(w, http.StatusOK, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		scores := make([]float64, 0, len(records))
		for _, rec := range records {
			encoded, err := bundle.Encode(rec)
			if err != nil {
				writeJSON(w, http.StatusOK, errorResponse{Error: err.Error()})
				return
			}
			score, err := bundle.Model.Predict(encoded)
			if err != nil {
				writeJSON(w, http.StatusOK, errorResponse{Error: err.Error()})
				return
			}
			scores = append(scores, score)
		}

		writeJSON(w, http.StatusOK, scoreResponse{RiskScore: scores})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serving: write response", zap.Error(err))
	}
}
