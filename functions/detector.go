package functions

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

var cfg *Config

func init() {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		slog.Error("Failed to load config",
			slog.Group("config", "error", err),
		)

		// A misconfigured function cannot serve any request.
		panic(err)
	}

	slog.SetDefault(NewCustomLogger(os.Stdout, cfg.ServiceName, cfg.LogLevel))

	tp := initTracingOrFallback(cfg)
	handler := InstrumentedHandler("emotionDetector", emotionDetector, tp)
	functions.HTTP("emotionDetector", handler)
}

func emotionDetector(w http.ResponseWriter, r *http.Request) {
	poster := NewHTTPPoster(cfg.EmotionEndpoint, cfg.EmotionModelID, cfg.EmotionTimeout)
	svc := &emotionService{analyzer: NewEmotionAnalyzer(poster)}

	// Recording is optional; without a DSN the function only analyzes.
	if cfg.DSN != "" {
		db, err := NewDBClient(cfg.DSN)
		if err != nil {
			slog.Error("Failed to create Database client",
				slog.Group("database", "error", err),
			)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer db.Close()
		svc.recorder = NewDBRecorder(db)
	}

	svc.serve(w, r)
}

type emotionService struct {
	analyzer *EmotionAnalyzer
	recorder ResultRecorder
}

type detectorResponse struct {
	AnalysisResult
	Response string `json:"response"`
}

func (s *emotionService) serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	text := getTextQuery(r)

	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		slog.Error("Failed to analyze emotion",
			slog.Group("emotionDetector", "error", err),
		)
		http.Error(w, "failed to analyze emotion", http.StatusBadGateway)
		return
	}

	status := http.StatusOK
	if result.IsEmpty() {
		status = http.StatusBadRequest
	} else if s.recorder != nil {
		if err := s.recorder.Record(ctx, text, result); err != nil {
			slog.Error("Failed to record analysis",
				slog.Group("emotionDetector", slog.Group("database", "error", err)),
			)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(detectorResponse{
		AnalysisResult: result,
		Response:       result.Sentence(),
	}); err != nil {
		slog.Error("Failed to write response",
			slog.Group("emotionDetector", "error", err),
		)
		return
	}

	slog.Info("emotionDetector", slog.Group("emotionDetector", "status", status))
}
