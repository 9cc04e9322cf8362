package functions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrMalformedResponse = errors.New("malformed emotion response")

// Poster sends a request body to the classifier and returns the raw reply.
type Poster interface {
	Post(ctx context.Context, body []byte) (status int, respBody []byte, err error)
}

type EmotionAnalyzer struct {
	poster Poster
}

func NewEmotionAnalyzer(poster Poster) *EmotionAnalyzer {
	return &EmotionAnalyzer{poster: poster}
}

// Analyze asks the classifier for the emotion scores of text.
// Blank text and non-200 replies yield an empty result and a nil error.
// Transport failures and malformed bodies are returned as errors.
func (a *EmotionAnalyzer) Analyze(ctx context.Context, text string) (AnalysisResult, error) {
	group := slog.Group("analyzeEmotion")

	if strings.TrimSpace(text) == "" {
		slog.Info("text is blank", group)
		return AnalysisResult{}, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "AnalyzeEmotion")
	defer span.End()

	body, err := json.Marshal(emotionRequest{RawDocument: rawDocument{Text: text}})
	if err != nil {
		return AnalysisResult{}, err
	}

	status, respBody, err := a.poster.Post(ctx, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "post failed")
		slog.Error("Failed to call emotion endpoint",
			slog.Group("analyzeEmotion", "error", err),
		)
		return AnalysisResult{}, fmt.Errorf("post emotion request: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status != http.StatusOK {
		slog.Warn("Emotion endpoint returned non-OK status",
			slog.Group("analyzeEmotion", "status", status),
		)
		return AnalysisResult{}, nil
	}

	scores, err := parseEmotionScores(respBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		slog.Error("Failed to parse emotion response",
			slog.Group("analyzeEmotion", "error", err),
		)
		return AnalysisResult{}, err
	}

	result := NewAnalysisResult(scores)
	span.SetAttributes(attribute.String("emotion.dominant", *result.DominantEmotion))

	return result, nil
}

func parseEmotionScores(body []byte) (EmotionScores, error) {
	var resp emotionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return EmotionScores{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.EmotionPredictions) == 0 {
		return EmotionScores{}, fmt.Errorf("%w: no emotionPredictions", ErrMalformedResponse)
	}

	e := resp.EmotionPredictions[0].Emotion
	fields := []struct {
		name  string
		value *float64
	}{
		{Anger, e.Anger},
		{Disgust, e.Disgust},
		{Fear, e.Fear},
		{Joy, e.Joy},
		{Sadness, e.Sadness},
	}
	for _, f := range fields {
		if f.value == nil {
			return EmotionScores{}, fmt.Errorf("%w: missing %q", ErrMalformedResponse, f.name)
		}
	}

	return EmotionScores{
		Anger:   *e.Anger,
		Disgust: *e.Disgust,
		Fear:    *e.Fear,
		Joy:     *e.Joy,
		Sadness: *e.Sadness,
	}, nil
}

// Dominant returns the emotion with the greatest score.
// Exact ties go to the first of anger, disgust, fear, joy, sadness.
func (s EmotionScores) Dominant() string {
	ordered := []struct {
		name  string
		score float64
	}{
		{Anger, s.Anger},
		{Disgust, s.Disgust},
		{Fear, s.Fear},
		{Joy, s.Joy},
		{Sadness, s.Sadness},
	}

	best := ordered[0]
	for _, e := range ordered[1:] {
		if e.score > best.score {
			best = e
		}
	}
	return best.name
}

func NewAnalysisResult(s EmotionScores) AnalysisResult {
	dominant := s.Dominant()
	return AnalysisResult{
		Anger:           &s.Anger,
		Disgust:         &s.Disgust,
		Fear:            &s.Fear,
		Joy:             &s.Joy,
		Sadness:         &s.Sadness,
		DominantEmotion: &dominant,
	}
}

// IsEmpty reports whether the result carries no analysis.
func (r AnalysisResult) IsEmpty() bool {
	return r.DominantEmotion == nil
}

// Scores returns the score set, or false for an empty result.
func (r AnalysisResult) Scores() (EmotionScores, bool) {
	if r.IsEmpty() || r.Anger == nil || r.Disgust == nil || r.Fear == nil || r.Joy == nil || r.Sadness == nil {
		return EmotionScores{}, false
	}
	return EmotionScores{
		Anger:   *r.Anger,
		Disgust: *r.Disgust,
		Fear:    *r.Fear,
		Joy:     *r.Joy,
		Sadness: *r.Sadness,
	}, true
}

// Sentence formats the result the way the detector page shows it.
func (r AnalysisResult) Sentence() string {
	s, ok := r.Scores()
	if !ok {
		return "Invalid text! Please try again!"
	}
	return fmt.Sprintf(
		"For the given statement, the system response is 'anger': %v, 'disgust': %v, 'fear': %v, 'joy': %v and 'sadness': %v. The dominant emotion is %s.",
		s.Anger, s.Disgust, s.Fear, s.Joy, s.Sadness, *r.DominantEmotion,
	)
}
