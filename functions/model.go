package functions

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	Anger   = "anger"
	Disgust = "disgust"
	Fear    = "fear"
	Joy     = "joy"
	Sadness = "sadness"
)

// EmotionScores is the five-way confidence set returned by the classifier.
// The scores are not normalized and need not sum to 1.
type EmotionScores struct {
	Anger   float64 `json:"anger"`
	Disgust float64 `json:"disgust"`
	Fear    float64 `json:"fear"`
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
}

// AnalysisResult is what the analyzer returns.
// Every field is nil when the emotion could not be determined.
type AnalysisResult struct {
	Anger           *float64 `json:"anger"`
	Disgust         *float64 `json:"disgust"`
	Fear            *float64 `json:"fear"`
	Joy             *float64 `json:"joy"`
	Sadness         *float64 `json:"sadness"`
	DominantEmotion *string  `json:"dominant_emotion"`
}

// emotionRequest is the EmotionPredict request body.
type emotionRequest struct {
	RawDocument rawDocument `json:"raw_document"`
}

type rawDocument struct {
	Text string `json:"text"`
}

// emotionResponse holds the part of the EmotionPredict response we read.
// Pointers distinguish a missing key from a zero score.
type emotionResponse struct {
	EmotionPredictions []struct {
		Emotion struct {
			Anger   *float64 `json:"anger"`
			Disgust *float64 `json:"disgust"`
			Fear    *float64 `json:"fear"`
			Joy     *float64 `json:"joy"`
			Sadness *float64 `json:"sadness"`
		} `json:"emotion"`
	} `json:"emotionPredictions"`
}

type AnalysisRecord struct {
	bun.BaseModel `bun:"table:emotion_analyses"`

	ID              int64     `bun:"id,pk,autoincrement"`
	Text            string    `bun:"text"`
	Anger           float64   `bun:"anger"`
	Disgust         float64   `bun:"disgust"`
	Fear            float64   `bun:"fear"`
	Joy             float64   `bun:"joy"`
	Sadness         float64   `bun:"sadness"`
	DominantEmotion string    `bun:"dominant_emotion"`
	AnalyzedAt      time.Time `bun:"analyzed_at"`
}
