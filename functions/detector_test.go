package functions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	texts   []string
	results []AnalysisResult
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, text string, result AnalysisResult) error {
	r.texts = append(r.texts, text)
	r.results = append(r.results, result)
	return r.err
}

func decodeDetectorResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestEmotionService_Success(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := &emotionService{
		analyzer: NewEmotionAnalyzer(okPoster(t, EmotionScores{Anger: 0.0217, Disgust: 0.0524, Fear: 0.0352, Joy: 0.8847, Sadness: 0.036})),
		recorder: recorder,
	}

	req := httptest.NewRequest(http.MethodGet, "/emotionDetector?textToAnalyze="+url.QueryEscape("I am glad this happened"), nil)
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decodeDetectorResponse(t, rec)
	assert.Equal(t, "joy", got["dominant_emotion"])
	assert.Equal(t, 0.8847, got["joy"])
	assert.Contains(t, got["response"], "The dominant emotion is joy.")

	require.Len(t, recorder.texts, 1)
	assert.Equal(t, "I am glad this happened", recorder.texts[0])
}

func TestEmotionService_PostedForm(t *testing.T) {
	svc := &emotionService{
		analyzer: NewEmotionAnalyzer(okPoster(t, EmotionScores{Anger: 0.8011, Disgust: 0.0531, Fear: 0.0414, Joy: 0.0145, Sadness: 0.0261})),
	}

	form := url.Values{textParam: {"I am really mad about this"}}
	req := httptest.NewRequest(http.MethodPost, "/emotionDetector", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anger", decodeDetectorResponse(t, rec)["dominant_emotion"])
}

func TestEmotionService_BlankText(t *testing.T) {
	poster := &fakePoster{status: http.StatusOK}
	recorder := &fakeRecorder{}
	svc := &emotionService{analyzer: NewEmotionAnalyzer(poster), recorder: recorder}

	req := httptest.NewRequest(http.MethodGet, "/emotionDetector?textToAnalyze=", nil)
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeDetectorResponse(t, rec)
	for _, key := range []string{"anger", "disgust", "fear", "joy", "sadness", "dominant_emotion"} {
		v, ok := got[key]
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
	assert.Equal(t, "Invalid text! Please try again!", got["response"])
	assert.Zero(t, poster.calls)
	assert.Empty(t, recorder.texts)
}

func TestEmotionService_RemoteRejects(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := &emotionService{
		analyzer: NewEmotionAnalyzer(&fakePoster{status: http.StatusBadRequest}),
		recorder: recorder,
	}

	req := httptest.NewRequest(http.MethodGet, "/emotionDetector?textToAnalyze=some+text", nil)
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, decodeDetectorResponse(t, rec)["dominant_emotion"])
	assert.Empty(t, recorder.texts)
}

func TestEmotionService_AnalyzerError(t *testing.T) {
	svc := &emotionService{
		analyzer: NewEmotionAnalyzer(&fakePoster{err: errors.New("dial tcp: connection refused")}),
	}

	req := httptest.NewRequest(http.MethodGet, "/emotionDetector?textToAnalyze=some+text", nil)
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestEmotionService_RecordFailureKeepsResponse(t *testing.T) {
	svc := &emotionService{
		analyzer: NewEmotionAnalyzer(okPoster(t, EmotionScores{Fear: 0.7795, Sadness: 0.1056})),
		recorder: &fakeRecorder{err: errors.New("db down")},
	}

	req := httptest.NewRequest(http.MethodGet, "/emotionDetector?textToAnalyze=I+am+really+afraid", nil)
	rec := httptest.NewRecorder()
	svc.serve(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fear", decodeDetectorResponse(t, rec)["dominant_emotion"])
}

type fakeFlusher struct {
	calls int
	err   error
}

func (f *fakeFlusher) ForceFlush(context.Context) error {
	f.calls++
	return f.err
}

func TestInstrumentedHandler_Flushes(t *testing.T) {
	for _, flushErr := range []error{nil, errors.New("exporter unavailable")} {
		flusher := &fakeFlusher{err: flushErr}
		h := InstrumentedHandler("test", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}, flusher)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, 1, flusher.calls)
	}
}
