package functions

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const modelIDHeader = "grpc-metadata-mm-model-id"

// HTTPPoster posts to a fixed EmotionPredict endpoint.
type HTTPPoster struct {
	endpoint string
	modelID  string
	timeout  time.Duration
	client   *http.Client
}

func NewHTTPPoster(endpoint, modelID string, timeout time.Duration) *HTTPPoster {
	return &HTTPPoster{
		endpoint: endpoint,
		modelID:  modelID,
		timeout:  timeout,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (p *HTTPPoster) Post(ctx context.Context, body []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.modelID != "" {
		req.Header.Set(modelIDHeader, p.modelID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, respBody, nil
}
