package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// defaultTimeout bounds a single model call. Calls are never retried.
const defaultTimeout = 120 * time.Second

// maxErrorBody caps how much of a failed response ends up in logs
const maxErrorBody = 512

// postJSON sends body and returns the status code with the raw response
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(client, req)
}

func do(client *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// classifyFailure maps a non-2xx reply to an outcome.
// 429 and RESOURCE_EXHAUSTED are rate limits; everything else is a rejection.
func classifyFailure(status int, providerStatus, message string, raw []byte) domain.SynthesisOutcome {
	detail := message
	if detail == "" {
		detail = truncate(string(raw), maxErrorBody)
	}
	detail = fmt.Sprintf("status %d: %s", status, detail)

	if status == http.StatusTooManyRequests || providerStatus == "RESOURCE_EXHAUSTED" {
		return domain.SynthesisFailed(domain.SynthesisRateLimited, detail)
	}
	return domain.SynthesisFailed(domain.SynthesisUpstreamRejected, detail)
}

// textOutcome reports OK only when the model produced visible text
func textOutcome(text string) domain.SynthesisOutcome {
	if strings.TrimSpace(text) == "" {
		return domain.SynthesisFailed(domain.SynthesisEmptyResponse, "model returned no text")
	}
	return domain.SynthesisOk(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
