package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// aiFallbackText is returned to the editor when the gateway is
// unreachable, so the suggestion button never surfaces a raw error.
const aiFallbackText = "Oferta imperdível! Aproveite enquanto durar o estoque."

// AIService is an opaque HTTP client for the copy/art gateway. The
// gateway owns prompt construction and model choice; this client only
// ships task + payload and reads back plain results.
type AIService struct {
	gatewayURL string
	client     *http.Client
}

var _ AIServiceInterface = (*AIService)(nil)

// NewAIService creates a gateway client. gatewayURL may be empty, in
// which case every call returns the fallback immediately.
func NewAIService(gatewayURL string) *AIService {
	return &AIService{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateText asks the gateway for promotional copy. task names the
// kind of text wanted ("headline", "description"); payload carries the
// product context. On any failure the fallback string is returned with
// a nil error so callers can show it directly.
func (s *AIService) GenerateText(ctx context.Context, task string, payload map[string]string) (string, error) {
	if s.gatewayURL == "" {
		return aiFallbackText, nil
	}

	body, err := json.Marshal(struct {
		Task    string            `json:"task"`
		Payload map[string]string `json:"payload"`
	}{Task: task, Payload: payload})
	if err != nil {
		return aiFallbackText, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/v1/text", bytes.NewReader(body))
	if err != nil {
		return aiFallbackText, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️  AI gateway unreachable: %v", err)
		return aiFallbackText, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️  AI gateway returned status %d", resp.StatusCode)
		return aiFallbackText, nil
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Text == "" {
		return aiFallbackText, nil
	}
	return out.Text, nil
}

// GenerateImage asks the gateway for header artwork. Unlike text, image
// failures are surfaced: there is no sensible fallback bitmap.
func (s *AIService) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if s.gatewayURL == "" {
		return nil, fmt.Errorf("ai gateway not configured")
	}

	body, err := json.Marshal(struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/v1/image", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai gateway returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ai gateway returned empty image")
	}
	return data, nil
}
