package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Reply when the endpoint answered but under none of the known fields.
const medGemmaNoResponse = "No response from MedGemma."

// MedGemmaClient talks to a self-hosted medical model over plain HTTP.
// Endpoints of this kind are inconsistent about the field the generated
// text comes back under, so Generate probes the common ones in order.
type MedGemmaClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewMedGemmaClient(endpoint string) *MedGemmaClient {
	return &MedGemmaClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type medGemmaRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type medGemmaResponse struct {
	Response      string `json:"response"`
	Text          string `json:"text"`
	GeneratedText string `json:"generated_text"`
}

func (c *MedGemmaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(medGemmaRequest{Prompt: prompt, Model: "med-gemma"})
	if err != nil {
		return "", fmt.Errorf("failed to encode medgemma request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build medgemma request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("medgemma request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("medgemma endpoint returned status %d", resp.StatusCode)
	}

	var parsed medGemmaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode medgemma response: %w", err)
	}

	switch {
	case parsed.Response != "":
		return parsed.Response, nil
	case parsed.Text != "":
		return parsed.Text, nil
	case parsed.GeneratedText != "":
		return parsed.GeneratedText, nil
	}
	return medGemmaNoResponse, nil
}
