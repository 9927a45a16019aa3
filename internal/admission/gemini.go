package admission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/config"
	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

const classifyPromptTemplate = `Analyze this user message and determine if it describes an IT/computer/device-related technical issue that should be logged in an IT support system.

Message: %q

Consider it a valid IT issue if it involves computer hardware, software, network connectivity, access/authentication, peripheral devices, mobile devices, or security concerns.

Do NOT consider it an IT issue if it involves household problems, vehicle issues, greetings or small talk, personal problems, or facility maintenance.

Respond with ONLY one of these exact responses:
- "VALID_IT_ISSUE"
- "NOT_IT_ISSUE"
- "INSUFFICIENT_DETAIL"

Response:`

const categorizePromptTemplate = `Categorize this IT issue description into one of these categories:

Categories: hardware, software, network, access, printing, peripheral, mobile, security, storage

Issue description: %q

Respond with ONLY the category name (lowercase, one word).

Response:`

// GeminiClient calls the Generative Language REST API for admission decisions.
// Every call is a single attempt bounded by the configured timeout; callers
// treat any returned error as remote unavailability.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiClient builds the client. Returns nil when no API key is
// configured so callers can wire a local-only gate.
func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// ClassifyIssue asks the model for the admission verdict.
func (c *GeminiClient) ClassifyIssue(ctx context.Context, description string) (Outcome, error) {
	text, err := c.generate(ctx, fmt.Sprintf(classifyPromptTemplate, description))
	if err != nil {
		return OutcomeUnavailable, err
	}

	switch outcome := Outcome(strings.ToUpper(strings.TrimSpace(text))); outcome {
	case OutcomeValid, OutcomeNotIT, OutcomeInsufficientDetail:
		return outcome, nil
	default:
		return OutcomeUnavailable, fmt.Errorf("unexpected model response %q", text)
	}
}

// CategorizeIssue asks the model for a taxonomy category.
func (c *GeminiClient) CategorizeIssue(ctx context.Context, description string) (domain.Category, error) {
	text, err := c.generate(ctx, fmt.Sprintf(categorizePromptTemplate, description))
	if err != nil {
		return "", err
	}

	category := domain.Category(strings.ToLower(strings.TrimSpace(text)))
	if !domain.ValidCategory(category) {
		return "", fmt.Errorf("model returned unknown category %q", text)
	}
	return category, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate content: status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
