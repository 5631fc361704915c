package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ltv-advisor/config"
	"ltv-advisor/domain"
	"ltv-advisor/logger"
	"ltv-advisor/report"
)

// ExplanationService turns a calculation into prose. With an API key it
// asks a chat completions endpoint; otherwise, or when that call fails, it
// returns the deterministic narrative.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a UK mortgage adviser. You explain overpayment decisions clearly and " +
	"accurately in British English, quoting amounts in pounds. You never invent figures that are not " +
	"in the analysis you are given and you remind the reader that this is not financial advice."

func NewExplanationService(cfg config.ExplanationConfig) *ExplanationService {
	return &ExplanationService{
		apiKey:    cfg.APIKey,
		apiURL:    cfg.APIURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		enabled:   cfg.APIKey != "" && cfg.APIURL != "",
		httpClient: &http.Client{
			Timeout: config.Seconds(cfg.TimeoutSeconds),
		},
	}
}

// Explain never fails; the narrative is always available as a fallback.
func (s *ExplanationService) Explain(ctx context.Context, result domain.CalculationResult) string {
	narrative := report.Narrative(result)
	if !s.enabled {
		return narrative
	}

	explanation, err := s.callLLM(ctx, buildPrompt(result, narrative))
	if err != nil {
		logger.Warn(ctx, "explanation service unavailable, using narrative", zap.Error(err))
		return narrative
	}
	return explanation
}

func buildPrompt(result domain.CalculationResult, narrative string) string {
	return fmt.Sprintf(`A borrower is deciding whether to overpay their mortgage to reach a lower LTV bracket.

ANALYSIS OVER THE %d YEAR FIXED TERM:
%s

INSTRUCTIONS:
1. In 3-4 sentences, say whether overpaying %s looks worthwhile and why.
2. Contrast the simple, fairer and optimistic views in one sentence.
3. Use only the figures above.`,
		result.FixedTermYears, narrative, report.Money(result.LTV.AmountToNextBracket))
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: s.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding API response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty response from AI")
	}
	return content, nil
}
