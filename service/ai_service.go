package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"cart-optimizer/domain"
)

type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService() *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	enabled := apiKey != ""

	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateCartSummary rewrites the rule-based summary in a friendlier voice.
// Any failure falls back to the rule-based text; the recommendation never
// depends on the LLM being reachable.
func (s *AIService) GenerateCartSummary(
	profile domain.FinancialProfile,
	rec domain.Recommendation,
	fallback string,
) string {
	if !s.enabled {
		return fallback
	}

	var financed strings.Builder
	for _, d := range rec.Decisions {
		if d.Strategy != domain.StrategyFinance || d.Plan == nil {
			continue
		}
		fmt.Fprintf(&financed, "- %s ($%s) in %d installments of $%s\n",
			d.Item.Name, d.Item.Price.StringFixed(2),
			d.Plan.NumInstallments, d.Plan.InstallmentAmount.StringFixed(2))
	}

	feasibility := "The projected balance stays non-negative through every obligation."
	if !rec.Feasible {
		feasibility = "Even with this split the projected balance goes negative; the customer must be warned."
	}

	prompt := fmt.Sprintf(`A customer is checking out and we recommended a payment split.

Customer: %s
Current balance: $%s
Pay today: $%s
Financed via installments: $%s
%s
Financed items:
%s
Our draft explanation:
%s

Rewrite the explanation in 2-3 friendly, professional sentences. Focus on how
the split protects cash for upcoming bills. Keep every dollar amount and date
exactly as given. Do not invent numbers.`,
		profile.Name,
		profile.CurrentBalance.StringFixed(2),
		rec.TotalPayNow.StringFixed(2),
		rec.TotalFinanced.StringFixed(2),
		feasibility,
		financed.String(),
		fallback)

	summary, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for cart summary: %v", err)
		return fallback
	}
	return summary
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role: "system",
				Content: "You are a careful financial advisor embedded in a retail " +
					"checkout. You explain buy-now-pay-later recommendations in plain " +
					"language. You never change or invent numbers, and you never " +
					"promise approval or creditworthiness.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}
