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
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-chat-v3-0324:free"

	// systemPrompt keeps the assistant on-topic for the product catalog.
	systemPrompt = `Eres un asistente experto en productos de tecnología. ` +
		`Responde solo preguntas sobre productos tecnológicos (computadores, celulares, ` +
		`gadgets, hardware, software, etc). Si la pregunta no es de tecnología, responde: ` +
		`"Solo puedo responder sobre productos de tecnología."`
)

// OpenRouterClient asks an OpenAI-compatible chat-completions endpoint.
type OpenRouterClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenRouterClient creates a client for the OpenRouter API. Empty baseURL
// and model fall back to the OpenRouter defaults.
func NewOpenRouterClient(apiKey, model, baseURL string) *OpenRouterClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenRouterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Ask sends the question with the product-assistant system prompt and
// returns the completion text.
func (c *OpenRouterClient) Ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: "openrouter", Code: resp.StatusCode, Message: string(body)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.Error != nil {
		return "", &ProviderError{Provider: "openrouter", Message: result.Error.Message}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{Provider: "openrouter", Message: "no choices in response"}
	}

	answer := strings.TrimSpace(result.Choices[0].Message.Content)
	if answer == "" {
		return "No se obtuvo respuesta de la IA.", nil
	}
	return answer, nil
}

// Name returns the provider name.
func (c *OpenRouterClient) Name() string {
	return "openrouter"
}
