package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ChatClient is the minimal language-model surface the extractor and the
// ticket classifier depend on.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResult, error)
}

// ChatRequest is a single system+user exchange. When JSONMode is set the
// endpoint is asked to emit a JSON object response.
type ChatRequest struct {
	System      string
	User        string
	Temperature float64
	JSONMode    bool
}

// ChatResult carries the assistant text and token accounting.
type ChatResult struct {
	Content      string
	Model        string
	PromptTokens int
	OutputTokens int
}

type httpStatusError struct {
	StatusCode int
	Message    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("chat endpoint status %d: %s", e.StatusCode, e.Message)
}

// Client talks to an OpenAI-compatible chat completions endpoint. Requests
// across all callers share a single per-minute rate limiter.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientConfig configures a Client. RequestsPerMinute must be positive.
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute),
	}
}

// maxAttempts bounds client-level retries on transient endpoint failures.
// Retries here are independent of workflow-level job retries.
const maxAttempts = 3

// Complete sends the exchange and returns the assistant message content.
// Transport failures, 429s, and 5xx statuses are retried up to maxAttempts;
// exhausted or non-transient failures surface as errors, wrapping
// ErrModelUnavailable where retry could help.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (ChatResult, error) {
	if strings.TrimSpace(req.User) == "" {
		return ChatResult{}, errors.New("user content is required")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.complete(ctx, req)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrModelUnavailable) {
			return ChatResult{}, err
		}
		lastErr = err
	}
	return ChatResult{}, lastErr
}

func (c *Client) complete(ctx context.Context, req ChatRequest) (ChatResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ChatResult{}, err
	}

	messages := make([]map[string]string, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.User})

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": req.Temperature,
	}
	if req.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return ChatResult{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return ChatResult{}, fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ChatResult{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return ChatResult{}, fmt.Errorf("read chat response: %w", err)
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		message := strings.TrimSpace(string(body))
		if len(message) > 700 {
			message = message[:700]
		}
		statusErr := &httpStatusError{StatusCode: httpRes.StatusCode, Message: message}
		if httpRes.StatusCode == http.StatusTooManyRequests || httpRes.StatusCode >= 500 {
			return ChatResult{}, fmt.Errorf("%w: %v", ErrModelUnavailable, statusErr)
		}
		return ChatResult{}, statusErr
	}

	var raw chatCompletionResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return ChatResult{}, fmt.Errorf("decode chat response: %w", err)
	}

	content := raw.firstContent()
	if strings.TrimSpace(content) == "" {
		return ChatResult{}, errors.New("chat response without content")
	}

	return ChatResult{
		Content:      content,
		Model:        raw.Model,
		PromptTokens: raw.Usage.PromptTokens,
		OutputTokens: raw.Usage.CompletionTokens,
	}, nil
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (r chatCompletionResponse) firstContent() string {
	for _, choice := range r.Choices {
		if strings.TrimSpace(choice.Message.Content) != "" {
			return choice.Message.Content
		}
	}
	return ""
}
