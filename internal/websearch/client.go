// Package websearch drives an LLM-backed web-search service through an
// OpenRouter-style chat-completions endpoint. Every call demands JSON-only
// output; responses that fail to parse degrade to a raw-text fallback
// instead of an error, so the pipeline can keep going.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const systemRole = "Ты - эксперт по поиску информации о российских компаниях. " +
	"Возвращай ТОЛЬКО валидный JSON, без markdown форматирования, без дополнительного текста. " +
	"Используй актуальные данные из интернета. Фокусируйся на российских источниках."

type Config struct {
	BaseURL string // e.g. https://openrouter.ai/api/v1
	APIKey  string
	Model   string // e.g. perplexity/sonar-pro
	Timeout time.Duration
}

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		// search-backed completions routinely take over a minute
		cfg.Timeout = 90 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the tagged union of a search response: either Data holds the
// parsed JSON object, or ParseErr is set and Raw carries the model's text
// verbatim. Usage is populated either way.
type Result struct {
	Data     map[string]any
	Raw      string
	ParseErr bool
	Usage    TokenUsage
}

// Decode unmarshals the structured payload into out. It fails on the
// raw-text fallback shape so callers must handle that case explicitly.
func (r Result) Decode(out any) error {
	if r.ParseErr {
		return fmt.Errorf("search result is a raw-text fallback, not JSON")
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage TokenUsage `json:"usage"`
}

// Search sends one prompt and returns the parsed result. label tags the
// log lines so concurrent calls stay readable.
func (c *Client) Search(ctx context.Context, prompt, label string) (Result, error) {
	return c.complete(ctx, c.cfg.Model, systemRole, prompt, label)
}

// Complete is the generic completion entry point; the dossier renderer
// reuses it with its own model and role instruction.
func (c *Client) Complete(ctx context.Context, model, role, prompt, label string) (Result, error) {
	return c.complete(ctx, model, role, prompt, label)
}

func (c *Client) complete(ctx context.Context, model, role, prompt, label string) (Result, error) {
	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: role},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   3000,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	log.Printf("[search:%s] request model=%s", label, model)

	res, err := c.hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("search %s: %w", label, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Result{}, fmt.Errorf("search %s status %d: %s", label, res.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return Result{}, fmt.Errorf("search %s decode envelope: %w", label, err)
	}
	if len(cr.Choices) == 0 {
		return Result{}, fmt.Errorf("search %s: empty choices", label)
	}

	content := StripFences(cr.Choices[0].Message.Content)

	out := Result{Usage: cr.Usage}
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		log.Printf("[search:%s] json parse failed, keeping raw text: %v", label, err)
		out.Raw = content
		out.ParseErr = true
		return out, nil
	}
	out.Data = data

	log.Printf("[search:%s] ok tokens=%d", label, cr.Usage.TotalTokens)
	return out, nil
}

// StripFences removes a markdown code-fence wrapper the model sometimes
// adds despite the JSON-only instruction.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
