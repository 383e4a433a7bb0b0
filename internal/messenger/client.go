// Package messenger delivers documents and feedback controls to the chat
// platform through its bot webhook API. Long documents go out in ordered
// line-boundary chunks with a small delay between parts; interactive
// keyboards ride only on the final chunk.
package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxPartLen = 4000

type Config struct {
	WebhookURL string // per-workspace inbound webhook base
	BotID      string
	ClientID   string
	MaxPartLen int // 0 means defaultMaxPartLen
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter // paces chunked delivery
}

func New(cfg Config) *Client {
	if cfg.MaxPartLen <= 0 {
		cfg.MaxPartLen = defaultMaxPartLen
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: 30 * time.Second},
		// two parts per second keeps us inside the platform's limits
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

type apiResult struct {
	Result any    `json:"result"`
	Error  string `json:"error"`
	Desc   string `json:"error_description"`
}

// SendMessage delivers text to a dialog, chunking as needed. keyboard is
// optional and attaches to the last chunk only.
func (c *Client) SendMessage(ctx context.Context, dialogID, text string, keyboard Keyboard) error {
	parts := SplitMessage(text, c.cfg.MaxPartLen)
	if len(parts) > 1 {
		log.Printf("[messenger] dialog=%s message split into %d parts", dialogID, len(parts))
	}

	for i, part := range parts {
		if len(part) > c.cfg.MaxPartLen {
			// single line over the limit; delivered whole, flagged here
			log.Printf("[messenger] dialog=%s part %d exceeds max_len=%d len=%d", dialogID, i+1, c.cfg.MaxPartLen, len(part))
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		form := url.Values{
			"BOT_ID":    {c.cfg.BotID},
			"CLIENT_ID": {c.cfg.ClientID},
			"DIALOG_ID": {dialogID},
			"MESSAGE":   {part},
		}

		last := i == len(parts)-1
		if last && len(keyboard) > 0 {
			kb, err := json.Marshal(keyboard)
			if err != nil {
				return fmt.Errorf("messenger marshal keyboard: %w", err)
			}
			form.Set("KEYBOARD", string(kb))
		}

		if err := c.post(ctx, "imbot.message.add.json", form); err != nil {
			return fmt.Errorf("messenger send part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// AddComment attaches text to a CRM deal timeline.
func (c *Client) AddComment(ctx context.Context, dealID, comment string) error {
	payload := map[string]any{
		"fields": map[string]any{
			"ENTITY_ID":   dealID,
			"ENTITY_TYPE": "deal",
			"COMMENT":     comment,
		},
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.WebhookURL+"/crm.timeline.comment.add.json", strings.NewReader(string(b)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) post(ctx context.Context, method string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.WebhookURL+"/"+method, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("gateway status %d", res.StatusCode)
	}

	var out apiResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("gateway decode: %w", err)
	}
	if out.Error != "" {
		if out.Desc != "" {
			return fmt.Errorf("gateway error: %s", out.Desc)
		}
		return fmt.Errorf("gateway error: %s", out.Error)
	}
	return nil
}
