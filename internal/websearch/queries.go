package websearch

import (
	"context"
	"time"

	"salesscout-engine/internal/domain"
)

// FindCompany searches by name, tax ID or website and returns candidate
// companies in relevance order. An empty slice means not found; the
// raw-text fallback also counts as not found for identification purposes.
func (c *Client) FindCompany(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	res, err := c.Search(ctx, companyPrompt(query), "company")
	if err != nil {
		return nil, err
	}
	if res.ParseErr {
		return nil, nil
	}

	var payload struct {
		Found    bool                     `json:"found"`
		Variants []domain.SearchCandidate `json:"variants"`
	}
	if err := res.Decode(&payload); err != nil {
		return nil, err
	}
	if !payload.Found {
		return nil, nil
	}
	return payload.Variants, nil
}

func (c *Client) FindOnlinePresence(ctx context.Context, name, taxID string) (domain.OnlinePresence, error) {
	var out domain.OnlinePresence
	res, err := c.Search(ctx, presencePrompt(name, taxID), "presence")
	if err != nil {
		return out, err
	}
	if res.ParseErr {
		return out, nil
	}
	err = res.Decode(&out)
	return out, err
}

func (c *Client) FindExecutives(ctx context.Context, name string) ([]domain.Executive, error) {
	res, err := c.Search(ctx, executivesPrompt(name), "executives")
	if err != nil {
		return nil, err
	}
	if res.ParseErr {
		return nil, nil
	}

	var payload struct {
		Executives []domain.Executive `json:"executives"`
	}
	if err := res.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Executives, nil
}

func (c *Client) FindBusinessInfo(ctx context.Context, name, taxID string) (*domain.BusinessInfo, error) {
	res, err := c.Search(ctx, businessPrompt(name, taxID), "business")
	if err != nil {
		return nil, err
	}
	if res.ParseErr {
		return nil, nil
	}

	var out domain.BusinessInfo
	if err := res.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindNewsAndEvents searches within a ±6 month window anchored on now.
// The window is computed here, per call, never hardcoded in the prompt.
func (c *Client) FindNewsAndEvents(ctx context.Context, name, taxID, industry string, now time.Time) (*domain.NewsAndEvents, error) {
	res, err := c.Search(ctx, newsPrompt(name, taxID, industry, now), "news")
	if err != nil {
		return nil, err
	}
	if res.ParseErr {
		return nil, nil
	}

	var out domain.NewsAndEvents
	if err := res.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
