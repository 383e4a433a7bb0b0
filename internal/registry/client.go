// Package registry talks to the state business-registry suggest API.
// It is the authoritative source for legal identity: name, status,
// director, address, capital.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salesscout-engine/internal/domain"
)

type Config struct {
	BaseURL string // e.g. https://suggestions.example.ru/suggestions/api/4_1/rs
	Token   string
}

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		// registry lookups are fast; anything slower is treated as down
		hc: &http.Client{Timeout: 10 * time.Second},
	}
}

// FindByTaxID looks a company up by its exact tax ID. Returns (nil, nil)
// when the registry has no such entity.
func (c *Client) FindByTaxID(ctx context.Context, taxID string) (*domain.RegistryRecord, error) {
	return c.query(ctx, "/findById/party", suggestReq{Query: taxID})
}

// FindByName runs a fuzzy name search and returns the most relevant match.
func (c *Client) FindByName(ctx context.Context, name string) (*domain.RegistryRecord, error) {
	return c.query(ctx, "/suggest/party", suggestReq{Query: name, Count: 5})
}

type suggestReq struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

type suggestResp struct {
	Suggestions []struct {
		Value string    `json:"value"`
		Data  partyData `json:"data"`
	} `json:"suggestions"`
}

type partyData struct {
	TaxID string `json:"inn"`
	KPP   string `json:"kpp"`
	OGRN  string `json:"ogrn"`
	OKVED string `json:"okved"`
	Name  *struct {
		FullWithOPF  string `json:"full_with_opf"`
		ShortWithOPF string `json:"short_with_opf"`
	} `json:"name"`
	State *struct {
		Status           string `json:"status"`
		RegistrationDate int64  `json:"registration_date"`
	} `json:"state"`
	Management *struct {
		Name string `json:"name"`
		Post string `json:"post"`
	} `json:"management"`
	Address *struct {
		Value string `json:"value"`
		Data  *struct {
			Region string `json:"region"`
			City   string `json:"city"`
		} `json:"data"`
	} `json:"address"`
	Capital *struct {
		Value float64 `json:"value"`
	} `json:"capital"`
	EmployeeCount int `json:"employee_count"`
}

func (c *Client) query(ctx context.Context, path string, body suggestReq) (*domain.RegistryRecord, error) {
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.cfg.Token)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("registry %s status %d", path, res.StatusCode)
	}

	var sr suggestResp
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("registry %s decode: %w", path, err)
	}
	if len(sr.Suggestions) == 0 {
		return nil, nil
	}

	// first suggestion is the most relevant one
	return normalize(sr.Suggestions[0].Data), nil
}

// normalize flattens the registry's nested payload, tolerating the
// sub-objects the API omits for dissolved or thin records.
func normalize(d partyData) *domain.RegistryRecord {
	rec := &domain.RegistryRecord{
		TaxID:         d.TaxID,
		KPP:           d.KPP,
		OGRN:          d.OGRN,
		OKVED:         d.OKVED,
		EmployeeCount: d.EmployeeCount,
	}
	if d.Name != nil {
		rec.FullName = d.Name.FullWithOPF
		rec.ShortName = d.Name.ShortWithOPF
	}
	if d.State != nil {
		rec.Status = d.State.Status
		if d.State.RegistrationDate > 0 {
			rec.RegistrationDate = time.UnixMilli(d.State.RegistrationDate).UTC().Format("02.01.2006")
		}
	}
	if d.Management != nil {
		rec.Director.Name = d.Management.Name
		rec.Director.Title = d.Management.Post
		if rec.Director.Title == "" {
			rec.Director.Title = "Генеральный директор"
		}
	}
	if d.Address != nil {
		rec.Address.Full = d.Address.Value
		if d.Address.Data != nil {
			rec.Address.Region = d.Address.Data.Region
			rec.Address.City = d.Address.Data.City
		}
	}
	if d.Capital != nil {
		rec.Capital = d.Capital.Value
	}
	return rec
}
