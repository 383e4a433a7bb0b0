// Package sitescrape does best-effort extraction of contacts and legal
// identifiers from company websites. It never returns an error to its
// callers: a dead site or broken markup yields empty results.
package sitescrape

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/webutil"
)

const userAgent = "SalesScout/1.0 (+local)"

type Scraper struct {
	hc      *http.Client
	limiter *webutil.HostLimiter
}

func New(limiter *webutil.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
	}
}

// ParseContacts fetches the page and extracts phones and emails, capped
// at five of each.
func (s *Scraper) ParseContacts(ctx context.Context, rawURL string) domain.ContactBundle {
	text, html, ok := s.fetch(ctx, rawURL)
	if !ok {
		return domain.ContactBundle{}
	}

	phones := extractPhones(text, html)
	emails := extractEmails(text, html)

	log.Printf("[scrape] contacts url=%q phones=%d emails=%d", rawURL, len(phones), len(emails))

	return domain.ContactBundle{Phones: phones, Emails: emails}
}

// ExtractLegalInfo looks for a tax-ID-shaped digit run and a legal-name-
// shaped string anywhere on the page. Either or both may be missing.
func (s *Scraper) ExtractLegalInfo(ctx context.Context, rawURL string) domain.LegalInfo {
	text, html, ok := s.fetch(ctx, rawURL)
	if !ok {
		return domain.LegalInfo{}
	}
	return extractLegal(text + "\n" + html)
}

// fetch returns the rendered text and the raw markup. Both are searched:
// tel:/mailto: links only exist in the markup.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (text, html string, ok bool) {
	u := webutil.EnsureScheme(rawURL)
	if u == "" {
		return "", "", false
	}

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return "", "", false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", "", false
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		log.Printf("[scrape] get failed url=%q err=%v", u, err)
		return "", "", false
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[scrape] status %d url=%q", res.StatusCode, u)
		return "", "", false
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return "", "", false
	}
	html = string(body)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[scrape] parse failed url=%q err=%v", u, err)
		// raw markup search still works without a DOM
		return "", html, true
	}
	return webutil.CleanText(doc.Text()), html, true
}
