// Package dossier collects everything knowable about a confirmed company
// and renders it into a sales dossier document. Collection calls are
// independent and best effort: a failed call leaves its section empty and
// the renderer shows "не найдено" there instead.
package dossier

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"salesscout-engine/internal/domain"
)

type SearchClient interface {
	FindOnlinePresence(ctx context.Context, name, taxID string) (domain.OnlinePresence, error)
	FindExecutives(ctx context.Context, name string) ([]domain.Executive, error)
	FindBusinessInfo(ctx context.Context, name, taxID string) (*domain.BusinessInfo, error)
	FindNewsAndEvents(ctx context.Context, name, taxID, industry string, now time.Time) (*domain.NewsAndEvents, error)
}

type SiteScraper interface {
	ParseContacts(ctx context.Context, url string) domain.ContactBundle
	ExtractLegalInfo(ctx context.Context, url string) domain.LegalInfo
}

// Renderer turns the aggregated bundle into the final document text.
type Renderer interface {
	Render(ctx context.Context, bundle domain.DossierBundle) (string, error)
}

type Synthesizer struct {
	Search   SearchClient
	Scraper  SiteScraper
	Renderer Renderer

	// Now is the clock for the news/events window; nil means time.Now.
	Now func() time.Time
}

func (s *Synthesizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// searchTimeout bounds each individual collection call, not the whole run.
const searchTimeout = 2 * time.Minute

// Collect gathers the dossier bundle for a confirmed identity. The
// registry record from resolution rides along untouched.
func (s *Synthesizer) Collect(ctx context.Context, id domain.ConfirmedIdentity, record *domain.RegistryRecord) domain.DossierBundle {
	bundle := domain.DossierBundle{
		Identity:    id,
		Registry:    record,
		CollectedAt: s.now(),
	}

	var g errgroup.Group

	// online presence: a known website short-circuits the search; a site
	// found here completes the bundle but never rewrites the identity
	g.Go(func() error {
		if id.Website != "" {
			bundle.OnlinePresence = domain.OnlinePresence{Website: id.Website}
			return nil
		}
		cctx, cancel := context.WithTimeout(ctx, searchTimeout)
		defer cancel()
		presence, err := s.Search.FindOnlinePresence(cctx, id.Name, id.TaxID)
		if err != nil {
			log.Printf("[dossier] presence search failed: %v", err)
			return nil
		}
		bundle.OnlinePresence = presence
		return nil
	})

	// site contacts, independent of the resolution-time scrape
	if id.Website != "" {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, searchTimeout)
			defer cancel()
			bundle.SiteContacts = s.Scraper.ParseContacts(cctx, id.Website)
			bundle.SiteLegalInfo = s.Scraper.ExtractLegalInfo(cctx, id.Website)
			return nil
		})
	}

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, searchTimeout)
		defer cancel()
		execs, err := s.Search.FindExecutives(cctx, id.Name)
		if err != nil {
			log.Printf("[dossier] executives search failed: %v", err)
			return nil
		}
		bundle.Executives = execs
		return nil
	})

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, searchTimeout)
		defer cancel()
		info, err := s.Search.FindBusinessInfo(cctx, id.Name, id.TaxID)
		if err != nil {
			log.Printf("[dossier] business search failed: %v", err)
			return nil
		}
		bundle.Business = info
		return nil
	})

	_ = g.Wait()

	// news depends on the industry extracted from business info, so it
	// runs after the fan-out
	industry := ""
	if bundle.Business != nil {
		industry = bundle.Business.Business.Industry
	}
	{
		cctx, cancel := context.WithTimeout(ctx, searchTimeout)
		ne, err := s.Search.FindNewsAndEvents(cctx, id.Name, id.TaxID, industry, s.now())
		cancel()
		if err != nil {
			log.Printf("[dossier] news search failed: %v", err)
		} else {
			bundle.NewsEvents = ne
		}
	}

	return bundle
}

// Synthesize collects and renders. A render failure falls back to the
// deterministic plain-text template; this method only errors when even
// that is impossible (it isn't - the fallback always succeeds).
func (s *Synthesizer) Synthesize(ctx context.Context, id domain.ConfirmedIdentity, record *domain.RegistryRecord) string {
	bundle := s.Collect(ctx, id, record)

	doc, err := s.Renderer.Render(ctx, bundle)
	if err != nil {
		log.Printf("[dossier] render failed, using fallback template: %v", err)
		return RenderFallback(bundle)
	}
	return doc
}
