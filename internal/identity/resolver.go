// Package identity reconciles a partial company query (name, tax ID,
// website in any combination) into one confirmed identity by
// cross-checking the website itself, the state registry, and web search.
// The registry is ground truth: once it returns a record, its name wins
// over anything scraped or searched.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log"

	"salesscout-engine/internal/domain"
)

// ErrIdentityNotFound means no source could establish even a company
// name. It wraps the original query for user-facing message building.
var ErrIdentityNotFound = errors.New("company identity not found")

type NotFoundError struct {
	Query domain.IdentityQuery
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("company identity not found for %q", e.Query.Label())
}

func (e *NotFoundError) Unwrap() error { return ErrIdentityNotFound }

// RegistryClient is the state-registry boundary. A nil record with a nil
// error means "no match"; errors mean the call itself failed.
type RegistryClient interface {
	FindByTaxID(ctx context.Context, taxID string) (*domain.RegistryRecord, error)
}

// SearchClient is the LLM web-search boundary.
type SearchClient interface {
	FindCompany(ctx context.Context, query string) ([]domain.SearchCandidate, error)
}

// SiteScraper extracts legal info from a company website; best effort,
// never errors.
type SiteScraper interface {
	ExtractLegalInfo(ctx context.Context, url string) domain.LegalInfo
}

type Resolver struct {
	Registry RegistryClient
	Search   SearchClient
	Scraper  SiteScraper
}

// Result carries the confirmed identity plus the registry record fetched
// along the way, so the synthesizer doesn't repeat the lookup.
type Result struct {
	Identity domain.ConfirmedIdentity
	Registry *domain.RegistryRecord
}

// Resolve runs the fixed-precedence reconciliation. Individual source
// failures degrade to "no data"; only a completely unresolvable name is
// fatal.
func (r *Resolver) Resolve(ctx context.Context, q domain.IdentityQuery) (Result, error) {
	if q.Empty() {
		return Result{}, &NotFoundError{Query: q}
	}

	var (
		name    string // confirmed name; registry overwrites, others only fill
		taxID   = q.TaxID
		website = q.Website
		record  *domain.RegistryRecord
	)

	// step 1: the site itself often states its legal identity
	if website != "" {
		legal := r.Scraper.ExtractLegalInfo(ctx, website)
		if legal.TaxID != "" {
			taxID = legal.TaxID
			log.Printf("[identity] tax id from site: %s", taxID)
		}
		if legal.Name != "" {
			name = legal.Name
			log.Printf("[identity] name from site: %q", name)
		}
	}

	confirmRegistry := func() {
		if taxID == "" || record != nil {
			return
		}
		rec, err := r.Registry.FindByTaxID(ctx, taxID)
		if err != nil {
			log.Printf("[identity] registry lookup failed inn=%s err=%v", taxID, err)
			return
		}
		if rec == nil {
			log.Printf("[identity] registry has no entity inn=%s", taxID)
			return
		}
		record = rec
		if n := rec.DisplayName(); n != "" {
			name = n // authoritative, overwrites the scraped name
		}
		log.Printf("[identity] registry confirmed %q inn=%s", name, taxID)
	}

	// step 2: registry by tax id (authoritative for the name)
	confirmRegistry()

	// step 3: no tax id yet - search by name or website
	if taxID == "" && (q.Name != "" || website != "") {
		query := q.Name
		if query == "" {
			query = website
		}
		candidates, err := r.Search.FindCompany(ctx, query)
		if err != nil {
			log.Printf("[identity] search failed query=%q err=%v", query, err)
		} else if len(candidates) > 0 {
			first := candidates[0]
			if first.TaxID != "" {
				taxID = first.TaxID
			}
			if name == "" {
				name = first.BestName()
			}
			if website == "" && first.Website != "" {
				website = first.Website
			}
			log.Printf("[identity] search found %q inn=%s", first.BestName(), first.TaxID)

			// a fresh tax id gets the registry's final word
			confirmRegistry()
		}
	}

	// step 4: tax id known but name still unconfirmed - search by tax id
	if taxID != "" && name == "" {
		candidates, err := r.Search.FindCompany(ctx, taxID)
		if err != nil {
			log.Printf("[identity] search by inn failed inn=%s err=%v", taxID, err)
		} else if len(candidates) > 0 {
			first := candidates[0]
			name = first.BestName()
			if website == "" && first.Website != "" {
				website = first.Website
			}
		}
	}

	// step 5: fall back to whatever the user typed
	if name == "" {
		name = q.Name
	}
	if name == "" {
		return Result{}, &NotFoundError{Query: q}
	}

	return Result{
		Identity: domain.ConfirmedIdentity{Name: name, TaxID: taxID, Website: website},
		Registry: record,
	}, nil
}
