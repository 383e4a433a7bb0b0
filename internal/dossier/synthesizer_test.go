package dossier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesscout-engine/internal/domain"
)

type stubSearch struct {
	mu sync.Mutex

	presenceCalls int
	presence      domain.OnlinePresence

	business *domain.BusinessInfo

	newsIndustry string
	newsNow      time.Time
	news         *domain.NewsAndEvents

	err error
}

func (s *stubSearch) FindOnlinePresence(ctx context.Context, name, taxID string) (domain.OnlinePresence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenceCalls++
	return s.presence, s.err
}

func (s *stubSearch) FindExecutives(ctx context.Context, name string) ([]domain.Executive, error) {
	return nil, s.err
}

func (s *stubSearch) FindBusinessInfo(ctx context.Context, name, taxID string) (*domain.BusinessInfo, error) {
	return s.business, s.err
}

func (s *stubSearch) FindNewsAndEvents(ctx context.Context, name, taxID, industry string, now time.Time) (*domain.NewsAndEvents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newsIndustry = industry
	s.newsNow = now
	return s.news, s.err
}

type stubScraper struct {
	contacts domain.ContactBundle
	legal    domain.LegalInfo
}

func (s *stubScraper) ParseContacts(ctx context.Context, url string) domain.ContactBundle {
	return s.contacts
}

func (s *stubScraper) ExtractLegalInfo(ctx context.Context, url string) domain.LegalInfo {
	return s.legal
}

type stubRenderer struct {
	doc string
	err error
}

func (r *stubRenderer) Render(ctx context.Context, bundle domain.DossierBundle) (string, error) {
	return r.doc, r.err
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

func TestCollectKnownWebsiteSkipsPresenceSearch(t *testing.T) {
	search := &stubSearch{}
	scraper := &stubScraper{contacts: domain.ContactBundle{Phones: []string{"+79991234567"}}}
	s := &Synthesizer{Search: search, Scraper: scraper, Renderer: &stubRenderer{}, Now: fixedClock}

	id := domain.ConfirmedIdentity{Name: "Ромашка", Website: "https://romashka.ru"}
	bundle := s.Collect(context.Background(), id, nil)

	assert.Zero(t, search.presenceCalls)
	assert.Equal(t, "https://romashka.ru", bundle.OnlinePresence.Website)
	assert.Equal(t, []string{"+79991234567"}, bundle.SiteContacts.Phones)
}

func TestCollectIndustryFlowsIntoNewsSearch(t *testing.T) {
	search := &stubSearch{
		business: &domain.BusinessInfo{
			Business: domain.BusinessProfile{Industry: "металлургия"},
		},
	}
	s := &Synthesizer{Search: search, Scraper: &stubScraper{}, Renderer: &stubRenderer{}, Now: fixedClock}

	s.Collect(context.Background(), domain.ConfirmedIdentity{Name: "Ромашка"}, nil)

	assert.Equal(t, "металлургия", search.newsIndustry)
	assert.Equal(t, fixedClock(), search.newsNow)
}

func TestCollectAllSourcesDownStillBuildsBundle(t *testing.T) {
	search := &stubSearch{err: errors.New("search down")}
	s := &Synthesizer{Search: search, Scraper: &stubScraper{}, Renderer: &stubRenderer{}, Now: fixedClock}

	id := domain.ConfirmedIdentity{Name: "Ромашка", TaxID: "7707083893"}
	record := &domain.RegistryRecord{ShortName: "ООО Ромашка"}
	bundle := s.Collect(context.Background(), id, record)

	assert.Equal(t, id, bundle.Identity)
	assert.Same(t, record, bundle.Registry)
	assert.Empty(t, bundle.Executives)
	assert.Nil(t, bundle.Business)
	assert.Nil(t, bundle.NewsEvents)
}

func TestSynthesizeRenderFailureFallsBack(t *testing.T) {
	s := &Synthesizer{
		Search:   &stubSearch{err: errors.New("down")},
		Scraper:  &stubScraper{},
		Renderer: &stubRenderer{err: errors.New("render down")},
		Now:      fixedClock,
	}

	doc := s.Synthesize(context.Background(), domain.ConfirmedIdentity{Name: "Ромашка"}, nil)

	assert.Contains(t, doc, "ДОСЬЕ КОМПАНИИ")
	assert.Contains(t, doc, "Ромашка")
	assert.Contains(t, doc, "не найдено")
}

func TestRenderFallbackNilRegistry(t *testing.T) {
	bundle := domain.DossierBundle{
		Identity: domain.ConfirmedIdentity{Name: "Ромашка", TaxID: "7707083893"},
		SiteContacts: domain.ContactBundle{
			Phones: []string{"+79991234567"},
			Emails: []string{"info@romashka.ru"},
		},
	}

	doc := RenderFallback(bundle)

	assert.Contains(t, doc, "Ромашка")
	assert.Contains(t, doc, "ИНН: 7707083893")
	assert.Contains(t, doc, "+79991234567")
	assert.Contains(t, doc, "info@romashka.ru")
	// registry-backed fields degrade to the explicit marker
	assert.Contains(t, doc, "Директор: не найдено")
	assert.Contains(t, doc, "Статус: не найдено")
}

func TestRenderFallbackCompletelyEmpty(t *testing.T) {
	doc := RenderFallback(domain.DossierBundle{})
	require.NotEmpty(t, doc)
	assert.Contains(t, doc, "не найдено")
}

func TestRenderFallbackRegistryFields(t *testing.T) {
	bundle := domain.DossierBundle{
		Identity: domain.ConfirmedIdentity{Name: "типо-имя", TaxID: "7707083893"},
		Registry: &domain.RegistryRecord{
			ShortName:        "ООО Ромашка",
			Status:           "ACTIVE",
			RegistrationDate: "15.03.2010",
			Director:         domain.Director{Name: "Иванов Иван", Title: "Генеральный директор"},
			Address:          domain.Address{Full: "г. Москва, ул. Цветочная, 1"},
		},
	}

	doc := RenderFallback(bundle)

	// the registry short name beats the resolver's working name
	assert.Contains(t, doc, "ООО Ромашка")
	assert.Contains(t, doc, "Иванов Иван (Генеральный директор)")
	assert.Contains(t, doc, "ACTIVE с 15.03.2010")
	assert.Contains(t, doc, "г. Москва, ул. Цветочная, 1")
}
