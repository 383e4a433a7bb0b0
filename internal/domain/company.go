package domain

import "time"

// IdentityQuery is the raw, possibly partial input for a research run.
// At least one field must be set for resolution to proceed.
type IdentityQuery struct {
	Name    string
	TaxID   string
	Website string
}

func (q IdentityQuery) Empty() bool {
	return q.Name == "" && q.TaxID == "" && q.Website == ""
}

// Label is what we call the company in user-facing messages before
// the identity is confirmed.
func (q IdentityQuery) Label() string {
	switch {
	case q.TaxID != "":
		return q.TaxID
	case q.Name != "":
		return q.Name
	default:
		return q.Website
	}
}

// ConfirmedIdentity is the reconciled output of the resolution pipeline.
// Name is always set; TaxID and Website are best effort.
type ConfirmedIdentity struct {
	Name    string
	TaxID   string
	Website string
}

type Director struct {
	Name  string
	Title string
}

type Address struct {
	Full   string
	Region string
	City   string
}

// RegistryRecord is a normalized company record from the state business
// registry. Built per lookup, never cached.
type RegistryRecord struct {
	FullName         string
	ShortName        string
	TaxID            string
	KPP              string
	OGRN             string
	OKVED            string
	Status           string
	RegistrationDate string
	Director         Director
	Address          Address
	Capital          float64
	EmployeeCount    int
}

// DisplayName prefers the short legal name, falling back to the full one.
func (r *RegistryRecord) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.ShortName != "" {
		return r.ShortName
	}
	return r.FullName
}

// SearchCandidate is one company returned by the web-search service.
type SearchCandidate struct {
	Name        string  `json:"name"`
	ShortName   string  `json:"short_name"`
	TaxID       string  `json:"inn"`
	Website     string  `json:"website"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// BestName prefers the short commercial name over the full legal one.
func (c SearchCandidate) BestName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Name
}

// ContactBundle holds contacts scraped from one website.
type ContactBundle struct {
	Phones []string `json:"phones"`
	Emails []string `json:"emails"`
}

// LegalInfo is the legal identity a website discloses about its owner.
type LegalInfo struct {
	TaxID string `json:"inn,omitempty"`
	Name  string `json:"company_name,omitempty"`
}

type OnlinePresence struct {
	Website  string   `json:"website,omitempty"`
	VK       string   `json:"vk,omitempty"`
	Telegram string   `json:"telegram,omitempty"`
	YouTube  string   `json:"youtube,omitempty"`
	Other    []string `json:"other,omitempty"`
}

type Executive struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	TenChat  string `json:"tenchat,omitempty"`
	VK       string `json:"vk,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type Finances struct {
	RevenueYearly  string `json:"revenue_yearly_rub,omitempty"`
	RevenueMonthly string `json:"revenue_monthly_rub,omitempty"`
	RevenueSource  string `json:"revenue_source,omitempty"`
	RevenueYear    string `json:"revenue_year,omitempty"`
	Profit         string `json:"profit,omitempty"`
	EmployeesCount string `json:"employees_count,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	GrowthTrend    string `json:"growth_trend,omitempty"`
}

type BusinessProfile struct {
	Products       []string `json:"products,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	MajorClients   []string `json:"major_clients,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Geography      []string `json:"geography,omitempty"`
	MarketShare    string   `json:"market_share,omitempty"`
}

type Technologies struct {
	CRM        string   `json:"crm,omitempty"`
	ERP        string   `json:"erp,omitempty"`
	Automation []string `json:"automation,omitempty"`
	TechStack  []string `json:"tech_stack,omitempty"`
}

// BusinessInfo is the financial/operational profile from web search.
type BusinessInfo struct {
	Finances     Finances        `json:"finances"`
	Business     BusinessProfile `json:"business"`
	Technologies Technologies    `json:"technologies"`
}

type NewsItem struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty"`
	Source    string `json:"source_name,omitempty"`
}

type EventItem struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	URL  string `json:"url,omitempty"`
}

// NewsAndEvents is bounded to a rolling window around "now": past items
// no older than six months, upcoming items no further than six months out.
type NewsAndEvents struct {
	News           []NewsItem  `json:"news,omitempty"`
	Exhibitions    []EventItem `json:"exhibitions,omitempty"`
	Conferences    []EventItem `json:"conferences,omitempty"`
	Awards         []EventItem `json:"awards,omitempty"`
	UpcomingEvents []EventItem `json:"upcoming_events,omitempty"`
	MediaActivity  string      `json:"media_activity_score,omitempty"`
}

// DossierBundle is everything collected about one confirmed company,
// handed whole to the rendering step. Built fresh per run.
type DossierBundle struct {
	Identity       ConfirmedIdentity `json:"confirmed_company"`
	Registry       *RegistryRecord   `json:"egrul,omitempty"`
	OnlinePresence OnlinePresence    `json:"online_presence"`
	SiteContacts   ContactBundle     `json:"website_contacts"`
	SiteLegalInfo  LegalInfo         `json:"website_legal_info"`
	Executives     []Executive       `json:"executives,omitempty"`
	Business       *BusinessInfo     `json:"business_info,omitempty"`
	NewsEvents     *NewsAndEvents    `json:"news_and_events,omitempty"`
	CollectedAt    time.Time         `json:"collected_at"`
}
