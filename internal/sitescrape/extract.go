package sitescrape

import (
	"regexp"
	"sort"
	"strings"

	"salesscout-engine/internal/domain"
)

const (
	maxContacts = 5
	maxEmailLen = 50
	minPhoneLen = 10
)

var phonePatterns = []*regexp.Regexp{
	// +7 (999) 123-45-67
	regexp.MustCompile(`\+7[\s\-]?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`),
	// 8 (999) 123-45-67
	regexp.MustCompile(`8[\s\-]?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`),
	// tel: links in markup
	regexp.MustCompile(`(?i)tel:\+?[\d\s\-\(\)]+`),
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Placeholder domains and asset-looking local parts that show up in page
// templates but are never real contacts.
var emailDenylist = []string{
	"example.com", "test.com", "domain.com", "yourcompany.com",
	"image", "photo", "picture", "icon",
}

var (
	// "ИНН: 7707083893" and similar labelled forms
	taxIDLabelled = regexp.MustCompile(`(?i)ИНН[:\s]*(\d{10}|\d{12})`)
	// ООО «Ромашка», АО "Вектор", ИП Иванов И.И.
	legalNamePattern = regexp.MustCompile(`(?:ООО|АО|ПАО|ЗАО|ОАО)\s*[«"][^»"\n]{2,80}[»"]|ИП\s+[А-ЯЁ][а-яё]+\s+[А-ЯЁ]\.\s?[А-ЯЁ]\.`)
)

func extractPhones(text, html string) []string {
	seen := map[string]bool{}
	var out []string

	for _, p := range phonePatterns {
		for _, m := range append(p.FindAllString(text, -1), p.FindAllString(html, -1)...) {
			n := normalizePhone(m)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}

	sort.Strings(out) // deterministic across runs
	if len(out) > maxContacts {
		out = out[:maxContacts]
	}
	return out
}

// normalizePhone strips everything but digits and a leading plus.
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 4 && strings.EqualFold(raw[:4], "tel:") {
		raw = raw[4:]
	}

	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	n := b.String()

	digits := strings.TrimPrefix(n, "+")
	if len(digits) < minPhoneLen {
		return ""
	}
	return n
}

func extractEmails(text, html string) []string {
	seen := map[string]bool{}
	var out []string

	for _, m := range append(emailPattern.FindAllString(text, -1), emailPattern.FindAllString(html, -1)...) {
		e := strings.ToLower(strings.TrimSpace(m))
		if len(e) >= maxEmailLen || seen[e] {
			continue
		}
		if denied(e) {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}

	sort.Strings(out)
	if len(out) > maxContacts {
		out = out[:maxContacts]
	}
	return out
}

func denied(email string) bool {
	for _, d := range emailDenylist {
		if strings.Contains(email, d) {
			return true
		}
	}
	return false
}

func extractLegal(blob string) domain.LegalInfo {
	var info domain.LegalInfo

	if m := taxIDLabelled.FindStringSubmatch(blob); m != nil {
		info.TaxID = m[1]
	}
	if m := legalNamePattern.FindString(blob); m != "" {
		info.Name = strings.TrimSpace(m)
	}
	return info
}
