package webutil

import "strings"

// CleanText collapses whitespace runs (including non-breaking spaces)
// into single spaces so scraped page text is regex-friendly.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// EnsureScheme prefixes https:// onto schemeless URLs so user-pasted
// sites like "company.ru" are fetchable.
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
