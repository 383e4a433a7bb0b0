package domain

import "regexp"

// Tax IDs are 10 digits for organizations, 12 for sole proprietors.
var (
	taxIDExact = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	taxIDInRun = regexp.MustCompile(`\b(\d{10}|\d{12})\b`)
)

func ValidTaxID(s string) bool {
	return taxIDExact.MatchString(s)
}

// ExtractTaxID pulls the first tax-ID-shaped digit run out of free text.
// Returns "" when the text carries none.
func ExtractTaxID(text string) string {
	return taxIDInRun.FindString(text)
}
