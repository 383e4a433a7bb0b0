package websearch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewsPromptWindow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	p := newsPrompt("Ромашка", "7707083893", "металлургия", now)

	assert.Contains(t, p, "September 2025") // six months back
	assert.Contains(t, p, "September 2026") // six months ahead
	assert.Contains(t, p, "металлургия")
	assert.Contains(t, p, "ИНН: 7707083893")
}

func TestNewsPromptWithoutIndustry(t *testing.T) {
	p := newsPrompt("Ромашка", "", "", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.NotContains(t, p, "Отрасль компании")
	assert.NotContains(t, p, "ИНН:")
	assert.Contains(t, p, "July 2025")
	assert.Contains(t, p, "July 2026")
}

func TestTaxIDPart(t *testing.T) {
	assert.Equal(t, "", taxIDPart("  "))
	assert.Equal(t, " (ИНН: 7707083893)", taxIDPart("7707083893"))
}
