package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTaxID(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"7707083893", true},
		{"770708389312", true},
		{"770708389", false},   // 9 digits
		{"77070838931", false}, // 11 digits
		{"7707083893a", false},
		{"", false},
		{" 7707083893", false}, // exact match only
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, ValidTaxID(c.in), "input %q", c.in)
	}
}

func TestExtractTaxID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare 10 digits", "7707083893", "7707083893"},
		{"bare 12 digits", "770708389312", "770708389312"},
		{"inside text", "ищи ИНН 7707083893 пожалуйста", "7707083893"},
		{"11 digits not a tax id", "77070838931", ""},
		{"part of longer run", "кабель 770708389312345", ""},
		{"company name", "ООО Ромашка", ""},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExtractTaxID(c.in))
		})
	}
}
