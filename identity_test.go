package strand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/strand"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "https://example.org/designs/p1", strand.Join("https://example.org/designs", "p1"))

	// A trailing separator is not doubled.
	assert.Equal(t, "https://example.org/designs/p1", strand.Join("https://example.org/designs/", "p1"))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "https://example.org/designs", strand.Namespace("https://example.org/designs/p1"))
	assert.Equal(t, "p1", strand.Namespace("p1"))
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "p1", strand.LocalName("https://example.org/designs/p1"))
	assert.Equal(t, "p1", strand.LocalName("p1"))
}

func TestDeriveDisplayID(t *testing.T) {
	t.Run("single_choice", func(t *testing.T) {
		assert.Equal(t, "tmpl_pTac", strand.DeriveDisplayID("tmpl", "pTac"))
	})

	t.Run("multiple_choices", func(t *testing.T) {
		assert.Equal(t, "tmpl_pTac_GFP", strand.DeriveDisplayID("tmpl", "pTac", "GFP"))
	})

	t.Run("no_choices", func(t *testing.T) {
		assert.Equal(t, "tmpl", strand.DeriveDisplayID("tmpl"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := strand.DeriveDisplayID("tmpl", "pTac", "GFP")
		b := strand.DeriveDisplayID("tmpl", "pTac", "GFP")
		assert.Equal(t, a, b)
	})
}

func TestDeriveIdentity(t *testing.T) {
	got := strand.DeriveIdentity("https://example.org/designs", "tmpl", "pTac", "GFP")
	assert.Equal(t, "https://example.org/designs/tmpl_pTac_GFP", got)
}

func TestSanitizeDisplayID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "blue fluorescent", "blue_fluorescent"},
		// The case boundary becomes a word break before the
		// punctuation is dropped.
		{"punctuation_dropped", "p(Tac)!", "p_tac"},
		{"camel_case", "pTac", "p_tac"},
		{"hyphens", "anti-sigma", "anti_sigma"},
		{"leading_digit", "5utr", "_5utr"},
		{"already_clean", "gfp_cassette", "gfp_cassette"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strand.SanitizeDisplayID(tt.in))
		})
	}
}
