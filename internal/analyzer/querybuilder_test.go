package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_Exact(t *testing.T) {
	b := NewQueryBuilder(New())

	assert.Equal(t, `"gelir vergisi"`, b.Build("gelir vergisi", QueryModeExact))
	assert.Equal(t, `"gelir vergisi"`, b.Build("gelir vergisi", QueryModePhrase))
}

func TestQueryBuilder_Simple_SingleWord(t *testing.T) {
	b := NewQueryBuilder(New())

	assert.Equal(t, `"tek"*`, b.Build("tek", QueryModeSimple))
}

func TestQueryBuilder_Simple_MultiWord(t *testing.T) {
	b := NewQueryBuilder(New())

	// Words of two characters or fewer are dropped.
	got := b.Build("gelir ve vergisi", QueryModeSimple)
	assert.Equal(t, `"gelir"* AND "vergisi"*`, got)
}

func TestQueryBuilder_Comprehensive(t *testing.T) {
	b := NewQueryBuilder(New())

	got := b.Build("Kişisel veriler", QueryModeComprehensive)

	// Prefix tokens for the original words plus their folded forms,
	// OR-joined.
	assert.Contains(t, got, `"Kişisel"*`)
	assert.Contains(t, got, `"veriler"*`)
	assert.Contains(t, got, `"kisisel"*`)
	assert.Contains(t, got, " OR ")
	assert.NotContains(t, got, " AND ")
}

func TestQueryBuilder_Comprehensive_AddsLegalTerms(t *testing.T) {
	b := NewQueryBuilder(New())

	// "tahakkuk" is in the legal term dictionary; querying for related
	// wording pulls detected terms in as exact tokens, capped at three.
	got := b.Build("vergi tahsilat işlemi", QueryModeComprehensive)
	assert.Contains(t, got, `"vergi"*`)

	terms := 0
	for _, part := range strings.Split(got, " OR ") {
		if !strings.HasSuffix(part, "*") {
			terms++
		}
	}
	assert.LessOrEqual(t, terms, 3)
}

func TestQueryBuilder_Comprehensive_NoDuplicateTokens(t *testing.T) {
	b := NewQueryBuilder(New())

	got := b.Build("vergi vergi", QueryModeComprehensive)
	assert.Equal(t, 1, strings.Count(got, `"vergi"*`))
}

func TestQueryBuilder_EmptyQuery(t *testing.T) {
	b := NewQueryBuilder(New())

	assert.Equal(t, `""`, b.Build("", QueryModeComprehensive))
	assert.Equal(t, `""`, b.Build("   ", QueryModeSimple))
}

func TestQueryBuilder_UnknownModeFallsBackToSimple(t *testing.T) {
	b := NewQueryBuilder(New())

	assert.Equal(t, `"tek"*`, b.Build("tek", QueryMode("fancy")))
}
