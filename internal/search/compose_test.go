package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medimart/internal/domain"
	"medimart/internal/search"
)

func TestComposeSlugQuery(t *testing.T) {
	page := []domain.Product{
		{Name: "Paracetamol 500mg", Slug: "paracetamol-500mg"},
		{Name: "Ibuprofen 400mg", Slug: "ibuprofen-400mg"},
		{Name: "Vitamin C 1000mg", Slug: "vitamin-c-1000mg"},
	}

	assert.Equal(t, "Paracetamol 500mg", search.ComposeSlugQuery(page, "para"))
	// "00mg" is a substring of every slug here, including paracetamol-500mg
	assert.Equal(t, "Paracetamol 500mg Ibuprofen 400mg Vitamin C 1000mg", search.ComposeSlugQuery(page, "00mg"))
	assert.Equal(t, "Ibuprofen 400mg", search.ComposeSlugQuery(page, "400mg"))
	assert.Equal(t, "Paracetamol 500mg Vitamin C 1000mg", search.ComposeSlugQuery(page, "ta"), "matches keep page order")
	assert.Equal(t, "Paracetamol 500mg", search.ComposeSlugQuery(page, "PARA"), "fragment match is case-insensitive")

	// No slug match must compose to empty, never to a match-all query.
	assert.Equal(t, "", search.ComposeSlugQuery(page, "zzz"))
	assert.Equal(t, "", search.ComposeSlugQuery(nil, "para"))
	assert.Equal(t, "", search.ComposeSlugQuery(page, "  "))
}
