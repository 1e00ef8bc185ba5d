package search

import (
	"strings"

	"medimart/internal/domain"
)

// ComposeSlugQuery filters an already-loaded page of products by a slug
// substring and joins the matching names into a single text query for the
// next search request. An empty result means the composed search must
// match nothing, not everything; callers check for "" before reusing it
// as a query dimension.
func ComposeSlugQuery(products []domain.Product, fragment string) string {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return ""
	}
	var names []string
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Slug), fragment) {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, " ")
}
