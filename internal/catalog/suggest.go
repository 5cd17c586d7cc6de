package catalog

import (
	"strings"
	"unicode/utf8"

	"wardrobe-storefront/internal/domain"
)

// SuggestLimit caps search-as-you-type results.
const SuggestLimit = 5

// Suggest returns product names whose name or tags contain query. Queries
// shorter than two characters yield nothing.
func Suggest(products []domain.Product, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < 2 || limit <= 0 {
		return []string{}
	}
	out := make([]string, 0, limit)
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), query) || hasTag(p, query) {
			out = append(out, p.Name)
		}
	}
	return out
}

func hasTag(p domain.Product, query string) bool {
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
