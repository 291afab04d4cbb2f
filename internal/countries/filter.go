package countries

import "strings"

// Filter returns the countries whose common name contains term,
// case-insensitively, in their original order. An empty term keeps every
// country. The input slice is not modified.
func Filter(list []Country, term string) []Country {
	needle := strings.ToLower(term)
	out := make([]Country, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name.Common), needle) {
			out = append(out, c)
		}
	}
	return out
}

// FindOne looks a country up by cca3 code or common name (both
// case-insensitive), falling back to the first substring match.
func FindOne(list []Country, query string) (Country, bool) {
	for _, c := range list {
		if strings.EqualFold(c.CCA3, query) {
			return c, true
		}
	}
	for _, c := range list {
		if strings.EqualFold(c.Name.Common, query) {
			return c, true
		}
	}
	if matches := Filter(list, query); len(matches) > 0 {
		return matches[0], true
	}
	return Country{}, false
}
