package countries

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied by a Sorter.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPopulation SortKey = "population"
)

// Label is the text shown by the sort selector.
func (k SortKey) Label() string {
	switch k {
	case SortByName:
		return "Sort by Name"
	case SortByPopulation:
		return "Sort by Population"
	default:
		return "Unsorted"
	}
}

// Next cycles name -> population -> name.
func (k SortKey) Next() SortKey {
	if k == SortByName {
		return SortByPopulation
	}
	return SortByName
}

// Sorter orders countries. Names are compared with a collator for the
// configured language.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a Sorter collating names for locale (a BCP 47 tag).
func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

// DefaultSorter collates names using English rules.
func DefaultSorter() *Sorter {
	return &Sorter{tag: language.English}
}

// Sort returns a new slice ordered by key. Name sorts ascend under the
// collator, population sorts descend, and any other key keeps the input
// order. The sort is stable.
func (s *Sorter) Sort(list []Country, key SortKey) []Country {
	out := slices.Clone(list)
	switch key {
	case SortByName:
		// collate.Collator keeps internal buffers, so one per call.
		col := collate.New(s.tag)
		slices.SortStableFunc(out, func(a, b Country) int {
			return col.CompareString(a.Name.Common, b.Name.Common)
		})
	case SortByPopulation:
		slices.SortStableFunc(out, func(a, b Country) int {
			return cmp.Compare(b.Population, a.Population)
		})
	}
	return out
}

// Sort orders list with the default sorter.
func Sort(list []Country, key SortKey) []Country {
	return DefaultSorter().Sort(list, key)
}
