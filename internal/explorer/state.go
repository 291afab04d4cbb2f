// Package explorer holds the view state of the country explorer as an owned
// struct. Callers mutate it through explicit entry points and redraw from
// Phase and Visible after each mutation.
package explorer

import (
	"countryexplorer/internal/countries"
	"countryexplorer/internal/logging"
)

// User-facing strings for the non-list render paths.
const (
	LoadingMessage = "Loading..."
	ErrorMessage   = "Error fetching countries."
	EmptyMessage   = "No countries found."
)

// Phase is the dominant render path for the current state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseList
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseList:
		return "list"
	default:
		return "unknown"
	}
}

// State is the explorer's view state. It is not safe for concurrent use;
// all mutations are expected on the UI goroutine.
type State struct {
	countries []countries.Country
	loading   bool
	err       string
	search    string
	sortBy    countries.SortKey
	sorter    *countries.Sorter
}

// New returns a state that is loading, with an empty search and the given sort.
func New(sortBy countries.SortKey, sorter *countries.Sorter) *State {
	if sorter == nil {
		sorter = countries.DefaultSorter()
	}
	return &State{
		loading: true,
		sortBy:  sortBy,
		sorter:  sorter,
	}
}

// SetSearch replaces the search term.
func (s *State) SetSearch(term string) {
	s.search = term
}

// SetSort replaces the sort key. Keys other than name and population leave
// the filtered order unchanged.
func (s *State) SetSort(key countries.SortKey) {
	if key != s.sortBy {
		logging.UIDebug("sort changed %s -> %s", s.sortBy, key)
	}
	s.sortBy = key
}

// OnFetchResolved stores the loaded collection and clears loading.
func (s *State) OnFetchResolved(list []countries.Country) {
	s.countries = list
	s.loading = false
	logging.UI("country list loaded: %d entries", len(list))
}

// OnFetchFailed records the generic error message and clears loading.
// The cause is only logged; the UI never distinguishes failure kinds.
func (s *State) OnFetchFailed(err error) {
	s.err = ErrorMessage
	s.loading = false
	logging.Get(logging.CategoryUI).Error("country list failed: %v", err)
}

func (s *State) Loading() bool                  { return s.loading }
func (s *State) Err() string                    { return s.err }
func (s *State) Search() string                 { return s.search }
func (s *State) SortBy() countries.SortKey      { return s.sortBy }
func (s *State) Countries() []countries.Country { return s.countries }

// Visible derives the filtered and sorted list for the current state.
func (s *State) Visible() []countries.Country {
	return s.sorter.Sort(countries.Filter(s.countries, s.search), s.sortBy)
}

// Phase reports the render path, checked as loading, error, empty, list.
func (s *State) Phase() Phase {
	if s.loading || s.err != "" {
		return s.PhaseOf(nil)
	}
	return s.PhaseOf(s.Visible())
}

// PhaseOf is Phase for a caller that already holds the result of Visible.
func (s *State) PhaseOf(visible []countries.Country) Phase {
	switch {
	case s.loading:
		return PhaseLoading
	case s.err != "":
		return PhaseError
	case len(visible) == 0:
		return PhaseEmpty
	default:
		return PhaseList
	}
}

// Message returns the text for the non-list phases, or "" for PhaseList.
func (s *State) Message() string {
	switch s.Phase() {
	case PhaseLoading:
		return LoadingMessage
	case PhaseError:
		return s.err
	case PhaseEmpty:
		return EmptyMessage
	default:
		return ""
	}
}
