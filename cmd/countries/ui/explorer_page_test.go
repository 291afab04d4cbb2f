package ui

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"countryexplorer/internal/countries"
	"countryexplorer/internal/explorer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned results and counts calls.
type fakeFetcher struct {
	list      []countries.Country
	err       error
	flag      image.Image
	flagErr   error
	listCalls int
	flagURLs  []string
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]countries.Country, error) {
	f.listCalls++
	return f.list, f.err
}

func (f *fakeFetcher) FetchFlag(ctx context.Context, url string) (image.Image, error) {
	f.flagURLs = append(f.flagURLs, url)
	return f.flag, f.flagErr
}

func newTestModel(t *testing.T, f *fakeFetcher, sortBy countries.SortKey) ExplorerModel {
	t.Helper()
	styles := NewStyles(LightTheme())
	m := NewExplorerModel(context.Background(), f, ExplorerOptions{SortBy: sortBy, Styles: &styles, FlagWidth: 8})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m ExplorerModel, msg tea.Msg) ExplorerModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(ExplorerModel)
	require.True(t, ok, "Update returned %T", next)
	return em
}

// loaded runs the model's fetch command and feeds its result back.
func loaded(t *testing.T, m ExplorerModel) ExplorerModel {
	t.Helper()
	return update(t, m, m.loadCountries()())
}

func typeText(t *testing.T, m ExplorerModel, s string) ExplorerModel {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func visibleNames(m ExplorerModel) []string {
	var out []string
	for _, c := range m.visible {
		out = append(out, c.Name.Common)
	}
	return out
}

func TestExplorer_LoadingView(t *testing.T) {
	f := &fakeFetcher{list: sampleCountries()}
	m := newTestModel(t, f, countries.SortByName)

	assert.Contains(t, m.View(), "Loading...")
	assert.NotContains(t, m.View(), "Country Explorer")
	assert.Equal(t, 0, f.listCalls, "fetch must not run before Init's command executes")
}

func TestExplorer_InitReturnsCommand(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, countries.SortByName)
	assert.NotNil(t, m.Init())
}

func TestExplorer_FetchFailedView(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	m := loaded(t, newTestModel(t, f, countries.SortByName))

	assert.Equal(t, explorer.PhaseError, m.State().Phase())
	assert.Contains(t, m.View(), "Error fetching countries.")
	assert.Equal(t, 1, f.listCalls)

	// Typing does nothing once failed.
	m = typeText(t, m, "peru")
	assert.Equal(t, explorer.PhaseError, m.State().Phase())
	assert.Empty(t, m.State().Search())
}

func TestExplorer_ListView(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))

	view := m.View()
	assert.Contains(t, view, "Country Explorer")
	assert.Contains(t, view, "Sort by Name")
	assert.Contains(t, view, "Population: 33000000")
	assert.Contains(t, view, "Capital: Santiago")
	assert.Less(t, strings.Index(view, "Chile"), strings.Index(view, "Peru"))
}

func TestExplorer_TabTogglesSort(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))
	assert.Equal(t, []string{"Chile", "Peru"}, visibleNames(m))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, countries.SortByPopulation, m.State().SortBy())
	assert.Equal(t, []string{"Peru", "Chile"}, visibleNames(m))
	assert.Contains(t, m.View(), "Sort by Population")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, countries.SortByName, m.State().SortBy())
}

func TestExplorer_SearchFilters(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByPopulation))

	m = typeText(t, m, "chi")
	assert.Equal(t, "chi", m.State().Search())
	assert.Equal(t, []string{"Chile"}, visibleNames(m))
	assert.NotContains(t, m.View(), "Peru")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.State().Search())
	assert.Len(t, m.visible, 2)
}

func TestExplorer_EmptyView(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))
	m = typeText(t, m, "atlantis")

	assert.Equal(t, explorer.PhaseEmpty, m.State().Phase())
	assert.Contains(t, m.View(), "No countries found.")
}

func TestExplorer_CursorMovement(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor clamps at the end")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "2/2")
}

func TestExplorer_CursorScrollsViewport(t *testing.T) {
	var list []countries.Country
	for i := 0; i < 40; i++ {
		list = append(list, countries.Country{
			Name:       countries.Name{Common: "Country " + string(rune('A'+i%26)) + string(rune('a'+i/26))},
			CCA3:       string(rune('A'+i%26)) + string(rune('A'+i/26)) + "X",
			Population: int64(i),
		})
	}
	m := loaded(t, newTestModel(t, &fakeFetcher{list: list}, countries.SortByName))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 39, m.cursor)
	assert.Greater(t, m.viewport.YOffset, 0)
	assert.LessOrEqual(t, m.cursor*entryHeight+entryHeight, m.viewport.YOffset+m.viewport.Height)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Less(t, m.cursor, 39)
	assert.GreaterOrEqual(t, m.cursor*entryHeight, m.viewport.YOffset)
}

func TestExplorer_FlagPreview(t *testing.T) {
	f := &fakeFetcher{list: sampleCountries(), flag: stripes(16, 8)}
	m := loaded(t, newTestModel(t, f, countries.SortByPopulation))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ExplorerModel)
	require.NotNil(t, cmd)
	require.NotNil(t, m.preview)
	assert.True(t, m.preview.loading)
	assert.Contains(t, m.View(), "Loading flag...")

	m = update(t, m, cmd())
	assert.Equal(t, []string{"https://flagcdn.com/w320/pe.png"}, f.flagURLs)
	assert.False(t, m.preview.loading)
	assert.Contains(t, m.View(), "▀")
	assert.Contains(t, m.View(), "Flag of Peru")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.preview)
	assert.Equal(t, 1, f.listCalls, "closing the preview must not refetch")
}

func TestExplorer_FlagPreviewFailure(t *testing.T) {
	f := &fakeFetcher{list: sampleCountries(), flagErr: countries.ErrFlagFailed}
	m := loaded(t, newTestModel(t, f, countries.SortByName))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, next.(ExplorerModel), cmd())
	assert.Contains(t, m.View(), "Flag unavailable.")
}

func TestExplorer_StaleFlagIgnored(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))
	m = update(t, m, flagLoadedMsg{cca3: "PER", img: stripes(4, 2)})
	assert.Nil(t, m.preview)
}

func TestExplorer_Quit(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, countries.SortByName)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExplorer_PhaseFollowsCachedList(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName)
	assert.Equal(t, explorer.PhaseLoading, m.phase())

	m = loaded(t, m)
	assert.Equal(t, explorer.PhaseList, m.phase())

	m = typeText(t, m, "atlantis")
	assert.Equal(t, explorer.PhaseEmpty, m.phase())
	assert.Equal(t, m.State().Phase(), m.phase())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, explorer.PhaseList, m.phase())
	assert.Equal(t, m.State().Phase(), m.phase())
}

func TestExplorer_HomeEndMoveListNotSearch(t *testing.T) {
	m := loaded(t, newTestModel(t, &fakeFetcher{list: sampleCountries()}, countries.SortByName))
	assert.Contains(t, m.View(), "home/end")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, len(m.visible)-1, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.search.Value())
}
