package ui

import (
	"context"
	"fmt"
	"image"
	"strings"

	"countryexplorer/internal/countries"
	"countryexplorer/internal/explorer"
	"countryexplorer/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetcher loads the country collection and flag images.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]countries.Country, error)
	FetchFlag(ctx context.Context, url string) (image.Image, error)
}

// Messages produced by the page's commands.
type (
	countriesLoadedMsg struct{ list []countries.Country }
	countriesFailedMsg struct{ err error }
	flagLoadedMsg      struct {
		cca3 string
		img  image.Image
	}
	flagFailedMsg struct {
		cca3 string
		err  error
	}
)

// entryHeight is the number of lines each country occupies in the list.
const entryHeight = 2

// chrome is header + controls + divider + footer.
const chrome = 4

// flagPreview is the overlay opened with enter on a list entry.
type flagPreview struct {
	country countries.Country
	art     string
	err     string
	loading bool
}

// ExplorerOptions configures NewExplorerModel.
type ExplorerOptions struct {
	SortBy    countries.SortKey
	Sorter    *countries.Sorter
	Styles    *Styles
	FlagWidth int
}

// ExplorerModel is the interactive country explorer page.
type ExplorerModel struct {
	ctx     context.Context
	fetcher Fetcher
	state   *explorer.State

	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   Styles

	visible   []countries.Country
	cursor    int
	preview   *flagPreview
	flagWidth int

	width  int
	height int
}

// NewExplorerModel creates the page. The country list is requested once,
// from Init.
func NewExplorerModel(ctx context.Context, fetcher Fetcher, opts ExplorerOptions) ExplorerModel {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	if opts.SortBy == "" {
		opts.SortBy = countries.SortByName
	}
	if opts.FlagWidth <= 0 {
		opts.FlagWidth = DefaultFlagWidth
	}

	ti := textinput.New()
	ti.Placeholder = "Search countries"
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.Prompt
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := ExplorerModel{
		ctx:       ctx,
		fetcher:   fetcher,
		state:     explorer.New(opts.SortBy, opts.Sorter),
		search:    ti,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		styles:    styles,
		flagWidth: opts.FlagWidth,
	}
	m.setSize(80, 20+chrome)
	return m
}

// State exposes the underlying view state.
func (m ExplorerModel) State() *explorer.State {
	return m.state
}

// Init starts the spinner and issues the single country list request.
func (m ExplorerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.loadCountries())
}

func (m ExplorerModel) loadCountries() tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		list, err := fetcher.FetchAll(ctx)
		if err != nil {
			return countriesFailedMsg{err: err}
		}
		return countriesLoadedMsg{list: list}
	}
}

func (m ExplorerModel) loadFlag(c countries.Country) tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		img, err := fetcher.FetchFlag(ctx, c.Flags.PNG)
		if err != nil {
			return flagFailedMsg{cca3: c.CCA3, err: err}
		}
		return flagLoadedMsg{cca3: c.CCA3, img: img}
	}
}

// Update handles messages.
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countriesLoadedMsg:
		m.state.OnFetchResolved(msg.list)
		m.refresh()
		return m, nil

	case countriesFailedMsg:
		m.state.OnFetchFailed(msg.err)
		return m, nil

	case flagLoadedMsg:
		if m.preview != nil && m.preview.country.CCA3 == msg.cca3 {
			m.preview.art = RenderFlag(msg.img, m.flagWidth)
			m.preview.loading = false
		}
		return m, nil

	case flagFailedMsg:
		if m.preview != nil && m.preview.country.CCA3 == msg.cca3 {
			logging.Get(logging.CategoryUI).Warn("flag for %s unavailable: %v", msg.cca3, msg.err)
			m.preview.err = "Flag unavailable."
			m.preview.loading = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m ExplorerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.preview != nil {
		if key == "esc" || key == "enter" {
			m.preview = nil
		}
		return m, nil
	}

	// The controls are only shown once the list has loaded.
	if phase := m.phase(); phase == explorer.PhaseLoading || phase == explorer.PhaseError {
		if key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "esc":
		if m.search.Value() == "" {
			return m, tea.Quit
		}
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	case "tab":
		m.state.SetSort(m.state.SortBy().Next())
		m.refresh()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "pgup":
		m.moveCursor(-m.pageSize())
		return m, nil
	case "pgdown":
		m.moveCursor(m.pageSize())
		return m, nil
	case "home":
		m.moveCursor(-len(m.visible))
		return m, nil
	case "end":
		m.moveCursor(len(m.visible))
		return m, nil
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		c := m.visible[m.cursor]
		m.preview = &flagPreview{country: c, loading: true}
		logging.UIDebug("flag preview for %s", c.CCA3)
		return m, m.loadFlag(c)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applySearch()
	}
	return m, cmd
}

func (m *ExplorerModel) applySearch() {
	m.state.SetSearch(m.search.Value())
	m.cursor = 0
	m.refresh()
}

func (m *ExplorerModel) pageSize() int {
	return max(1, m.viewport.Height/entryHeight)
}

func (m *ExplorerModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.viewport.SetContent(m.renderList())
	m.ensureCursorVisible()
}

func (m *ExplorerModel) ensureCursorVisible() {
	top := m.cursor * entryHeight
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom := top + entryHeight; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// refresh recomputes the derived list after a state mutation.
func (m *ExplorerModel) refresh() {
	m.visible = m.state.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.viewport.SetContent(m.renderList())
	m.viewport.GotoTop()
	m.ensureCursorVisible()
}

func (m *ExplorerModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = max(w-lipgloss.Width(m.sortLabel())-8, 10)
	m.viewport.Width = w
	m.viewport.Height = max(h-chrome, entryHeight)
	if m.visible != nil {
		m.viewport.SetContent(m.renderList())
		m.ensureCursorVisible()
	}
}

func (m ExplorerModel) sortLabel() string {
	return m.styles.Badge.Render(m.state.SortBy().Label())
}

func (m ExplorerModel) renderList() string {
	var sb strings.Builder
	for i, c := range m.visible {
		marker := "  "
		nameStyle := m.styles.Bold
		if i == m.cursor {
			marker = m.styles.Prompt.Render("▸ ")
			nameStyle = m.styles.Selected
		}
		flag := c.Flag
		if flag == "" {
			flag = "  "
		}
		sb.WriteString(marker + flag + " " + nameStyle.Render(c.Name.Common) + "\n")
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("     Population: %d   Capital: %s", c.Population, c.CapitalLabel())))
		if i < len(m.visible)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m ExplorerModel) renderPreview() string {
	p := m.preview
	var body string
	switch {
	case p.loading:
		body = m.styles.Muted.Render("Loading flag...")
	case p.err != "":
		body = m.styles.Error.Render(p.err)
	default:
		body = p.art
	}
	caption := p.country.Flags.Alt
	if caption == "" {
		caption = "Flag of " + p.country.Name.Common
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(p.country.Name.Common),
		"",
		body,
		"",
		m.styles.Muted.Render(caption),
		m.styles.Muted.Render(p.country.Flags.PNG),
	)
	return m.styles.Preview.Render(content)
}

// phase derives the render path from the cached visible list.
func (m ExplorerModel) phase() explorer.Phase {
	return m.state.PhaseOf(m.visible)
}

// View renders the page.
func (m ExplorerModel) View() string {
	phase := m.phase()
	switch phase {
	case explorer.PhaseLoading:
		return m.styles.Content.Render(m.spinner.View() + " " + explorer.LoadingMessage)
	case explorer.PhaseError:
		return m.styles.Content.Render(m.styles.Error.Render(m.state.Err()))
	}

	header := m.styles.Header.Width(m.width).Render("Country Explorer")
	controls := lipgloss.JoinHorizontal(lipgloss.Center, m.search.View(), "  ", m.sortLabel())

	var body, help string
	switch {
	case m.preview != nil:
		body = m.renderPreview()
		help = "enter/esc: back • ctrl+c: quit"
	case phase == explorer.PhaseEmpty:
		body = m.styles.Content.Render(m.styles.Muted.Render(explorer.EmptyMessage))
		help = "type to search • esc: clear • ctrl+c: quit"
	default:
		body = m.viewport.View()
		help = fmt.Sprintf("%d/%d • ↑/↓ pgup/pgdn home/end: move • tab: sort • enter: flag • esc: clear/quit", m.cursor+1, len(m.visible))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		controls,
		m.styles.RenderDivider(m.width),
		body,
		m.styles.Footer.Render(help),
	)
}
