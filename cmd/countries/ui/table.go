package ui

import (
	"fmt"
	"strconv"
	"strings"

	"countryexplorer/internal/explorer"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static rows with padded, optionally right-aligned columns.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Align holds per-column alignment; missing entries align left.
	Align []lipgloss.Position
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

func (t *Table) align(col int) lipgloss.Position {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return lipgloss.Left
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("│")

	cells := make([]string, 0, len(t.Headers))
	for i, h := range t.Headers {
		cells = append(cells, headerStyle.Width(colWidths[i]).Align(t.align(i)).Render(h))
	}
	sb.WriteString(strings.Join(cells, sep))
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(styles.RenderDivider(totalWidth))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		cells = cells[:0]
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells = append(cells, rowStyle.Width(colWidths[i]).Align(t.align(i)).Render(cell))
		}
		sb.WriteString(strings.Join(cells, sep))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderState renders the explorer state for a non-interactive terminal,
// following the same precedence as the interactive page. limit > 0 caps
// the number of rows.
func RenderState(state *explorer.State, styles Styles, limit int) string {
	switch state.Phase() {
	case explorer.PhaseLoading:
		return styles.Muted.Render(explorer.LoadingMessage) + "\n"
	case explorer.PhaseError:
		return styles.Error.Render(state.Message()) + "\n"
	case explorer.PhaseEmpty:
		return styles.Muted.Render(state.Message()) + "\n"
	}

	visible := state.Visible()
	title := fmt.Sprintf("Country Explorer (%d countries, %s)", len(visible), state.SortBy().Label())
	table := NewTable(title, "Flag", "Name", "Population", "Capital", "Image")
	table.Align = []lipgloss.Position{lipgloss.Left, lipgloss.Left, lipgloss.Right}

	shown := visible
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, c := range shown {
		table.AddRow(c.Flag, c.Name.Common, strconv.FormatInt(c.Population, 10), c.CapitalLabel(), c.Flags.PNG)
	}

	out := table.View(styles)
	if rest := len(visible) - len(shown); rest > 0 {
		out += styles.Info.Render(fmt.Sprintf("… and %d more", rest)) + "\n"
	}
	return out
}
