package ui

import (
	"fmt"
	"strings"

	"countryexplorer/internal/countries"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
)

// CountryMarkdown formats a country as a markdown card.
func CountryMarkdown(c countries.Country) string {
	var sb strings.Builder

	title := c.Name.Common
	if c.Flag != "" {
		title = c.Flag + " " + title
	}
	sb.WriteString("# " + title + "\n\n")
	if c.Name.Official != "" && c.Name.Official != c.Name.Common {
		sb.WriteString("*" + c.Name.Official + "*\n\n")
	}

	capital := c.CapitalLabel()
	if capital == "" {
		capital = "—"
	}

	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Code | %s |\n", c.CCA3)
	if c.Region != "" {
		fmt.Fprintf(&sb, "| Region | %s |\n", c.Region)
	}
	fmt.Fprintf(&sb, "| Capital | %s |\n", capital)
	fmt.Fprintf(&sb, "| Population | %s |\n", humanize.Comma(c.Population))

	if c.Flags.PNG != "" {
		alt := c.Flags.Alt
		if alt == "" {
			alt = "Flag of " + c.Name.Common
		}
		fmt.Fprintf(&sb, "\n![%s](%s)\n", alt, c.Flags.PNG)
	}
	return sb.String()
}

// RenderCard renders the markdown card for the terminal.
func RenderCard(c countries.Country, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(CountryMarkdown(c))
	if err != nil {
		return "", fmt.Errorf("failed to render card: %w", err)
	}
	return out, nil
}
