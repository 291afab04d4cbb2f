package main

import (
	"countryexplorer/cmd/countries/ui"
	"countryexplorer/internal/countries"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runExplorer(cmd *cobra.Command, args []string) error {
	sorter, err := newSorter()
	if err != nil {
		return err
	}
	styles := newStyles()

	model := ui.NewExplorerModel(cmd.Context(), newClient(), ui.ExplorerOptions{
		SortBy:    countries.SortKey(cfg.Display.DefaultSort),
		Sorter:    sorter,
		Styles:    &styles,
		FlagWidth: cfg.Display.FlagWidth,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
