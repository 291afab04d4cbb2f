package main

import (
	"fmt"

	"countryexplorer/cmd/countries/ui"
	"countryexplorer/internal/countries"
	"countryexplorer/internal/explorer"
	"countryexplorer/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listSearch string
	listSort   string
	listLimit  int
)

// listCmd renders the filtered and sorted list once, without the TUI
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered and sorted country list",
	Long: `Fetches the country collection once and prints it as a table.

Examples:
  countries list --search chi
  countries list --sort population --limit 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Keep countries whose common name contains this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by name or population (default from config)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Print at most n rows (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	sortBy := cfg.Display.DefaultSort
	if listSort != "" {
		sortBy = listSort
	}

	sorter, err := newSorter()
	if err != nil {
		return err
	}

	state := explorer.New(countries.SortKey(sortBy), sorter)
	state.SetSearch(listSearch)

	client := newClient()
	list, err := client.FetchAll(cmd.Context())
	if err != nil {
		logger.Warn("country list fetch failed", zap.String("endpoint", client.BaseURL()), zap.Error(err))
		state.OnFetchFailed(err)
	} else {
		state.OnFetchResolved(list)
	}

	logging.CLI("list search=%q sort=%s phase=%s", listSearch, sortBy, state.Phase())
	logger.Debug("rendering list",
		zap.String("phase", state.Phase().String()),
		zap.Int("loaded", len(state.Countries())),
		zap.Int("visible", len(state.Visible())))

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderState(state, newStyles(), listLimit))
	if state.Phase() == explorer.PhaseError {
		return errFetch
	}
	return nil
}
