package main

import (
	"errors"
	"fmt"

	"countryexplorer/cmd/countries/ui"
	"countryexplorer/internal/countries"
	"countryexplorer/internal/explorer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errFetch is returned after the generic fetch error has been printed.
var errFetch = errors.New(explorer.ErrorMessage)

var showWidth int

// showCmd prints a detail card for one country
var showCmd = &cobra.Command{
	Use:   "show <cca3|name>",
	Short: "Show a detail card for one country",
	Long: `Looks a country up by its three-letter code or name and prints a card.

Examples:
  countries show PER
  countries show "south africa"`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showWidth, "width", "w", 80, "Wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	list, err := newClient().FetchAll(cmd.Context())
	if err != nil {
		logger.Warn("country list fetch failed", zap.Error(err))
		return errFetch
	}

	c, ok := countries.FindOne(list, args[0])
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), explorer.EmptyMessage)
		return nil
	}
	logger.Debug("showing country", zap.String("cca3", c.CCA3))

	card, err := ui.RenderCard(c, showWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), card)
	return nil
}
