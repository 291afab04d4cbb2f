package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"countryexplorer/internal/countries"
	"countryexplorer/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagsOut         string
	flagsSearch      string
	flagsConcurrency int
)

// flagsCmd downloads flag images for the filtered set
var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Download PNG flags of the matching countries",
	Long: `Fetches the country collection once, filters it by name and saves each
flag image as <out>/<cca3>.png.

Example:
  countries flags --out ./flags --search land --concurrency 8`,
	Args: cobra.NoArgs,
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringVarP(&flagsOut, "out", "o", "flags", "Output directory")
	flagsCmd.Flags().StringVarP(&flagsSearch, "search", "s", "", "Keep countries whose common name contains this text")
	flagsCmd.Flags().IntVar(&flagsConcurrency, "concurrency", 4, "Parallel downloads")
}

func runFlags(cmd *cobra.Command, args []string) error {
	client := newClient()
	list, err := client.FetchAll(cmd.Context())
	if err != nil {
		logger.Warn("country list fetch failed", zap.Error(err))
		return errFetch
	}

	matches := countries.Filter(list, flagsSearch)
	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No countries found.")
		return nil
	}

	if err := os.MkdirAll(flagsOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var saved atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(flagsConcurrency, 1))

	for _, c := range matches {
		if c.Flags.PNG == "" || c.CCA3 == "" {
			logger.Debug("skipping country without flag", zap.String("name", c.Name.Common))
			continue
		}
		g.Go(func() error {
			flagLog := logging.Get(logging.CategoryCLI).With("cca3", c.CCA3)
			data, err := client.FetchFlagPNG(ctx, c.Flags.PNG)
			if err != nil {
				flagLog.Warn("download failed: %v", err)
				return fmt.Errorf("%s: %w", c.CCA3, err)
			}
			path := filepath.Join(flagsOut, strings.ToLower(c.CCA3)+".png")
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			flagLog.Debug("saved %s", path)
			saved.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.CLI("flags download aborted after %d files: %v", saved.Load(), err)
		return err
	}

	logging.CLI("saved %d flags to %s", saved.Load(), flagsOut)
	fmt.Fprintln(cmd.OutOrStdout(), newStyles().Success.Render(fmt.Sprintf("Saved %d flags to %s", saved.Load(), flagsOut)))
	return nil
}
