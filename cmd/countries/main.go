package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countryexplorer/cmd/countries/ui"
	"countryexplorer/internal/config"
	"countryexplorer/internal/countries"
	"countryexplorer/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	endpoint   string
	timeout    time.Duration

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive explorer
var rootCmd = &cobra.Command{
	Use:   "countries",
	Short: "Country Explorer - browse the REST Countries collection",
	Long: `Country Explorer fetches the list of world countries from the REST Countries
API once, then lets you filter by name and sort by name or population.

Run without arguments to start the interactive explorer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}

		// The interactive explorer owns the terminal; keep zap off stderr.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runExplorer,
}

// setup resolves configuration and initializes category logging.
func setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("endpoint") {
		loaded.API.BaseURL = endpoint
	}
	if cmd.Flags().Changed("timeout") {
		loaded.API.Timeout = timeout.String()
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	if err := logging.Initialize(cfg.Logging.ToLogging()); err != nil {
		return err
	}
	logging.Boot("command=%s config=%s endpoint=%s", cmd.Name(), configPath, cfg.API.BaseURL)
	logging.BootDebug("timeout=%v locale=%s sort=%s flag_width=%d", cfg.GetTimeout(), cfg.Display.Locale, cfg.Display.DefaultSort, cfg.Display.FlagWidth)
	return nil
}

func newClient() *countries.Client {
	return countries.NewClient(
		countries.WithBaseURL(cfg.API.BaseURL),
		countries.WithTimeout(cfg.GetTimeout()),
	)
}

func newSorter() (*countries.Sorter, error) {
	return countries.NewSorter(cfg.Display.Locale)
}

func newStyles() ui.Styles {
	if cfg.Display.DarkMode {
		return ui.NewStyles(ui.DarkTheme())
	}
	return ui.DefaultStyles()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", countries.DefaultBaseURL, "REST Countries API root")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 = none)")

	rootCmd.AddCommand(listCmd, showCmd, flagsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
