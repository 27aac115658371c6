package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/flightradar/config"
	"github.com/s0up4200/flightradar/filter"
	"github.com/s0up4200/flightradar/flightradar"
)

var (
	version = "dev"
	built   = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  flightradar.API
	filters *filter.Manager
	printer *resultPrinter

	// Global flags
	outputFormat string
	logLevel     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fr24",
	Short: "Query the Flightradar24 API from the command line",
	Long: `fr24 is a CLI for the Flightradar24 REST API. It looks up airlines and
airports, lists live and historic flight positions, flight summaries, tracks
and events, and reports API credit usage.

Positions can be narrowed further with filter expressions, either inline
with --where or saved by name in the config file.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records build information shown by the version command
func SetVersion(v, buildTime string) {
	version = v
	built = buildTime
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or API key needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fr24 %s (built %s)\n", version, built)
	},
}

// initializeApp loads configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyOverrides(outputFormat, logLevel); err != nil {
		return fmt.Errorf("invalid flag: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	printer, err = newResultPrinter(cmd.OutOrStdout(), cfg.Output.Format)
	if err != nil {
		return err
	}

	opts := []flightradar.Option{
		flightradar.WithTimeout(cfg.API.Timeout),
		flightradar.WithUserAgent(cfg.API.UserAgent),
	}
	if cfg.API.RateLimit > 0 {
		opts = append(opts, flightradar.WithHTTPClient(
			newPacedHTTPClient(cfg.API.RateLimit, cfg.API.Burst, &http.Client{Timeout: cfg.API.Timeout}),
		))
		logger.Debug().Float64("rps", cfg.API.RateLimit).Int("burst", cfg.API.Burst).Msg("Pacing API requests")
	}

	client, err = flightradar.NewClient(cfg.API.BaseURL, cfg.API.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid saved filter: %w", err)
	}
	if len(cfg.Filter) > 0 {
		logger.Debug().Strs("filters", filters.ListFilters()).Msg("Registered saved filters")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
