package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/dex"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
	"github.com/rshade/pokedex/internal/tui"
	"github.com/rshade/pokedex/pkg/version"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationSkipConfigLoad marks commands that must run even when the config
// file on disk does not validate.
const annotationSkipConfigLoad = "pokedex/skip-config-load"

// metricsShutdownTimeout bounds the graceful stop of the /metrics listener.
const metricsShutdownTimeout = 5 * time.Second

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath  string
	debug       bool
	noColor     bool
	apiURL      string
	maxID       int
	metricsAddr string
}

// appState is built once per invocation by PersistentPreRunE and handed to
// the subcommands.
type appState struct {
	flags rootFlags

	cfg       *config.Config
	logResult *logging.LogPathResult
	registry  *prometheus.Registry
	metrics   *dex.Metrics
	loader    *dex.Loader
	store     dex.KeyValueStore
	server    *metricsServer
}

// NewRootCmd creates the root Cobra command for the pokedex CLI.
// Without a subcommand it opens the interactive viewer.
func NewRootCmd(ver string) *cobra.Command {
	var (
		state = &appState{}
		start string
	)

	cmd := &cobra.Command{
		Use:          "pokedex",
		Short:        "Browse Pokémon records from the terminal",
		Long:         "pokedex: an interactive terminal Pokédex backed by the public PokéAPI",
		Version:      ver,
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return state.teardown(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViewer(cmd, state, start)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&state.flags.configPath, "config", "",
		"config file (default $POKEDEX_HOME/config.yaml or ~/.pokedex/config.yaml)")
	pf.BoolVar(&state.flags.debug, "debug", false,
		"enable debug logging (to stderr, or to the log file while the viewer runs)")
	pf.BoolVar(&state.flags.noColor, "no-color", false, "disable styled output")
	pf.StringVar(&state.flags.apiURL, "api-url", "", "PokéAPI base URL (overrides config file and env var)")
	pf.IntVar(&state.flags.maxID, "max-id", 0, "highest record id to browse (overrides config file and env var)")
	pf.StringVar(&state.flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	cmd.SetVersionTemplate(fmt.Sprintf("pokedex {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))

	cmd.Flags().StringVar(&start, "start", "", "record to open first, by id or name (default: last viewed)")

	cmd.AddCommand(newShowCmd(state), newRandomCmd(state), newConfigCmd(state))

	return cmd
}

const rootCmdExample = `  # Open the viewer on the last record you looked at
  pokedex

  # Open the viewer on a specific record
  pokedex --start pikachu

  # Print a record as JSON
  pokedex show 25 --output json

  # Print a random record
  pokedex random

  # Write the default configuration
  pokedex config init`

// setup loads configuration, applies flag overrides, configures logging and
// builds the loader shared by the subcommands.
func (s *appState) setup(cmd *cobra.Command) error {
	cfg, err := s.loadConfig(cmd)
	if err != nil {
		return err
	}
	s.cfg = cfg

	result := setupLogging(cmd, cfg, s.flags.debug, s.runsViewer(cmd))
	s.logResult = &result
	ctx := cmd.Context()

	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s.metrics = dex.NewMetrics(s.registry)

	client := pokeapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	client.UserAgent = version.UserAgent()
	s.loader = dex.NewLoader(client, dex.LoaderOptions{
		MaxID:          cfg.Dex.MaxID,
		CryURLTemplate: cfg.API.CryURLTemplate,
		Metrics:        s.metrics,
	})

	s.store = openStore(ctx, cfg)

	if cfg.Metrics.Addr != "" {
		server, serveErr := startMetricsServer(cfg.Metrics.Addr, s.registry)
		if serveErr != nil {
			logger.Warn().Ctx(ctx).Err(serveErr).Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint disabled")
			cmd.PrintErrf("Warning: could not serve metrics on %s: %v\n", cfg.Metrics.Addr, serveErr)
		} else {
			s.server = server
			logger.Info().Ctx(ctx).Str("addr", server.Addr()).Msg("serving metrics")
		}
	}

	return nil
}

// runsViewer reports whether cmd will hand the terminal to the interactive
// viewer.
func (s *appState) runsViewer(cmd *cobra.Command) bool {
	return cmd == cmd.Root() &&
		tui.DetectOutputMode(false, s.flags.noColor, false) == tui.OutputModeInteractive
}

// loadConfig reads the config file and overlays any flags the user set.
func (s *appState) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(s.flags.configPath)
	if err != nil {
		if cmd.Annotations[annotationSkipConfigLoad] != "true" {
			return nil, err
		}
		cfg = config.Default()
		if s.flags.configPath != "" {
			cfg.SetConfigPath(s.flags.configPath)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = s.flags.apiURL
	}
	if flags.Changed("max-id") {
		cfg.Dex.MaxID = s.flags.maxID
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = s.flags.metricsAddr
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// teardown stops the metrics endpoint and closes the log file.
func (s *appState) teardown(cmd *cobra.Command) error {
	var errs []error
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stopping metrics endpoint: %w", err))
		}
		s.server = nil
	}
	if err := cleanupLogging(cmd, s.logResult); err != nil {
		errs = append(errs, err)
	}
	s.logResult = nil
	return errors.Join(errs...)
}

// openStore opens the durable state file. Failures disable persistence.
func openStore(ctx context.Context, cfg *config.Config) dex.KeyValueStore {
	if cfg.State.Disabled {
		return nil
	}
	store, err := config.OpenStateStore(cfg.State.File)
	if err != nil || store == nil {
		logger.Warn().Ctx(ctx).Err(err).Str("file", cfg.State.File).Msg("state store unavailable, last viewed record will not be remembered")
		return nil
	}
	return store
}
