package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pokedex/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "Create and inspect the pokedex configuration file.",
	}

	cmd.AddCommand(newConfigInitCmd(state), newConfigShowCmd(state))

	return cmd
}

// newConfigInitCmd creates the config init command, which writes the default
// configuration. It runs even when the existing file is invalid so that
// --force can repair it.
func newConfigInitCmd(state *appState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$POKEDEX_HOME/config.yaml (or ~/.pokedex/config.yaml), or at --config.`,
		Example: `  # Create configuration
  pokedex config init

  # Create configuration, overwriting existing
  pokedex config init --force`,
		Annotations: map[string]string{annotationSkipConfigLoad: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault(state.flags.configPath, force)
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return err
				}
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Info().Ctx(cmd.Context()).Str("path", path).Bool("force", force).Msg("configuration initialized")
			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// newConfigShowCmd creates the config show command, which prints the
// effective configuration after file, env and flag overrides.
func newConfigShowCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(state.cfg)
			if err != nil {
				return fmt.Errorf("marshaling configuration: %w", err)
			}
			cmd.Printf("# %s\n", state.cfg.ConfigPath())
			cmd.Print(string(data))
			return nil
		},
	}
}
