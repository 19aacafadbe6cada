package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/dex"
	"github.com/rshade/pokedex/internal/tui"
)

// newShowCmd creates the show command, which prints one record.
func newShowCmd(state *appState) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id-or-name>",
		Short: "Print a record",
		Long: `Resolves a record by national number or name and prints it.

Numbers may be written with a leading '#'. Names are matched case-insensitively.`,
		Example: `  # Print by number
  pokedex show 25

  # Print by name as JSON
  pokedex show Pikachu --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			ctx := cmd.Context()
			q := dex.ParseQuery(args[0], state.loader.MaxID())

			var (
				rec *dex.Record
				err error
			)
			switch q.Kind {
			case dex.QueryID:
				rec, err = state.loader.ResolveID(ctx, q.ID)
			case dex.QueryName:
				rec, err = state.loader.Resolve(ctx, q.Name)
			default:
				err = fmt.Errorf("%w: no record for %q", dex.ErrNotFound, args[0])
			}
			if err != nil {
				return err
			}
			return printRecord(cmd, state, rec, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", tui.FormatTable, "output format: table or json")

	return cmd
}

// newRandomCmd creates the random command. It never lands on the anomalous
// record.
func newRandomCmd(state *appState) *cobra.Command {
	var (
		output string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random record",
		Example: `  # Print a random record
  pokedex random

  # Reproducible pick
  pokedex random --seed 42 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			var src rand.Source
			if seed != 0 {
				src = rand.NewPCG(seed, seed)
			}
			picker := dex.NewPicker(src, state.loader.MaxID(), 0)
			id, _ := picker.Pick(0)

			logger.Debug().Ctx(cmd.Context()).Int("id", id).Msg("random pick")
			rec, err := state.loader.ResolveID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRecord(cmd, state, rec, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", tui.FormatTable, "output format: table or json")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the random pick (0 picks a fresh seed)")

	return cmd
}

func validateOutput(output string) error {
	switch strings.ToLower(output) {
	case tui.FormatTable, tui.FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid --output %q: must be table or json", output)
	}
}

func printRecord(cmd *cobra.Command, state *appState, rec *dex.Record, output string) error {
	mode := tui.DetectOutputMode(false, state.flags.noColor, false)
	if mode == tui.OutputModeInteractive {
		mode = tui.OutputModeStyled
	}
	return tui.RenderRecord(cmd.OutOrStdout(), rec, strings.ToLower(output), mode)
}
