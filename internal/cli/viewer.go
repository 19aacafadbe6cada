package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/dex"
	"github.com/rshade/pokedex/internal/tui"
)

// runViewer opens the interactive viewer, or prints the start record when
// stdout is not a terminal.
func runViewer(cmd *cobra.Command, state *appState, start string) error {
	ctx := cmd.Context()

	startID, err := resolveStartID(ctx, state, start)
	if err != nil {
		return err
	}

	mode := tui.DetectOutputMode(false, state.flags.noColor, false)
	if mode != tui.OutputModeInteractive {
		logger.Debug().Ctx(ctx).Int("id", startID).Str("mode", mode.String()).Msg("no terminal, printing start record")
		rec, resolveErr := state.loader.ResolveID(ctx, startID)
		if resolveErr != nil {
			return resolveErr
		}
		return tui.RenderRecord(cmd.OutOrStdout(), rec, tui.FormatTable, mode)
	}

	model := tui.NewDexModel(ctx, state.loader, tui.Options{
		StartID:        startID,
		Store:          state.store,
		Picker:         dex.NewPicker(nil, state.cfg.Dex.MaxID, state.cfg.Dex.AnomalyChance),
		ErrorDisplay:   state.cfg.Dex.ErrorDisplay,
		AnomalyDisplay: state.cfg.Dex.AnomalyDisplay,
	})

	logger.Info().Ctx(ctx).Int("start_id", startID).Msg("starting viewer")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("running viewer: %w", runErr)
	}
	return nil
}

// resolveStartID picks the first record: the --start value when given,
// otherwise the last viewed id from the state store.
func resolveStartID(ctx context.Context, state *appState, start string) (int, error) {
	maxID := state.loader.MaxID()
	q := dex.ParseQuery(start, maxID)
	switch q.Kind {
	case dex.QueryEmpty:
		return dex.RestoreStartID(ctx, state.store, maxID), nil
	case dex.QueryID:
		return q.ID, nil
	case dex.QueryName:
		rec, err := state.loader.Resolve(ctx, q.Name)
		if err != nil {
			return 0, fmt.Errorf("resolving start record: %w", err)
		}
		return rec.ID, nil
	default:
		return 0, fmt.Errorf("%w: %q cannot be used as a start record", dex.ErrNotFound, start)
	}
}
