package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pokedex/internal/dex"
	"github.com/rshade/pokedex/internal/logging"
)

// ViewState is the screen the viewer is showing.
type ViewState int

const (
	// ViewStateLoading shows a spinner while a record resolves.
	ViewStateLoading ViewState = iota
	// ViewStateDisplay shows the current record.
	ViewStateDisplay
	// ViewStateError shows a resolution failure until the recovery timer fires.
	ViewStateError
	// ViewStateAnomaly shows the glitch screen until its timer fires.
	ViewStateAnomaly
	// ViewStateQuitting is the terminal state.
	ViewStateQuitting
)

// String implements fmt.Stringer.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateDisplay:
		return "display"
	case ViewStateError:
		return "error"
	case ViewStateAnomaly:
		return "anomaly"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Resolver turns an identifier into a record. *dex.Loader implements it.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*dex.Record, error)
	MaxID() int
}

// Options configures a DexModel.
type Options struct {
	// StartID is the first record shown. Values outside the range start at 1.
	StartID int
	// Store persists the last viewed id. Nil disables persistence.
	Store dex.KeyValueStore
	// Picker draws random ids. Nil uses a runtime-seeded picker.
	Picker *dex.Picker
	// ErrorDisplay is how long the error screen stays up.
	ErrorDisplay time.Duration
	// AnomalyDisplay is how long the glitch screen stays up.
	AnomalyDisplay time.Duration
}

// Default screen timings.
const (
	defaultErrorDisplay   = 2 * time.Second
	defaultAnomalyDisplay = 3 * time.Second
	defaultWidth          = 80
	defaultHeight         = 24
)

// recordLoadedMsg carries the outcome of a resolution.
type recordLoadedMsg struct {
	epoch  int
	target string
	record *dex.Record
	err    error
}

// recoverMsg fires when the error or anomaly screen times out.
type recoverMsg struct {
	epoch int
}

// effectExpiredMsg fires when a cosmetic effect ends.
type effectExpiredMsg struct {
	epoch int
	kind  dex.EffectKind
}

// scheduleFunc delivers msg after d.
type scheduleFunc func(d time.Duration, msg tea.Msg) tea.Cmd

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// DexModel is the Bubble Tea model for the interactive viewer.
//
// Every timer message carries the epoch current when it was scheduled.
// Starting a load or entering the anomaly screen bumps the epoch, so timers
// from a superseded screen are ignored when they arrive.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DexModel struct {
	ctx      context.Context
	resolver Resolver
	store    dex.KeyValueStore
	picker   *dex.Picker
	session  *dex.Session
	konami   dex.KonamiMatcher

	state   ViewState
	record  *dex.Record
	target  string
	err     error
	epoch   int
	effects map[dex.EffectKind]dex.Effect

	searching bool
	search    textinput.Model
	spinner   spinner.Model
	keys      keyMap
	searchKey searchKeyMap
	help      help.Model

	width  int
	height int

	errorDisplay   time.Duration
	anomalyDisplay time.Duration
	schedule       scheduleFunc
}

// NewDexModel creates a viewer that starts loading opts.StartID on Init.
func NewDexModel(ctx context.Context, resolver Resolver, opts Options) DexModel {
	maxID := resolver.MaxID()
	start := dex.ClampID(opts.StartID, maxID, 1)

	if opts.Picker == nil {
		opts.Picker = dex.NewPicker(nil, maxID, dex.DefaultAnomalyChance)
	}
	if opts.ErrorDisplay <= 0 {
		opts.ErrorDisplay = defaultErrorDisplay
	}
	if opts.AnomalyDisplay <= 0 {
		opts.AnomalyDisplay = defaultAnomalyDisplay
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return DexModel{
		ctx:            ctx,
		resolver:       resolver,
		store:          opts.Store,
		picker:         opts.Picker,
		session:        dex.NewSession(start),
		state:          ViewStateLoading,
		target:         strconv.Itoa(start),
		epoch:          1,
		effects:        make(map[dex.EffectKind]dex.Effect),
		search:         newSearchInput(),
		spinner:        sp,
		keys:           defaultKeyMap(),
		searchKey:      defaultSearchKeyMap(),
		help:           help.New(),
		width:          defaultWidth,
		height:         defaultHeight,
		errorDisplay:   opts.ErrorDisplay,
		anomalyDisplay: opts.AnomalyDisplay,
		schedule:       tickAfter,
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name or number"
	ti.Prompt = "🔍 "
	ti.CharLimit = 32
	ti.Width = 24
	return ti
}

// Init starts the first load (Bubble Tea interface).
func (m DexModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveCmd(m.target, m.epoch))
}

// Update handles messages (Bubble Tea interface).
func (m DexModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordLoadedMsg:
		return m.handleRecordLoaded(msg)

	case recoverMsg:
		return m.handleRecover(msg)

	case effectExpiredMsg:
		if msg.epoch == m.epoch {
			delete(m.effects, msg.kind)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DexModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.konami.Feed(msg.String()) {
		return m.toggleMode()
	}

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if m.state == ViewStateLoading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.navigate(dex.DeltaPrevious)
	case key.Matches(msg, m.keys.Down):
		return m.navigate(dex.DeltaNext)
	case key.Matches(msg, m.keys.Left):
		return m.navigate(dex.DeltaBack10)
	case key.Matches(msg, m.keys.Right):
		return m.navigate(dex.DeltaForward10)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Random):
		return m.random()
	case key.Matches(msg, m.keys.Cry):
		return m.cry()
	}
	return m, nil
}

func (m DexModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.searchKey.Cancel):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, m.searchKey.Submit):
		text := m.search.Value()
		m.closeSearch()
		return m.submitSearch(text)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *DexModel) closeSearch() {
	m.searching = false
	m.search.Blur()
}

func (m DexModel) submitSearch(text string) (tea.Model, tea.Cmd) {
	if m.state == ViewStateLoading {
		return m, nil
	}

	q := dex.ParseQuery(text, m.resolver.MaxID())
	logging.FromContext(m.ctx).Debug().
		Ctx(m.ctx).
		Str("component", "tui").
		Str("operation", "search").
		Stringer("kind", q.Kind).
		Msg("search submitted")

	switch q.Kind {
	case dex.QueryAnomaly:
		return m.enterAnomaly()
	case dex.QueryID:
		return m.startLoad(strconv.Itoa(q.ID))
	case dex.QueryName:
		return m.startLoad(q.Name)
	case dex.QueryEmpty:
		return m, nil
	default:
		return m, nil
	}
}

func (m DexModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	return m, tea.Quit
}

func (m DexModel) navigate(delta int) (tea.Model, tea.Cmd) {
	next := dex.Wrap(m.session.CurrentID, delta, m.resolver.MaxID())
	return m.startLoad(strconv.Itoa(next))
}

func (m DexModel) random() (tea.Model, tea.Cmd) {
	id, anomalous := m.picker.Pick(m.session.CurrentID)
	if anomalous {
		return m.enterAnomaly()
	}
	return m.startLoad(strconv.Itoa(id))
}

func (m DexModel) cry() (tea.Model, tea.Cmd) {
	if m.state != ViewStateDisplay || m.record == nil {
		return m, nil
	}
	return m, m.applyEffects([]dex.Effect{{Kind: dex.EffectCry, Duration: dex.CryDuration}})
}

func (m DexModel) toggleMode() (tea.Model, tea.Cmd) {
	mode := m.session.ToggleMode()
	logging.FromContext(m.ctx).Info().
		Ctx(m.ctx).
		Str("component", "tui").
		Stringer("mode", mode).
		Msg("display mode toggled")

	if m.state != ViewStateDisplay {
		return m, nil
	}
	return m.startLoad(strconv.Itoa(m.session.CurrentID))
}

// startLoad resolves identifier unless a load is already pending.
func (m DexModel) startLoad(identifier string) (tea.Model, tea.Cmd) {
	if m.state == ViewStateLoading {
		return m, nil
	}
	m.epoch++
	m.state = ViewStateLoading
	m.target = identifier
	m.err = nil
	clear(m.effects)
	return m, tea.Batch(m.spinner.Tick, m.resolveCmd(identifier, m.epoch))
}

func (m DexModel) resolveCmd(identifier string, epoch int) tea.Cmd {
	ctx := m.ctx
	resolver := m.resolver
	return func() tea.Msg {
		record, err := resolver.Resolve(ctx, identifier)
		return recordLoadedMsg{epoch: epoch, target: identifier, record: record, err: err}
	}
}

func (m DexModel) handleRecordLoaded(msg recordLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.epoch || m.state != ViewStateLoading {
		return m, nil
	}

	log := logging.FromContext(m.ctx)

	if msg.err != nil {
		// With nothing on screen yet a busy result is retried through the
		// error screen like any other failure.
		if errors.Is(msg.err, dex.ErrBusy) && m.record != nil {
			m.state = ViewStateDisplay
			return m, nil
		}

		log.Debug().
			Ctx(m.ctx).
			Str("component", "tui").
			Str("operation", "load").
			Str("target", msg.target).
			Err(msg.err).
			Msg("record failed to load")

		m.state = ViewStateError
		m.err = msg.err
		return m, m.schedule(m.errorDisplay, recoverMsg{epoch: m.epoch})
	}

	m.record = msg.record
	m.state = ViewStateDisplay
	effects := m.session.Commit(msg.record)
	dex.PersistCurrentID(m.ctx, m.store, msg.record.ID)

	for _, e := range effects {
		if e.Kind == dex.EffectCongrats {
			log.Info().
				Ctx(m.ctx).
				Str("component", "tui").
				Int("id", msg.record.ID).
				Msg(e.Message)
		}
	}
	return m, m.applyEffects(effects)
}

// applyEffects activates effects and schedules their expiry.
func (m DexModel) applyEffects(effects []dex.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		m.effects[e.Kind] = e
		cmds = append(cmds, m.schedule(e.Duration, effectExpiredMsg{epoch: m.epoch, kind: e.Kind}))
	}
	return tea.Batch(cmds...)
}

func (m DexModel) enterAnomaly() (tea.Model, tea.Cmd) {
	if m.state == ViewStateLoading {
		return m, nil
	}
	m.epoch++
	m.state = ViewStateAnomaly
	m.err = nil
	clear(m.effects)
	return m, m.schedule(m.anomalyDisplay, recoverMsg{epoch: m.epoch})
}

// handleRecover returns from the error or anomaly screen to the last record
// that displayed successfully. The failed target is abandoned.
func (m DexModel) handleRecover(msg recoverMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.epoch {
		return m, nil
	}
	if m.state != ViewStateError && m.state != ViewStateAnomaly {
		return m, nil
	}
	id := dex.ClampID(m.session.CurrentID, m.resolver.MaxID(), 1)
	return m.startLoad(strconv.Itoa(id))
}

// State returns the current screen.
func (m DexModel) State() ViewState {
	return m.state
}

// Record returns the record on screen, or nil before the first load.
func (m DexModel) Record() *dex.Record {
	return m.record
}

// Session exposes the navigation session.
func (m DexModel) Session() *dex.Session {
	return m.session
}

// ActiveEffect reports whether an effect of kind is showing.
func (m DexModel) ActiveEffect(kind dex.EffectKind) bool {
	_, ok := m.effects[kind]
	return ok
}
