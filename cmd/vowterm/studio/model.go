// Package studio is the vowterm terminal application: a builder form for one
// wedding invitation and a themed guest preview, driven by a single shared
// model. The shell owns the mode flag and hands the record to whichever view
// is active; the guest view is rebuilt from scratch on every launch so its
// reveal sequence always starts locked.
package studio

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vowterm/cmd/vowterm/ui"
	"vowterm/internal/audio"
	"vowterm/internal/concierge"
	"vowterm/internal/invitation"
	"vowterm/internal/logging"
)

// ViewMode selects the active view.
type ViewMode int

const (
	BuilderMode ViewMode = iota
	GuestMode
)

// Config wires the studio's collaborators. A nil Client degrades every
// generation call to its fallback string; a nil Player becomes silent.
type Config struct {
	Invitation invitation.Invitation
	Client     concierge.Client
	Player     audio.Player
	Volume     float64
}

// Model is the application shell.
type Model struct {
	mode    ViewMode
	builder builderModel
	guest   guestModel
	seq     int // guest view generation counter

	cfg    Config
	width  int
	height int

	ctx      context.Context
	cancel   context.CancelFunc
	quitOnce *sync.Once
}

// NewModel builds the shell in builder mode.
func NewModel(cfg Config) Model {
	if cfg.Player == nil {
		cfg.Player = &audio.Nop{}
	}
	if cfg.Volume <= 0 {
		cfg.Volume = audio.DefaultVolume
	}
	if !cfg.Invitation.Theme.Valid() {
		cfg.Invitation = cfg.Invitation.WithTheme(invitation.ThemeCyberpunk)
	}

	ctx, cancel := context.WithCancel(context.Background())
	styles := ui.NewStyles(ui.ThemeFor(cfg.Invitation.Theme))

	return Model{
		mode:     BuilderMode,
		builder:  newBuilderModel(ctx, cfg.Invitation, cfg.Client, styles),
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		quitOnce: &sync.Once{},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// shutdown releases the audio process and cancels outstanding calls. Safe to
// run more than once.
func (m *Model) shutdown() {
	m.quitOnce.Do(func() {
		if m.mode == GuestMode {
			m.guest.teardown()
		} else {
			_ = m.cfg.Player.Stop()
		}
		m.cancel()
		logging.Boot("studio shut down")
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.builder.width, m.builder.height = msg.Width, msg.Height
		m.guest.width, m.guest.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		}

		if m.mode == BuilderMode {
			if msg.String() == "ctrl+l" {
				return m.launch()
			}
			var cmd tea.Cmd
			m.builder, cmd = m.builder.Update(msg)
			return m, cmd
		}

		if msg.String() == "e" && !m.guest.capturingText() && m.guest.reveal == revealOpen {
			return m.backToBuilder()
		}
		var cmd tea.Cmd
		m.guest, cmd = m.guest.Update(msg)
		return m, cmd

	// Builder-bound messages survive mode switches: a narrative that finishes
	// while previewing still lands in the shared record.
	case narrativeMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.builder, cmd = m.builder.Update(msg)
		if m.mode == GuestMode {
			m.guest.inv = m.guest.inv.WithStoryNarrative(m.builder.inv.StoryNarrative)
		}
		return m, cmd

	// Guest-bound messages are dropped outside guest mode, which also ends
	// their tick chains.
	case revealOpenMsg, staggerTickMsg, countdownTickMsg, conciergeMsg, rsvpResetMsg, copiedResetMsg:
		if m.mode != GuestMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.guest, cmd = m.guest.Update(msg)
		return m, cmd
	}

	return m, nil
}

// launch switches to a fresh guest view over the current record.
func (m Model) launch() (tea.Model, tea.Cmd) {
	m.seq++
	m.guest = newGuestModel(m.ctx, m.builder.inv, m.cfg.Client, m.cfg.Player, m.cfg.Volume, m.seq)
	m.guest.width, m.guest.height = m.width, m.height
	m.mode = GuestMode
	logging.UI("launched guest view (seq %d)", m.seq)
	return m, nil
}

// backToBuilder tears the guest view down and returns to editing. Theme
// changes made while previewing carry back into the builder.
func (m Model) backToBuilder() (tea.Model, tea.Cmd) {
	m.guest.teardown()
	m.builder.inv = m.builder.inv.WithTheme(m.guest.inv.Theme)
	m.builder.styles = ui.NewStyles(ui.ThemeFor(m.builder.inv.Theme))
	m.mode = BuilderMode
	logging.UI("returned to builder")
	return m, nil
}

func (m Model) View() string {
	if m.mode == GuestMode {
		return m.guest.View()
	}
	return m.builder.View()
}

// Run starts the interactive program.
func Run(cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
