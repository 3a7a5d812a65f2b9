// Package ui provides the visual styling for the vowterm terminal views.
// Three built-in themes mirror the invitation presets; every view renders
// through a Styles bundle so switching themes restyles the whole screen.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vowterm/internal/invitation"
)

// Theme holds the color scheme, sound, and reveal pacing for one invitation
// preset.
type Theme struct {
	ID    invitation.Theme
	Label string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentBg   lipgloss.Color
	Border     lipgloss.Color

	BorderStyle lipgloss.Border

	// Envelope gate prompt shown while the invitation is sealed
	EnvelopeHint string

	// RevealDelay is how long the envelope animation runs; Stagger is the
	// per-item delay for the schedule fade-in once the page is open.
	RevealDelay time.Duration
	Stagger     time.Duration

	// Soundtrack streamed while the invitation is open
	AudioURL string
}

// CyberpunkTheme is the "Neon Future" preset.
func CyberpunkTheme() Theme {
	return Theme{
		ID:           invitation.ThemeCyberpunk,
		Label:        "Neon Future",
		Background:   lipgloss.Color("#020617"),
		Foreground:   lipgloss.Color("#f8fafc"),
		Muted:        lipgloss.Color("#94a3b8"),
		Accent:       lipgloss.Color("#22d3ee"),
		AccentBg:     lipgloss.Color("#06b6d4"),
		Border:       lipgloss.Color("#334155"),
		BorderStyle:  lipgloss.ThickBorder(),
		EnvelopeHint: "press enter to jack in",
		RevealDelay:  1500 * time.Millisecond,
		Stagger:      150 * time.Millisecond,
		AudioURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-10.mp3",
	}
}

// EtherealTheme is the "Botanical Dream" preset.
func EtherealTheme() Theme {
	return Theme{
		ID:           invitation.ThemeEthereal,
		Label:        "Botanical Dream",
		Background:   lipgloss.Color("#fafaf9"),
		Foreground:   lipgloss.Color("#292524"),
		Muted:        lipgloss.Color("#78716c"),
		Accent:       lipgloss.Color("#059669"),
		AccentBg:     lipgloss.Color("#047857"),
		Border:       lipgloss.Color("#e7e5e4"),
		BorderStyle:  lipgloss.RoundedBorder(),
		EnvelopeHint: "press enter to unseal",
		RevealDelay:  1500 * time.Millisecond,
		Stagger:      250 * time.Millisecond,
		AudioURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
	}
}

// MinimalistTheme is the "Swiss Modern" preset.
func MinimalistTheme() Theme {
	return Theme{
		ID:           invitation.ThemeMinimalist,
		Label:        "Swiss Modern",
		Background:   lipgloss.Color("#ffffff"),
		Foreground:   lipgloss.Color("#000000"),
		Muted:        lipgloss.Color("#6b7280"),
		Accent:       lipgloss.Color("#000000"),
		AccentBg:     lipgloss.Color("#000000"),
		Border:       lipgloss.Color("#000000"),
		BorderStyle:  lipgloss.NormalBorder(),
		EnvelopeHint: "press enter to open",
		RevealDelay:  1200 * time.Millisecond,
		Stagger:      100 * time.Millisecond,
		AudioURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
	}
}

// ThemeFor returns the preset for an invitation theme. The set is closed and
// callers only pass validated ids; an unknown value is a programmer error.
func ThemeFor(id invitation.Theme) Theme {
	switch id {
	case invitation.ThemeCyberpunk:
		return CyberpunkTheme()
	case invitation.ThemeEthereal:
		return EtherealTheme()
	case invitation.ThemeMinimalist:
		return MinimalistTheme()
	}
	panic(fmt.Sprintf("ui: unknown theme %q", id))
}

// Styles holds all the styled components for one theme.
type Styles struct {
	Theme Theme

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Prompt        lipgloss.Style
	UserInput     lipgloss.Style
	AuraResponse  lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldActive   lipgloss.Style
	FieldInactive lipgloss.Style

	// Buttons
	Button          lipgloss.Style
	ButtonSecondary lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner  lipgloss.Style
	Badge    lipgloss.Style
	Divider  lipgloss.Style
	StatCard lipgloss.Style
	Modal    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(theme.BorderStyle).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		AuraResponse: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(14),

		FieldActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		FieldInactive: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Button: lipgloss.NewStyle().
			Background(theme.AccentBg).
			Foreground(theme.Background).
			Padding(0, 2).
			Bold(true),

		ButtonSecondary: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(theme.BorderStyle).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107")).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2196F3")),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Badge: lipgloss.NewStyle().
			Background(theme.AccentBg).
			Foreground(theme.Background).
			Padding(0, 1).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		StatCard: lipgloss.NewStyle().
			Border(theme.BorderStyle).
			BorderForeground(theme.Border).
			Padding(0, 2).
			Align(lipgloss.Center),

		Modal: lipgloss.NewStyle().
			Border(theme.BorderStyle).
			BorderForeground(theme.Accent).
			Padding(1, 3),
	}
}

// DefaultStyles returns styles for the cyberpunk preset.
func DefaultStyles() Styles {
	return NewStyles(CyberpunkTheme())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
