package studio

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vowterm/internal/concierge"
	"vowterm/internal/invitation"
)

// Fixed delays for the timed transitions. The envelope delay and reveal
// stagger come from the theme; the RSVP reset waits for the modal close
// animation before wiping the form.
const (
	rsvpResetDelay   = 500 * time.Millisecond
	copiedResetDelay = 2 * time.Second
	volumeSettle     = 250 * time.Millisecond
)

// Every timed or asynchronous message carries the sequence number of the view
// generation that scheduled it. A view bump (remount, mode switch) increments
// the sequence, so stale messages land as silent no-ops.

// revealOpenMsg fires when the envelope animation finishes.
type revealOpenMsg struct {
	seq int
}

// staggerTickMsg fades in one more schedule row on the open page. Purely
// cosmetic sequencing.
type staggerTickMsg struct {
	seq int
}

// countdownTickMsg drives the once-a-second countdown refresh.
type countdownTickMsg struct {
	seq int
	now time.Time
}

// narrativeMsg carries the generated (or fallback) love story.
type narrativeMsg struct {
	seq  int
	text string
}

// conciergeMsg carries AURA's reply to a guest question.
type conciergeMsg struct {
	seq  int
	text string
}

// rsvpResetMsg clears the RSVP form after the modal has closed.
type rsvpResetMsg struct {
	seq int
}

// copiedResetMsg hides the "link copied" flash.
type copiedResetMsg struct {
	seq int
}

func revealCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealOpenMsg{seq: seq}
	})
}

func staggerCmd(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return staggerTickMsg{seq: seq}
	})
}

func countdownTick(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg{seq: seq, now: t}
	})
}

func rsvpResetCmd(seq int) tea.Cmd {
	return tea.Tick(rsvpResetDelay, func(time.Time) tea.Msg {
		return rsvpResetMsg{seq: seq}
	})
}

func copiedResetCmd(seq int) tea.Cmd {
	return tea.Tick(copiedResetDelay, func(time.Time) tea.Msg {
		return copiedResetMsg{seq: seq}
	})
}

// generateNarrativeCmd asks the concierge for the love story. The result is
// always a usable string; failures collapse to the fallback inside the
// concierge package.
func generateNarrativeCmd(ctx context.Context, client concierge.Client, inv invitation.Invitation, seq int) tea.Cmd {
	return func() tea.Msg {
		text := concierge.Narrative(ctx, client, inv.Partner1, inv.Partner2, inv.StoryPoints)
		return narrativeMsg{seq: seq, text: text}
	}
}

// askAuraCmd sends a guest question with the prior turns as context.
func askAuraCmd(ctx context.Context, client concierge.Client, history []concierge.Turn, question string, inv invitation.Invitation, seq int) tea.Cmd {
	return func() tea.Msg {
		text := concierge.Reply(ctx, client, history, question, inv)
		return conciergeMsg{seq: seq, text: text}
	}
}
