package studio

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vowterm/cmd/vowterm/ui"
	"vowterm/internal/concierge"
	"vowterm/internal/invitation"
)

// fakePlayer records every Play call so tests can assert the active source.
type fakePlayer struct {
	mu      sync.Mutex
	plays   []string
	active  string
	playing bool
	failAll bool
}

func (f *fakePlayer) Play(track string, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("player broken")
	}
	f.plays = append(f.plays, track)
	f.active = track
	f.playing = true
	return nil
}

func (f *fakePlayer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = ""
	f.playing = false
	return nil
}

func (f *fakePlayer) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakePlayer) Track() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// stubClient counts calls and returns a scripted reply.
type stubClient struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (s *stubClient) GenerateNarrative(ctx context.Context, p1, p2, points string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) AnswerGuestQuestion(ctx context.Context, history []concierge.Turn, question string, inv invitation.Invitation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeInto[M any](t *testing.T, m M, update func(M, tea.Msg) (M, tea.Cmd), text string) M {
	t.Helper()
	for _, r := range text {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func typeGuest(t *testing.T, g guestModel, text string) guestModel {
	return typeInto(t, g, func(g guestModel, msg tea.Msg) (guestModel, tea.Cmd) {
		return g.Update(msg)
	}, text)
}

// runBatch executes a command tree and returns the async result message,
// skipping cosmetic ticks like the spinner's.
func runBatch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch m := c().(type) {
		case narrativeMsg:
			return m
		case conciergeMsg:
			return m
		}
	}
	t.Fatal("no async result message in batch")
	return nil
}

func testStyles() ui.Styles {
	return ui.DefaultStyles()
}

func newTestBuilder(client concierge.Client) builderModel {
	return newBuilderModel(context.Background(), invitation.Default(), client, testStyles())
}

func newTestGuest(client concierge.Client, player *fakePlayer) guestModel {
	return newGuestModel(context.Background(), invitation.Default(), client, player, 0.4, 1)
}
