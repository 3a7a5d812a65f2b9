package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"vowterm/cmd/vowterm/ui"
	"vowterm/internal/audio"
	"vowterm/internal/concierge"
	"vowterm/internal/invitation"
	"vowterm/internal/logging"
	"vowterm/internal/share"
)

// revealState is the envelope gate: LOCKED until the guest acts, REVEALING
// while the opening animation runs, OPEN for the rest of the session. OPEN is
// terminal; going back to the builder tears the whole guest model down.
type revealState int

const (
	revealLocked revealState = iota
	revealRevealing
	revealOpen
)

// rsvpState tracks the RSVP modal.
type rsvpState int

const (
	rsvpClosed rsvpState = iota
	rsvpForm
	rsvpSubmitted
)

// attendance is the guest's choice; attendNone means "not chosen yet".
type attendance int

const (
	attendNone attendance = iota
	attendYes
	attendNo
)

const (
	rsvpFocusName = iota
	rsvpFocusCount
	rsvpFocusChoice
)

// guestModel renders the invitation read-only and hosts the reveal sequence,
// soundtrack, RSVP modal, share overlay, and the AURA chat panel.
type guestModel struct {
	inv    invitation.Invitation
	theme  ui.Theme
	styles ui.Styles

	reveal    revealState
	seq       int // view generation; bumped on every remount
	staggered int // schedule rows faded in so far
	countdown invitation.Countdown

	player   audio.Player
	volume   float64
	musicOn  bool
	volDeb   *ui.Debouncer
	inviteID string

	// RSVP modal
	rsvp       rsvpState
	rsvpFocus  int
	nameInput  textinput.Model
	guestCount int
	choice     attendance
	confirmID  string

	// Share overlay
	shareOpen bool
	copied    bool

	// Chat panel
	chatOpen  bool
	chatInput textinput.Model
	history   []concierge.Turn
	typing    bool
	renderer  *glamour.TermRenderer

	width  int
	height int

	ctx    context.Context
	client concierge.Client
}

func newGuestModel(ctx context.Context, inv invitation.Invitation, client concierge.Client, player audio.Player, volume float64, seq int) guestModel {
	theme := ui.ThemeFor(inv.Theme)

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 80

	chat := textinput.New()
	chat.Placeholder = "Ask AURA anything..."
	chat.CharLimit = 300

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return guestModel{
		inv:        inv,
		theme:      theme,
		styles:     ui.NewStyles(theme),
		reveal:     revealLocked,
		seq:        seq,
		countdown:  invitation.Until(inv.Date, time.Now()),
		player:     player,
		volume:     volume,
		volDeb:     ui.NewDebouncer(volumeSettle),
		inviteID:   uuid.NewString(),
		nameInput:  name,
		guestCount: 1,
		chatInput:  chat,
		history:    []concierge.Turn{{Role: "model", Text: concierge.Greeting, At: time.Now()}},
		renderer:   renderer,
		ctx:        ctx,
		client:     client,
	}
}

// inviteLink is the shareable URL for this invitation.
func (g guestModel) inviteLink() string {
	return "https://vowterm.app/i/" + g.inviteID
}

// capturingText reports whether keystrokes currently belong to a text field,
// so the shell leaves plain letters alone.
func (g guestModel) capturingText() bool {
	if g.chatOpen {
		return true
	}
	return g.rsvp == rsvpForm && g.rsvpFocus == rsvpFocusName
}

// teardown cancels pending playback and timers when leaving the guest view.
// Timed messages already in flight are dropped by the caller's seq bump.
func (g *guestModel) teardown() {
	g.volDeb.Cancel()
	if err := g.player.Stop(); err != nil {
		logging.AudioError("stop on teardown: %v", err)
	}
	g.musicOn = false
}

func (g guestModel) Update(msg tea.Msg) (guestModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return g.handleKey(msg)

	case revealOpenMsg:
		if msg.seq != g.seq || g.reveal != revealRevealing {
			return g, nil
		}
		g.reveal = revealOpen
		logging.UI("invitation revealed")
		if len(g.inv.Schedule) > 0 {
			return g, staggerCmd(g.seq, g.theme.Stagger)
		}
		return g, nil

	case staggerTickMsg:
		if msg.seq != g.seq || g.reveal != revealOpen {
			return g, nil
		}
		g.staggered++
		if g.staggered < len(g.inv.Schedule) {
			return g, staggerCmd(g.seq, g.theme.Stagger)
		}
		return g, nil

	case countdownTickMsg:
		if msg.seq != g.seq {
			return g, nil
		}
		g.countdown = invitation.Until(g.inv.Date, msg.now)
		return g, countdownTick(g.seq)

	case conciergeMsg:
		if msg.seq != g.seq || !g.typing {
			return g, nil
		}
		g.typing = false
		g.history = append(g.history, concierge.Turn{Role: "model", Text: msg.text, At: time.Now()})
		return g, nil

	case rsvpResetMsg:
		if msg.seq != g.seq || g.rsvp != rsvpClosed {
			return g, nil
		}
		g.clearRSVPForm()
		return g, nil

	case copiedResetMsg:
		if msg.seq != g.seq {
			return g, nil
		}
		g.copied = false
		return g, nil
	}

	return g, nil
}

func (g guestModel) handleKey(msg tea.KeyMsg) (guestModel, tea.Cmd) {
	if g.reveal == revealLocked {
		switch msg.String() {
		case "enter", " ":
			return g.openEnvelope()
		}
		return g, nil
	}

	if g.rsvp != rsvpClosed {
		return g.handleRSVPKey(msg)
	}
	if g.shareOpen {
		return g.handleShareKey(msg)
	}
	if g.chatOpen {
		return g.handleChatKey(msg)
	}

	switch msg.String() {
	case "r":
		if g.reveal == revealOpen {
			g.rsvp = rsvpForm
			g.rsvpFocus = rsvpFocusName
			g.nameInput.Focus()
			return g, textinput.Blink
		}
	case "c":
		if g.reveal == revealOpen {
			g.chatOpen = true
			g.chatInput.Focus()
			return g, textinput.Blink
		}
	case "s":
		if g.reveal == revealOpen {
			g.shareOpen = true
			logging.Share("share overlay opened for %s", g.inviteLink())
		}
	case "m":
		return g.toggleMusic(), nil
	case "+", "=":
		return g.adjustVolume(0.1), nil
	case "-", "_":
		return g.adjustVolume(-0.1), nil
	case "t":
		return g.cycleTheme(), nil
	}

	return g, nil
}

// openEnvelope is the single user gesture that starts both the soundtrack and
// the reveal. Playback failure is logged and otherwise ignored; it must never
// block the transition.
func (g guestModel) openEnvelope() (guestModel, tea.Cmd) {
	if err := g.player.Play(g.theme.AudioURL, g.volume); err != nil {
		logging.AudioError("soundtrack autostart: %v", err)
	} else {
		g.musicOn = true
	}

	g.reveal = revealRevealing
	logging.UI("envelope opened, revealing")
	return g, tea.Batch(revealCmd(g.seq, g.theme.RevealDelay), countdownTick(g.seq))
}

func (g guestModel) toggleMusic() guestModel {
	if g.musicOn {
		if err := g.player.Stop(); err != nil {
			logging.AudioError("pause: %v", err)
		}
		g.musicOn = false
		return g
	}
	if err := g.player.Play(g.theme.AudioURL, g.volume); err != nil {
		logging.AudioError("resume: %v", err)
		return g
	}
	g.musicOn = true
	return g
}

// adjustVolume changes the level immediately in the UI and restarts the
// player once the taps settle.
func (g guestModel) adjustVolume(delta float64) guestModel {
	g.volume += delta
	if g.volume < 0 {
		g.volume = 0
	}
	if g.volume > 1 {
		g.volume = 1
	}

	if g.musicOn {
		player, track, vol := g.player, g.theme.AudioURL, g.volume
		g.volDeb.Debounce(func() {
			if err := player.Play(track, vol); err != nil {
				logging.AudioError("volume restart: %v", err)
			}
		})
	}
	return g
}

// cycleTheme advances to the next preset and swaps the soundtrack with it.
// The old player process dies before the new track starts, so two sources
// never overlap.
func (g guestModel) cycleTheme() guestModel {
	g.inv = g.inv.WithTheme(g.inv.Theme.Next())
	g.theme = ui.ThemeFor(g.inv.Theme)
	g.styles = ui.NewStyles(g.theme)
	logging.UI("theme switched to %s", g.theme.ID)

	if g.musicOn {
		if err := g.player.Play(g.theme.AudioURL, g.volume); err != nil {
			logging.AudioError("theme track swap: %v", err)
			g.musicOn = false
		}
	}
	return g
}

func (g guestModel) handleRSVPKey(msg tea.KeyMsg) (guestModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		wasSubmitted := g.rsvp == rsvpSubmitted
		g.rsvp = rsvpClosed
		g.nameInput.Blur()
		if wasSubmitted {
			// The form clears after the close animation, not during it.
			return g, rsvpResetCmd(g.seq)
		}
		return g, nil
	}

	if g.rsvp == rsvpSubmitted {
		return g, nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		g.rsvpFocus = (g.rsvpFocus + 1) % 3
		if g.rsvpFocus == rsvpFocusName {
			g.nameInput.Focus()
			return g, textinput.Blink
		}
		g.nameInput.Blur()
		return g, nil
	case "enter":
		return g.submitRSVP(), nil
	}

	switch g.rsvpFocus {
	case rsvpFocusName:
		var cmd tea.Cmd
		g.nameInput, cmd = g.nameInput.Update(msg)
		return g, cmd
	case rsvpFocusCount:
		switch msg.String() {
		case "left", "-":
			if g.guestCount > 1 {
				g.guestCount--
			}
		case "right", "+":
			if g.guestCount < g.inv.MaxGuests {
				g.guestCount++
			}
		}
	case rsvpFocusChoice:
		switch msg.String() {
		case "left", "y":
			g.choice = attendYes
		case "right", "n":
			g.choice = attendNo
		}
	}

	return g, nil
}

// submitRSVP validates and either transitions to SUBMITTED or stays on the
// form. Missing name or attendance keeps the state unchanged.
func (g guestModel) submitRSVP() guestModel {
	name := strings.TrimSpace(g.nameInput.Value())
	if name == "" || g.choice == attendNone {
		return g
	}

	g.rsvp = rsvpSubmitted
	g.confirmID = strings.ToUpper(uuid.NewString()[:8])
	verb := "attending"
	if g.choice == attendNo {
		verb = "declining"
	}
	logging.RSVP("%s (%d guests) %s, confirmation %s", name, g.guestCount, verb, g.confirmID)
	return g
}

func (g *guestModel) clearRSVPForm() {
	g.nameInput.SetValue("")
	g.guestCount = 1
	g.choice = attendNone
	g.rsvpFocus = rsvpFocusName
	g.confirmID = ""
}

func (g guestModel) handleShareKey(msg tea.KeyMsg) (guestModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "s":
		g.shareOpen = false
		return g, nil
	case "y":
		g.copied = true
		logging.Share("invite link flagged for copy: %s", g.inviteLink())
		return g, copiedResetCmd(g.seq)
	}
	return g, nil
}

func (g guestModel) handleChatKey(msg tea.KeyMsg) (guestModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		g.chatOpen = false
		g.chatInput.Blur()
		return g, nil
	case "enter":
		return g.sendChat()
	}

	var cmd tea.Cmd
	g.chatInput, cmd = g.chatInput.Update(msg)
	return g, cmd
}

// sendChat appends the guest's question immediately and asks AURA. One
// outstanding request at a time; sends while typing are dropped.
func (g guestModel) sendChat() (guestModel, tea.Cmd) {
	if g.typing {
		return g, nil
	}
	question := strings.TrimSpace(g.chatInput.Value())
	if question == "" {
		return g, nil
	}

	prior := make([]concierge.Turn, len(g.history))
	copy(prior, g.history)

	g.history = append(g.history, concierge.Turn{Role: "user", Text: question, At: time.Now()})
	g.chatInput.SetValue("")
	g.typing = true

	return g, askAuraCmd(g.ctx, g.client, prior, question, g.inv, g.seq)
}

// --- rendering ---

func (g guestModel) View() string {
	switch g.reveal {
	case revealLocked:
		return g.renderEnvelope()
	case revealRevealing:
		return g.renderRevealing()
	}

	if g.rsvp != rsvpClosed {
		return g.renderRSVPModal()
	}
	if g.shareOpen {
		return g.renderShareOverlay()
	}

	return g.renderOpen()
}

func (g guestModel) renderEnvelope() string {
	initials := initialsOf(g.inv.Partner1) + " ♥ " + initialsOf(g.inv.Partner2)
	card := g.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Center,
		g.styles.Title.Render("You are invited"),
		g.styles.Bold.Render(initials),
		"",
		g.styles.Muted.Render(g.theme.EnvelopeHint),
	))
	return g.center(card)
}

func (g guestModel) renderRevealing() string {
	return g.center(g.styles.Subtitle.Render("unsealing..."))
}

func (g guestModel) renderOpen() string {
	var sb strings.Builder

	sb.WriteString(g.styles.Badge.Render(g.theme.Label))
	sb.WriteString("\n\n")
	sb.WriteString(g.styles.Title.Render(g.inv.Partner1 + " & " + g.inv.Partner2))
	sb.WriteString("\n")
	sb.WriteString(g.styles.Body.Render(g.inv.Date) + "  " + g.styles.Prompt.Render(g.renderCountdown()))
	sb.WriteString("\n")
	sb.WriteString(g.styles.Muted.Render(g.inv.VenueName + ", " + g.inv.Location))
	sb.WriteString("\n")
	sb.WriteString(g.styles.Muted.Render(share.MapURL(g.inv)))
	sb.WriteString("\n\n")

	if g.inv.StoryNarrative != "" {
		sb.WriteString(g.styles.Subtitle.Render("Our story"))
		sb.WriteString("\n")
		sb.WriteString(g.safeRenderMarkdown(g.inv.StoryNarrative))
		sb.WriteString("\n")
	}

	sb.WriteString(g.styles.Subtitle.Render("The day"))
	sb.WriteString("\n")
	for i, item := range g.inv.Schedule {
		if i >= g.staggered {
			// Rows past the fade-in front are still invisible.
			break
		}
		sb.WriteString("  " + g.styles.Bold.Render(item.Time) + "  " + g.styles.Body.Render(item.Event))
		if item.Description != "" {
			sb.WriteString("  " + g.styles.Muted.Render(item.Description))
		}
		sb.WriteString("\n")
	}

	if g.inv.HasStats() {
		sb.WriteString("\n")
		sb.WriteString(g.renderStats())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(g.renderMusicLine())
	sb.WriteString("\n")

	if g.chatOpen {
		sb.WriteString("\n")
		sb.WriteString(g.renderChat())
	}

	sb.WriteString("\n")
	sb.WriteString(g.styles.Footer.Render(guestHelp))

	return sb.String()
}

const guestHelp = "r rsvp · c concierge · s share · m music · +/- volume · t theme · e edit · ctrl+c quit"

func (g guestModel) renderCountdown() string {
	c := g.countdown
	return fmt.Sprintf("T-%dd %02dh %02dm %02ds", c.Days, c.Hours, c.Minutes, c.Seconds)
}

func (g guestModel) renderStats() string {
	cards := make([]string, 0, 3)
	add := func(value *int, label string) {
		if value == nil {
			return
		}
		cards = append(cards, g.styles.StatCard.Render(
			g.styles.Bold.Render(fmt.Sprint(*value))+"\n"+g.styles.Muted.Render(label),
		))
	}
	add(g.inv.Stats.DaysTogether, "days together")
	add(g.inv.Stats.MilesTraveled, "miles traveled")
	add(g.inv.Stats.CoffeesShared, "coffees shared")
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (g guestModel) renderMusicLine() string {
	state := "paused"
	if g.musicOn {
		state = "playing"
	}
	return g.styles.Muted.Render(fmt.Sprintf("♪ soundtrack %s · volume %d%%", state, int(g.volume*100)))
}

func (g guestModel) renderChat() string {
	var sb strings.Builder
	sb.WriteString(g.styles.Subtitle.Render("AURA concierge"))
	sb.WriteString("\n")

	for _, turn := range g.history {
		if turn.Role == "user" {
			sb.WriteString(g.styles.Bold.Render("You") + "\n")
			sb.WriteString(g.styles.UserInput.Render(turn.Text))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(g.styles.Prompt.Render("AURA") + "\n")
		sb.WriteString(g.styles.AuraResponse.Render(g.safeRenderMarkdown(turn.Text)))
		sb.WriteString("\n")
	}

	if g.typing {
		sb.WriteString(g.styles.Muted.Render("AURA is typing..."))
		sb.WriteString("\n")
	}

	sb.WriteString(g.chatInput.View())
	return g.styles.Panel.Render(sb.String())
}

func (g guestModel) renderRSVPModal() string {
	if g.rsvp == rsvpSubmitted {
		verb := "See you there!"
		if g.choice == attendNo {
			verb = "You will be missed."
		}
		card := g.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Center,
			g.styles.Success.Render("RSVP received"),
			g.styles.Body.Render(verb),
			g.styles.Muted.Render("confirmation "+g.confirmID),
			"",
			g.styles.Muted.Render("esc to close"),
		))
		return g.center(card)
	}

	focusMark := func(f int) string {
		if g.rsvpFocus == f {
			return g.styles.Prompt.Render("> ")
		}
		return "  "
	}

	choiceLine := "attending / declining"
	switch g.choice {
	case attendYes:
		choiceLine = g.styles.Success.Render("attending") + " / declining"
	case attendNo:
		choiceLine = "attending / " + g.styles.Error.Render("declining")
	}

	card := g.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		g.styles.Title.Render("RSVP"),
		focusMark(rsvpFocusName)+g.nameInput.View(),
		focusMark(rsvpFocusCount)+g.styles.Body.Render(fmt.Sprintf("Guests: %d (max %d)", g.guestCount, g.inv.MaxGuests)),
		focusMark(rsvpFocusChoice)+choiceLine,
		"",
		g.styles.Muted.Render("tab next · enter submit · esc close"),
	))
	return g.center(card)
}

func (g guestModel) renderShareOverlay() string {
	link := g.inviteLink()
	copied := ""
	if g.copied {
		copied = g.styles.Success.Render("  copied!")
	}

	card := g.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		g.styles.Title.Render("Share the news"),
		g.styles.Body.Render(link)+copied,
		"",
		g.styles.Muted.Render("Twitter   ")+g.styles.Body.Render(share.TwitterURL(link, g.inv)),
		g.styles.Muted.Render("Facebook  ")+g.styles.Body.Render(share.FacebookURL(link)),
		g.styles.Muted.Render("WhatsApp  ")+g.styles.Body.Render(share.WhatsAppURL(link, g.inv)),
		"",
		g.styles.Muted.Render("y copy link · esc close"),
	))
	return g.center(card)
}

func (g guestModel) center(content string) string {
	if g.width <= 0 || g.height <= 0 {
		return content
	}
	return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, content)
}

func (g guestModel) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if g.renderer != nil && content != "" {
		if rendered, err := g.renderer.Render(content); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return content
}

func initialsOf(name string) string {
	parts := strings.Fields(name)
	var sb strings.Builder
	for _, p := range parts {
		r := []rune(p)
		sb.WriteRune(r[0])
	}
	if sb.Len() == 0 {
		return "?"
	}
	return strings.ToUpper(sb.String())
}
