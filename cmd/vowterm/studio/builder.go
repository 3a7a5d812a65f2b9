package studio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vowterm/cmd/vowterm/ui"
	"vowterm/internal/concierge"
	"vowterm/internal/invitation"
	"vowterm/internal/logging"
)

// builderField indexes the fixed form rows. Schedule rows follow after
// fieldScheduleBase, one slot per item.
type builderField int

const (
	fieldPartner1 builderField = iota
	fieldPartner2
	fieldDate
	fieldLocation
	fieldVenue
	fieldMaxGuests
	fieldDaysTogether
	fieldMilesTraveled
	fieldCoffeesShared
	fieldStoryPoints
	fieldScheduleBase
)

var fieldLabels = map[builderField]string{
	fieldPartner1:      "Partner 1",
	fieldPartner2:      "Partner 2",
	fieldDate:          "Date",
	fieldLocation:      "Location",
	fieldVenue:         "Venue",
	fieldMaxGuests:     "Max guests",
	fieldDaysTogether:  "Days together",
	fieldMilesTraveled: "Miles traveled",
	fieldCoffeesShared: "Coffees shared",
	fieldStoryPoints:   "Story points",
}

// builderModel edits the invitation. Every committed edit replaces the whole
// record through the copy-on-write setters; there is no draft buffer, so
// escape during editing is the only "cancel".
type builderModel struct {
	inv    invitation.Invitation
	styles ui.Styles

	focus     int
	subField  invitation.ScheduleField
	editing   bool
	input     textinput.Model
	points    textarea.Model
	editingTA bool

	spin       spinner.Model
	generating bool
	genSeq     int

	status string
	width  int
	height int

	ctx    context.Context
	client concierge.Client
}

func newBuilderModel(ctx context.Context, inv invitation.Invitation, client concierge.Client, styles ui.Styles) builderModel {
	in := textinput.New()
	in.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "How you met, first trip, the proposal..."
	ta.SetHeight(3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return builderModel{
		inv:    inv,
		styles: styles,
		input:  in,
		points: ta,
		spin:   sp,
		ctx:    ctx,
		client: client,
	}
}

func (b builderModel) fieldCount() int {
	return int(fieldScheduleBase) + len(b.inv.Schedule)
}

func (b builderModel) focusedField() builderField {
	return builderField(b.focus)
}

func (b builderModel) onScheduleRow() bool {
	return b.focus >= int(fieldScheduleBase)
}

func (b builderModel) scheduleIndex() int {
	return b.focus - int(fieldScheduleBase)
}

func (b builderModel) Update(msg tea.Msg) (builderModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if b.editing {
			return b.updateEditing(msg)
		}
		return b.updateNavigation(msg)

	case narrativeMsg:
		if msg.seq != b.genSeq || !b.generating {
			// A stale response from an abandoned generation; drop it.
			return b, nil
		}
		b.generating = false
		b.inv = b.inv.WithStoryNarrative(msg.text)
		b.status = "Narrative updated"
		return b, nil

	case spinner.TickMsg:
		if !b.generating {
			return b, nil
		}
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b builderModel) updateNavigation(msg tea.KeyMsg) (builderModel, tea.Cmd) {
	b.status = ""

	switch msg.String() {
	case "up", "k":
		if b.focus > 0 {
			b.focus--
		}
	case "down", "j":
		if b.focus < b.fieldCount()-1 {
			b.focus++
		}
	case "left", "right":
		if b.onScheduleRow() {
			b.subField = cycleScheduleField(b.subField, msg.String() == "right")
		}
	case "enter":
		return b.startEditing()
	case "a":
		b.inv = b.inv.AppendScheduleItem()
		b.focus = b.fieldCount() - 1
		b.subField = invitation.ScheduleTime
		b.status = "Schedule item added"
	case "d":
		if b.onScheduleRow() {
			b.inv = b.inv.RemoveScheduleItem(b.scheduleIndex())
			if b.focus >= b.fieldCount() {
				b.focus = b.fieldCount() - 1
			}
			b.status = "Schedule item removed"
		}
	case "t":
		b.inv = b.inv.WithTheme(b.inv.Theme.Next())
		b.styles = ui.NewStyles(ui.ThemeFor(b.inv.Theme))
		b.spin.Style = b.styles.Spinner
		b.status = fmt.Sprintf("Theme: %s", b.styles.Theme.Label)
	case "g":
		return b.startGeneration()
	}

	return b, nil
}

// startGeneration kicks off narrative generation. Empty story points or an
// in-flight request make this a no-op; no request is issued either way.
func (b builderModel) startGeneration() (builderModel, tea.Cmd) {
	if b.generating {
		return b, nil
	}
	if strings.TrimSpace(b.inv.StoryPoints) == "" {
		b.status = "Add story points before generating"
		return b, nil
	}

	b.generating = true
	b.genSeq++
	logging.UI("narrative generation started (seq %d)", b.genSeq)
	return b, tea.Batch(
		b.spin.Tick,
		generateNarrativeCmd(b.ctx, b.client, b.inv, b.genSeq),
	)
}

func (b builderModel) startEditing() (builderModel, tea.Cmd) {
	b.editing = true

	if b.focusedField() == fieldStoryPoints {
		b.editingTA = true
		b.points.SetValue(b.inv.StoryPoints)
		b.points.Focus()
		return b, textarea.Blink
	}

	b.editingTA = false
	b.input.SetValue(b.currentValue())
	b.input.CursorEnd()
	b.input.Focus()
	return b, textinput.Blink
}

func (b builderModel) updateEditing(msg tea.KeyMsg) (builderModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		b.editing = false
		b.input.Blur()
		b.points.Blur()
		return b, nil
	case tea.KeyEnter:
		if b.editingTA && msg.Alt {
			// Alt+Enter inserts a newline in the story points editor.
			break
		}
		b.commitEdit()
		b.editing = false
		b.input.Blur()
		b.points.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	if b.editingTA {
		b.points, cmd = b.points.Update(msg)
	} else {
		b.input, cmd = b.input.Update(msg)
	}
	return b, cmd
}

func (b builderModel) currentValue() string {
	if b.onScheduleRow() {
		item := b.inv.Schedule[b.scheduleIndex()]
		switch b.subField {
		case invitation.ScheduleTime:
			return item.Time
		case invitation.ScheduleEvent:
			return item.Event
		case invitation.ScheduleDescription:
			return item.Description
		default:
			return item.Icon
		}
	}

	switch b.focusedField() {
	case fieldPartner1:
		return b.inv.Partner1
	case fieldPartner2:
		return b.inv.Partner2
	case fieldDate:
		return b.inv.Date
	case fieldLocation:
		return b.inv.Location
	case fieldVenue:
		return b.inv.VenueName
	case fieldMaxGuests:
		return strconv.Itoa(b.inv.MaxGuests)
	case fieldDaysTogether:
		return statValue(b.inv.Stats.DaysTogether)
	case fieldMilesTraveled:
		return statValue(b.inv.Stats.MilesTraveled)
	case fieldCoffeesShared:
		return statValue(b.inv.Stats.CoffeesShared)
	}
	return ""
}

// commitEdit applies the edited value through the mutation contract. Each
// branch replaces exactly one field.
func (b *builderModel) commitEdit() {
	if b.editingTA {
		b.inv = b.inv.WithStoryPoints(b.points.Value())
		return
	}

	value := b.input.Value()

	if b.onScheduleRow() {
		b.inv = b.inv.UpdateScheduleItem(b.scheduleIndex(), b.subField, value)
		return
	}

	switch b.focusedField() {
	case fieldPartner1:
		b.inv = b.inv.WithPartner1(value)
	case fieldPartner2:
		b.inv = b.inv.WithPartner2(value)
	case fieldDate:
		b.inv = b.inv.WithDate(value)
	case fieldLocation:
		b.inv = b.inv.WithLocation(value)
	case fieldVenue:
		b.inv = b.inv.WithVenueName(value)
	case fieldMaxGuests:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			b.inv = b.inv.WithMaxGuests(clampGuests(n))
		} else {
			b.status = "Max guests must be a number"
		}
	case fieldDaysTogether:
		b.inv = b.inv.WithDaysTogether(parseStat(value))
	case fieldMilesTraveled:
		b.inv = b.inv.WithMilesTraveled(parseStat(value))
	case fieldCoffeesShared:
		b.inv = b.inv.WithCoffeesShared(parseStat(value))
	}
}

// clampGuests keeps the guest cap inside the 1..10 range the slider allowed.
func clampGuests(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// parseStat maps empty or non-numeric input to "no stat".
func parseStat(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func statValue(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func cycleScheduleField(f invitation.ScheduleField, forward bool) invitation.ScheduleField {
	order := []invitation.ScheduleField{
		invitation.ScheduleTime,
		invitation.ScheduleEvent,
		invitation.ScheduleDescription,
		invitation.ScheduleIcon,
	}
	for i, known := range order {
		if f == known {
			if forward {
				return order[(i+1)%len(order)]
			}
			return order[(i+len(order)-1)%len(order)]
		}
	}
	return order[0]
}

var scheduleFieldNames = map[invitation.ScheduleField]string{
	invitation.ScheduleTime:        "time",
	invitation.ScheduleEvent:       "event",
	invitation.ScheduleDescription: "description",
	invitation.ScheduleIcon:        "icon",
}

func (b builderModel) View() string {
	var sb strings.Builder

	sb.WriteString(b.styles.Title.Render("Invitation Studio"))
	sb.WriteString("\n")

	for f := fieldPartner1; f < fieldScheduleBase; f++ {
		sb.WriteString(b.renderRow(int(f), fieldLabels[f], b.renderFieldValue(f)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(b.styles.Subtitle.Render("Schedule"))
	sb.WriteString("\n")
	for i, item := range b.inv.Schedule {
		label := fmt.Sprintf("%d.", i+1)
		value := fmt.Sprintf("%s  %s", item.Time, item.Event)
		if item.Description != "" {
			value += "  " + b.styles.Muted.Render(item.Description)
		}
		row := int(fieldScheduleBase) + i
		if row == b.focus {
			value += b.styles.Muted.Render(fmt.Sprintf("  (editing %s)", scheduleFieldNames[b.subField]))
		}
		sb.WriteString(b.renderRow(row, label, value))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(b.renderNarrativePanel())

	if b.status != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Info.Render(b.status))
	}

	sb.WriteString("\n")
	sb.WriteString(b.styles.Footer.Render(builderHelp))

	return sb.String()
}

const builderHelp = "↑/↓ field · enter edit · ←/→ schedule column · a add · d delete · g generate story · t theme · ctrl+l launch · ctrl+c quit"

func (b builderModel) renderRow(row int, label, value string) string {
	labelStyle := b.styles.FieldLabel
	valueStyle := b.styles.FieldInactive
	marker := "  "
	if row == b.focus {
		valueStyle = b.styles.FieldActive
		marker = b.styles.Prompt.Render("> ")
	}

	if b.editing && row == b.focus {
		if b.editingTA {
			return marker + labelStyle.Render(label) + "\n" + b.points.View()
		}
		return marker + labelStyle.Render(label) + b.input.View()
	}

	return marker + labelStyle.Render(label) + valueStyle.Render(value)
}

func (b builderModel) renderFieldValue(f builderField) string {
	value := ""
	switch f {
	case fieldStoryPoints:
		value = firstLine(b.inv.StoryPoints)
	case fieldMaxGuests:
		value = strconv.Itoa(b.inv.MaxGuests)
	case fieldDaysTogether, fieldMilesTraveled, fieldCoffeesShared:
		value = b.renderStat(f)
	default:
		value = b.fixedFieldValue(f)
	}
	if value == "" {
		value = b.styles.Muted.Render("(empty)")
	}
	return value
}

func (b builderModel) fixedFieldValue(f builderField) string {
	switch f {
	case fieldPartner1:
		return b.inv.Partner1
	case fieldPartner2:
		return b.inv.Partner2
	case fieldDate:
		return b.inv.Date
	case fieldLocation:
		return b.inv.Location
	case fieldVenue:
		return b.inv.VenueName
	}
	return ""
}

func (b builderModel) renderStat(f builderField) string {
	var p *int
	switch f {
	case fieldDaysTogether:
		p = b.inv.Stats.DaysTogether
	case fieldMilesTraveled:
		p = b.inv.Stats.MilesTraveled
	case fieldCoffeesShared:
		p = b.inv.Stats.CoffeesShared
	}
	if p == nil {
		return b.styles.Muted.Render("(hidden)")
	}
	return strconv.Itoa(*p)
}

func (b builderModel) renderNarrativePanel() string {
	title := b.styles.Subtitle.Render("Story narrative")
	if b.generating {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			b.spin.View()+" "+b.styles.Muted.Render("Consulting the stars..."),
		)
	}

	body := b.inv.StoryNarrative
	if body == "" {
		body = b.styles.Muted.Render("(no narrative yet, press g to generate)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, b.styles.Body.Render(body))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
