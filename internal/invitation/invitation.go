// Package invitation holds the data model for a single wedding invitation.
// The model is a plain value: every mutation helper returns a fresh copy with
// exactly one field (or one stat, or one schedule entry) replaced, so views
// can hold references without seeing edits they did not make.
package invitation

// Theme identifies one of the built-in visual presets.
type Theme string

const (
	ThemeCyberpunk  Theme = "cyberpunk"
	ThemeEthereal   Theme = "ethereal"
	ThemeMinimalist Theme = "minimalist"
)

// Themes lists every valid theme in display order.
var Themes = []Theme{ThemeCyberpunk, ThemeEthereal, ThemeMinimalist}

// Valid reports whether t is one of the built-in themes.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the theme after t in display order, wrapping around.
func (t Theme) Next() Theme {
	for i, known := range Themes {
		if t == known {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ScheduleItem is one entry on the wedding-day timeline. Insertion order is
// display order; nothing deduplicates times or event names.
type ScheduleItem struct {
	Time        string
	Event       string
	Description string
	Icon        string
}

// ScheduleField names an editable ScheduleItem field for UpdateScheduleItem.
type ScheduleField int

const (
	ScheduleTime ScheduleField = iota
	ScheduleEvent
	ScheduleDescription
	ScheduleIcon
)

// Stats are the optional relationship numbers shown on the guest page.
// A nil field means "leave this card off the page entirely".
type Stats struct {
	DaysTogether  *int
	MilesTraveled *int
	CoffeesShared *int
}

// Invitation is the complete description of one couple's event. It is owned
// by the app shell, edited field-by-field in the builder, and rendered
// read-only in the guest view.
type Invitation struct {
	Partner1       string
	Partner2       string
	Date           string // ISO calendar date; deliberately unvalidated
	Location       string
	VenueName      string
	StoryPoints    string
	StoryNarrative string
	Theme          Theme
	MaxGuests      int
	Stats          Stats
	Schedule       []ScheduleItem
}

func intp(v int) *int { return &v }

// Default returns the demo invitation loaded at startup.
func Default() Invitation {
	return Invitation{
		Partner1:    "Alex",
		Partner2:    "Jordan",
		Date:        "2025-10-24",
		Location:    "Neo-Tokyo Skyline Gardens",
		VenueName:   "The Celestial Deck",
		StoryPoints: "We met at a robotics hackathon. Our first date was watching a meteor shower. We love synthwave music and spicy noodles.",
		StoryNarrative: "In the neon glow of a digital frontier, Alex and Jordan's code intertwined. " +
			"Sparks flew not from circuits, but from souls, igniting a supernova of affection beneath a meteor-streaked sky.",
		Theme:     ThemeCyberpunk,
		MaxGuests: 2,
		Stats: Stats{
			DaysTogether:  intp(1240),
			MilesTraveled: intp(45000),
			CoffeesShared: intp(892),
		},
		Schedule: []ScheduleItem{
			{Time: "16:00", Event: "Arrival & Cocktails", Description: "Check in at the bio-scanner and enjoy a neutron star martini.", Icon: "cocktail"},
			{Time: "17:30", Event: "Ceremony", Description: "Exchange of quantum vows under the holographic arch.", Icon: "heart"},
			{Time: "19:00", Event: "Galactic Feast", Description: "Fusion cuisine from across the galaxy.", Icon: "utensils"},
			{Time: "21:00", Event: "Dance Protocol Initiated", Description: "Activate gravity boots and hit the floor.", Icon: "music"},
		},
	}
}

// HasStats reports whether at least one stat is set. The guest view hides the
// whole stats section when this is false.
func (inv Invitation) HasStats() bool {
	return inv.Stats.DaysTogether != nil || inv.Stats.MilesTraveled != nil || inv.Stats.CoffeesShared != nil
}

// WithPartner1 returns a copy with partner1 replaced.
func (inv Invitation) WithPartner1(v string) Invitation { inv.Partner1 = v; return inv }

// WithPartner2 returns a copy with partner2 replaced.
func (inv Invitation) WithPartner2(v string) Invitation { inv.Partner2 = v; return inv }

// WithDate returns a copy with the date replaced. The value is not parsed
// here; an unparseable date degrades the countdown, nothing more.
func (inv Invitation) WithDate(v string) Invitation { inv.Date = v; return inv }

// WithLocation returns a copy with the location replaced.
func (inv Invitation) WithLocation(v string) Invitation { inv.Location = v; return inv }

// WithVenueName returns a copy with the venue name replaced.
func (inv Invitation) WithVenueName(v string) Invitation { inv.VenueName = v; return inv }

// WithStoryPoints returns a copy with the story bullet points replaced.
func (inv Invitation) WithStoryPoints(v string) Invitation { inv.StoryPoints = v; return inv }

// WithStoryNarrative returns a copy with the narrative replaced.
func (inv Invitation) WithStoryNarrative(v string) Invitation { inv.StoryNarrative = v; return inv }

// WithTheme returns a copy with the theme replaced.
func (inv Invitation) WithTheme(v Theme) Invitation { inv.Theme = v; return inv }

// WithMaxGuests returns a copy with the guest allowance replaced. Range
// enforcement is the builder control's job, not the model's.
func (inv Invitation) WithMaxGuests(v int) Invitation { inv.MaxGuests = v; return inv }

// WithDaysTogether returns a copy with only stats.daysTogether replaced.
func (inv Invitation) WithDaysTogether(v *int) Invitation { inv.Stats.DaysTogether = v; return inv }

// WithMilesTraveled returns a copy with only stats.milesTraveled replaced.
func (inv Invitation) WithMilesTraveled(v *int) Invitation { inv.Stats.MilesTraveled = v; return inv }

// WithCoffeesShared returns a copy with only stats.coffeesShared replaced.
func (inv Invitation) WithCoffeesShared(v *int) Invitation { inv.Stats.CoffeesShared = v; return inv }

// AppendScheduleItem returns a copy with a blank timeline entry added at the
// end. New entries never displace or reorder existing ones.
func (inv Invitation) AppendScheduleItem() Invitation {
	next := make([]ScheduleItem, len(inv.Schedule), len(inv.Schedule)+1)
	copy(next, inv.Schedule)
	inv.Schedule = append(next, ScheduleItem{Icon: "circle"})
	return inv
}

// UpdateScheduleItem returns a copy with one field of entry i replaced.
// An out-of-range index is a no-op.
func (inv Invitation) UpdateScheduleItem(i int, field ScheduleField, v string) Invitation {
	if i < 0 || i >= len(inv.Schedule) {
		return inv
	}
	next := make([]ScheduleItem, len(inv.Schedule))
	copy(next, inv.Schedule)
	switch field {
	case ScheduleTime:
		next[i].Time = v
	case ScheduleEvent:
		next[i].Event = v
	case ScheduleDescription:
		next[i].Description = v
	case ScheduleIcon:
		next[i].Icon = v
	}
	inv.Schedule = next
	return inv
}

// RemoveScheduleItem returns a copy with entry i removed, preserving the
// relative order of the rest. An out-of-range index is a no-op.
func (inv Invitation) RemoveScheduleItem(i int) Invitation {
	if i < 0 || i >= len(inv.Schedule) {
		return inv
	}
	next := make([]ScheduleItem, 0, len(inv.Schedule)-1)
	next = append(next, inv.Schedule[:i]...)
	next = append(next, inv.Schedule[i+1:]...)
	inv.Schedule = next
	return inv
}
