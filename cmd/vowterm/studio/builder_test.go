package studio

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vowterm/internal/invitation"
)

func TestEditPartnerReplacesOnlyThatField(t *testing.T) {
	b := newTestBuilder(nil)
	before := b.inv

	// Focus starts on partner 1; edit it.
	b, _ = b.Update(key("enter"))
	if !b.editing {
		t.Fatal("enter should start editing")
	}
	b.input.SetValue("Morgan")
	b, _ = b.Update(key("enter"))

	if b.editing {
		t.Fatal("enter should commit the edit")
	}
	want := before.WithPartner1("Morgan")
	if diff := cmp.Diff(want, b.inv); diff != "" {
		t.Errorf("unexpected model change (-want +got):\n%s", diff)
	}
}

func TestEditDateField(t *testing.T) {
	b := newTestBuilder(nil)
	before := b.inv

	b, _ = b.Update(key("down"))
	b, _ = b.Update(key("down"))
	b, _ = b.Update(key("enter"))
	b.input.SetValue("2026-06-20")
	b, _ = b.Update(key("enter"))

	if diff := cmp.Diff(before.WithDate("2026-06-20"), b.inv); diff != "" {
		t.Errorf("unexpected model change (-want +got):\n%s", diff)
	}
}

func TestMaxGuestsClampedToSliderRange(t *testing.T) {
	b := newTestBuilder(nil)
	b.focus = int(fieldMaxGuests)

	b, _ = b.Update(key("enter"))
	b.input.SetValue("99")
	b, _ = b.Update(key("enter"))
	if b.inv.MaxGuests != 10 {
		t.Errorf("MaxGuests = %d, want clamp to 10", b.inv.MaxGuests)
	}

	b, _ = b.Update(key("enter"))
	b.input.SetValue("0")
	b, _ = b.Update(key("enter"))
	if b.inv.MaxGuests != 1 {
		t.Errorf("MaxGuests = %d, want clamp to 1", b.inv.MaxGuests)
	}
}

func TestStatEditEmptyHidesCard(t *testing.T) {
	b := newTestBuilder(nil)
	b.focus = int(fieldDaysTogether)

	b, _ = b.Update(key("enter"))
	b.input.SetValue("")
	b, _ = b.Update(key("enter"))

	if b.inv.Stats.DaysTogether != nil {
		t.Error("empty stat input should clear the stat")
	}
	if b.inv.Stats.MilesTraveled == nil || b.inv.Stats.CoffeesShared == nil {
		t.Error("other stats must be untouched")
	}
}

func TestScheduleAddAndRemoveKeys(t *testing.T) {
	b := newTestBuilder(nil)
	n := len(b.inv.Schedule)

	b, _ = b.Update(key("a"))
	if len(b.inv.Schedule) != n+1 {
		t.Fatalf("schedule length = %d after add, want %d", len(b.inv.Schedule), n+1)
	}
	if b.focus != b.fieldCount()-1 {
		t.Error("add should focus the new row")
	}
	if got := b.inv.Schedule[n].Icon; got != "circle" {
		t.Errorf("new item icon = %q, want circle", got)
	}

	b, _ = b.Update(key("d"))
	if len(b.inv.Schedule) != n {
		t.Errorf("schedule length = %d after remove, want %d", len(b.inv.Schedule), n)
	}
}

func TestScheduleSubFieldEdit(t *testing.T) {
	b := newTestBuilder(nil)
	b.focus = int(fieldScheduleBase) // first schedule row
	b.subField = invitation.ScheduleTime

	b, _ = b.Update(key("right")) // move to event column
	b, _ = b.Update(key("enter"))
	b.input.SetValue("Vows at Dawn")
	b, _ = b.Update(key("enter"))

	if got := b.inv.Schedule[0].Event; got != "Vows at Dawn" {
		t.Errorf("event = %q, want Vows at Dawn", got)
	}
	if got := b.inv.Schedule[0].Time; got == "" {
		t.Error("time column must be untouched by an event edit")
	}
}

func TestThemeCycleRestylesForm(t *testing.T) {
	b := newTestBuilder(nil)
	if b.styles.Theme.ID != invitation.ThemeCyberpunk {
		t.Fatalf("setup: initial theme = %s", b.styles.Theme.ID)
	}

	b, _ = b.Update(key("t"))

	if b.inv.Theme != invitation.ThemeEthereal {
		t.Fatalf("record theme = %s, want ethereal", b.inv.Theme)
	}
	if b.styles.Theme.ID != invitation.ThemeEthereal {
		t.Error("styles must follow the record without a launch round-trip")
	}
}

func TestGenerateWithoutStoryPointsIsNoOp(t *testing.T) {
	client := &stubClient{reply: "should never be used"}
	b := newTestBuilder(client)
	b.inv = b.inv.WithStoryPoints("   ")
	before := b.inv.StoryNarrative

	b, cmd := b.Update(key("g"))

	if cmd != nil {
		t.Error("generation with empty story points must not issue a request")
	}
	if b.generating {
		t.Error("busy state must not be set")
	}
	if b.inv.StoryNarrative != before {
		t.Error("narrative must be unchanged")
	}
	if client.callCount() != 0 {
		t.Errorf("client called %d times, want 0", client.callCount())
	}
}

func TestGenerateAppliesResultAndClearsBusy(t *testing.T) {
	client := &stubClient{reply: "A tale for the ages."}
	b := newTestBuilder(client)

	b, cmd := b.Update(key("g"))
	if !b.generating {
		t.Fatal("expected busy state while request is in flight")
	}
	if cmd == nil {
		t.Fatal("expected a generation command")
	}

	msg := runBatch(t, cmd)
	b, _ = b.Update(msg)

	if b.generating {
		t.Error("busy state should clear on completion")
	}
	if b.inv.StoryNarrative != "A tale for the ages." {
		t.Errorf("narrative = %q", b.inv.StoryNarrative)
	}
}

func TestGenerateWhileBusyIsIgnored(t *testing.T) {
	client := &stubClient{reply: "x"}
	b := newTestBuilder(client)

	b, _ = b.Update(key("g"))
	seq := b.genSeq
	b, cmd := b.Update(key("g"))

	if cmd != nil {
		t.Error("second generate while busy must be a no-op")
	}
	if b.genSeq != seq {
		t.Error("sequence must not advance for an ignored trigger")
	}
}

func TestStaleNarrativeResponseIsDropped(t *testing.T) {
	b := newTestBuilder(&stubClient{reply: "fresh"})
	b, _ = b.Update(key("g"))
	before := b.inv.StoryNarrative

	b, _ = b.Update(narrativeMsg{seq: b.genSeq - 1, text: "stale text"})

	if b.inv.StoryNarrative != before {
		t.Error("stale response must not overwrite the narrative")
	}
	if !b.generating {
		t.Error("in-flight request must still be pending")
	}
}
