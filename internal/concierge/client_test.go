package concierge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vowterm/internal/invitation"
)

// fakeClient scripts one response for each call.
type fakeClient struct {
	text string
	err  error

	lastHistory  []Turn
	lastQuestion string
}

func (f *fakeClient) GenerateNarrative(ctx context.Context, partner1, partner2, points string) (string, error) {
	return f.text, f.err
}

func (f *fakeClient) AnswerGuestQuestion(ctx context.Context, history []Turn, question string, inv invitation.Invitation) (string, error) {
	f.lastHistory = history
	f.lastQuestion = question
	return f.text, f.err
}

func TestNarrativePassesThroughServiceText(t *testing.T) {
	c := &fakeClient{text: "An epic tale of two souls."}
	got := Narrative(context.Background(), c, "Alex", "Jordan", "met at a conference")
	assert.Equal(t, "An epic tale of two souls.", got)
}

func TestNarrativeFallsBackOnError(t *testing.T) {
	c := &fakeClient{err: errors.New("network down")}
	got := Narrative(context.Background(), c, "Alex", "Jordan", "met at a conference")
	assert.Equal(t, NarrativeErrorFallback, got)
}

func TestNarrativeFallsBackOnEmptyResponse(t *testing.T) {
	c := &fakeClient{text: ""}
	got := Narrative(context.Background(), c, "Alex", "Jordan", "met at a conference")
	assert.Equal(t, NarrativeEmptyFallback, got)
}

func TestNarrativeNilClientDegrades(t *testing.T) {
	got := Narrative(context.Background(), nil, "Alex", "Jordan", "points")
	assert.Equal(t, NarrativeErrorFallback, got)
}

func TestReplyPassesThroughServiceText(t *testing.T) {
	c := &fakeClient{text: "The ceremony starts at sunset."}
	got := Reply(context.Background(), c, nil, "When does it start?", invitation.Default())
	assert.Equal(t, "The ceremony starts at sunset.", got)
}

func TestReplyFallsBackOnError(t *testing.T) {
	c := &fakeClient{err: errors.New("timeout")}
	got := Reply(context.Background(), c, nil, "Is there parking?", invitation.Default())
	assert.Equal(t, ConciergeErrorFallback, got)
}

func TestReplyFallsBackOnEmptyResponse(t *testing.T) {
	c := &fakeClient{text: ""}
	got := Reply(context.Background(), c, nil, "Is there parking?", invitation.Default())
	assert.Equal(t, ConciergeEmptyFallback, got)
}

func TestReplyNilClientDegrades(t *testing.T) {
	got := Reply(context.Background(), nil, nil, "Hello?", invitation.Default())
	assert.Equal(t, ConciergeErrorFallback, got)
}

func TestReplyForwardsHistoryAndQuestion(t *testing.T) {
	c := &fakeClient{text: "ok"}
	history := []Turn{{Role: "user", Text: "hi"}, {Role: "model", Text: Greeting}}
	Reply(context.Background(), c, history, "What should I wear?", invitation.Default())
	assert.Equal(t, history, c.lastHistory)
	assert.Equal(t, "What should I wear?", c.lastQuestion)
}

func TestNarrativePromptNamesCoupleAndPoints(t *testing.T) {
	p := narrativePrompt("Alex", "Jordan", "met in a library; eloped to Mars")
	assert.Contains(t, p, "Alex and Jordan")
	assert.Contains(t, p, "met in a library; eloped to Mars")
	assert.Contains(t, p, "max 150 words")
}

func TestConciergePromptCarriesInvitationData(t *testing.T) {
	inv := invitation.Default()
	p := conciergePrompt(nil, "Where is the venue?", inv)

	assert.Contains(t, p, inv.Partner1)
	assert.Contains(t, p, inv.Partner2)
	assert.Contains(t, p, inv.Date)
	assert.Contains(t, p, inv.VenueName)
	assert.Contains(t, p, inv.Location)
	for _, item := range inv.Schedule {
		assert.Contains(t, p, item.Time+": "+item.Event)
	}
	assert.Contains(t, p, "Guest Question: Where is the venue?")
}

func TestConciergePromptIncludesRecentTurns(t *testing.T) {
	history := []Turn{
		{Role: "user", Text: "Is there a dress code?"},
		{Role: "model", Text: "Formal attire, with a futuristic twist."},
	}
	p := conciergePrompt(history, "And for children?", invitation.Default())

	assert.Contains(t, p, "Recent conversation:")
	assert.Contains(t, p, "user: Is there a dress code?")
	assert.Contains(t, p, "model: Formal attire, with a futuristic twist.")
	// The new question comes after the context block.
	assert.Greater(t, strings.Index(p, "Guest Question:"), strings.Index(p, "Recent conversation:"))
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", DefaultModel)
	assert.Error(t, err)
}
