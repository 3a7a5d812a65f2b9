// Package concierge wraps the generative-text service behind the invitation:
// one call that writes the couple's story from bullet points, and one that
// answers guest questions from the invitation's own data. Both are single
// request/response — no streaming, no retries — and neither is allowed to
// fail past this package: every error collapses to a fixed fallback string so
// the invitation stays usable with zero connectivity.
package concierge

import (
	"context"
	"time"

	"vowterm/internal/invitation"
)

// Fallback strings shown when the service is unreachable, misconfigured, or
// returns nothing. These are part of the product copy; keep them stable.
const (
	NarrativeEmptyFallback = "Our story is written in the stars..."
	NarrativeErrorFallback = "Once upon a time, two souls met and the universe changed forever. (AI unavailable)"
	ConciergeEmptyFallback = "I am currently recalibrating my sensors. Please ask again later."
	ConciergeErrorFallback = "Connection to the mothership interrupted. Please try again."
)

// Greeting is the concierge's canned opening line in the chat panel.
const Greeting = "Greetings. I am AURA, the automated concierge. How may I assist you today?"

// Turn is one prior exchange in the guest chat, passed back to the service as
// loose context (not structured conversation turns).
type Turn struct {
	Role string // "user" or "model"
	Text string
	At   time.Time
}

// Client is the minimal surface the views call. Implementations may return
// errors; callers are expected to go through Narrative/Reply, which never do.
type Client interface {
	GenerateNarrative(ctx context.Context, partner1, partner2, points string) (string, error)
	AnswerGuestQuestion(ctx context.Context, history []Turn, question string, inv invitation.Invitation) (string, error)
}

// Narrative produces the love-story paragraph, degrading to a fallback on any
// failure. A nil client (no API key configured) counts as a failure.
func Narrative(ctx context.Context, c Client, partner1, partner2, points string) string {
	if c == nil {
		return NarrativeErrorFallback
	}
	text, err := c.GenerateNarrative(ctx, partner1, partner2, points)
	if err != nil {
		return NarrativeErrorFallback
	}
	if text == "" {
		return NarrativeEmptyFallback
	}
	return text
}

// Reply answers a guest question, degrading to a fallback on any failure.
func Reply(ctx context.Context, c Client, history []Turn, question string, inv invitation.Invitation) string {
	if c == nil {
		return ConciergeErrorFallback
	}
	text, err := c.AnswerGuestQuestion(ctx, history, question, inv)
	if err != nil {
		return ConciergeErrorFallback
	}
	if text == "" {
		return ConciergeEmptyFallback
	}
	return text
}
