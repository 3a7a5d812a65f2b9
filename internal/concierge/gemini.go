package concierge

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"vowterm/internal/invitation"
	"vowterm/internal/logging"
)

// DefaultModel is the text model used for both narrative and chat calls.
const DefaultModel = "gemini-3-flash-preview"

// GeminiClient talks to the Gemini API through the official SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a client for the given key. An empty key is an error
// here; callers that want silent degradation pass a nil Client to
// Narrative/Reply instead.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateNarrative writes the couple's story from free-form bullet points.
func (c *GeminiClient) GenerateNarrative(ctx context.Context, partner1, partner2, points string) (string, error) {
	return c.generate(ctx, narrativePrompt(partner1, partner2, points))
}

// AnswerGuestQuestion answers one guest question against the invitation data.
// Prior turns are folded into the prompt as loose context rather than sent as
// structured chat history; a fresh prompt per question is enough here.
func (c *GeminiClient) AnswerGuestQuestion(ctx context.Context, history []Turn, question string, inv invitation.Invitation) (string, error) {
	return c.generate(ctx, conciergePrompt(history, question, inv))
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "gemini generate")
	defer timer.Stop()

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		logging.API("generate failed: %v", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}

func narrativePrompt(partner1, partner2, points string) string {
	var b strings.Builder
	b.WriteString("Write a short, engaging, and slightly futuristic or magical love story summary (max 150 words) for a wedding invitation.\n")
	fmt.Fprintf(&b, "Couple: %s and %s.\n", partner1, partner2)
	fmt.Fprintf(&b, "Key Story Points: %s.\n", points)
	b.WriteString("Tone: Romantic, Epic, Whimsical.\n")
	return b.String()
}

func conciergePrompt(history []Turn, question string, inv invitation.Invitation) string {
	schedule := make([]string, 0, len(inv.Schedule))
	for _, item := range inv.Schedule {
		schedule = append(schedule, fmt.Sprintf("%s: %s", item.Time, item.Event))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %q, the AI Wedding Concierge for %s and %s.\n", "AURA", inv.Partner1, inv.Partner2)
	fmt.Fprintf(&b, "Wedding Date: %s.\n", inv.Date)
	fmt.Fprintf(&b, "Venue: %s, %s.\n", inv.VenueName, inv.Location)
	fmt.Fprintf(&b, "Schedule: %s.\n\n", strings.Join(schedule, ", "))
	b.WriteString("Your goal is to answer guest questions politely, briefly, and helpfully based on this data.\n")
	b.WriteString("If you don't know the answer (e.g., parking details not listed), say you'll ask the couple.\n")
	b.WriteString("Keep it futuristic and classy.\n")

	if len(history) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
		}
	}

	fmt.Fprintf(&b, "\nGuest Question: %s\n\nAnswer (keep it under 50 words):", question)
	return b.String()
}
