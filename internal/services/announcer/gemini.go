package announcer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrGeneratorNotConfigured indicates the generative backend has no API key
var ErrGeneratorNotConfigured = errors.New("generative backend not configured")

const hostPersona = `You are the AI voice of %s, a UK-based urban music station.

PERSONALITY:
- Authentic, street-smart, energetic
- Friendly and relatable, not corporate
- Passionate about music and community
- UK urban culture (grime, hip-hop, R&B)

STYLE:
- Use UK slang naturally: "big up", "locked in", "the massive", "keeping it real", "vibes", "heat"
- Be conversational and genuine
- Keep it short (1-2 sentences max, 15-25 words)
- Sound like a friend, not a robot
- Match the energy to the time of day

AVOID:
- Corporate radio speak
- Cheesy clichés
- Being too formal
- Repetitive phrases
- Long-winded announcements

Generate a natural, contextual announcement based on the information provided.`

// GeminiGenerator phrases announcements through the Gemini API with a
// fixed on-air persona.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiGenerator creates the generative backend. An empty API key
// returns ErrGeneratorNotConfigured so callers can wire the template
// generator alone.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, temperature float64) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrGeneratorNotConfigured
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if temperature <= 0 {
		temperature = 0.9
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Generate asks the model for one announcement line.
func (g *GeminiGenerator) Generate(ctx context.Context, c Context) (string, error) {
	temp := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 100,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(g.buildPrompt(c)), config)
	if err != nil {
		return "", fmt.Errorf("generate announcement: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// buildPrompt folds persona and context into a single prompt; only the
// fields actually present make it in.
func (g *GeminiGenerator) buildPrompt(c Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, hostPersona, c.StationName)
	sb.WriteString("\n\nCreate a radio announcement for:\n")
	fmt.Fprintf(&sb, "Type: %s\n", c.Mode)
	if len(c.Cities) > 0 {
		fmt.Fprintf(&sb, "Location: %s\n", strings.Join(c.Cities, ", "))
	}
	if c.ListenerCount > 0 {
		fmt.Fprintf(&sb, "Listeners: %d\n", c.ListenerCount)
	}
	if c.Artist != "" || c.Title != "" {
		fmt.Fprintf(&sb, "Current track: %s - %s\n", c.Artist, c.Title)
	}
	if c.TimeOfDay != "" {
		fmt.Fprintf(&sb, "Time: %s\n", c.TimeOfDay)
	}
	sb.WriteString("\nMake it unique, contextual, and authentic. Keep it under 25 words.")
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return sb.String(), nil
}
