package announcer

import (
	"context"
	"log"
)

// FallbackGenerator tries a primary generator and drops to the template
// bank when it errors or returns nothing. The fallback branch is load
// bearing: an upstream outage must never stall the station.
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
}

// NewFallbackGenerator wires a primary over a fallback. A nil primary
// means fallback-only operation.
func NewFallbackGenerator(primary, fallback Generator) *FallbackGenerator {
	return &FallbackGenerator{primary: primary, fallback: fallback}
}

// Generate returns the primary's text when it works, the fallback's
// otherwise.
func (g *FallbackGenerator) Generate(ctx context.Context, c Context) (string, error) {
	if g.primary != nil {
		text, err := g.primary.Generate(ctx, c)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			log.Printf("[ERROR] Generative backend failed, using templates: %v", err)
		}
	}
	return g.fallback.Generate(ctx, c)
}
