package announcer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// TemplateGenerator phrases announcements from fixed banks. It never
// fails and needs no network, which makes it the floor every other
// generator falls back to.
type TemplateGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTemplateGenerator creates a template generator. A nil rng gets a
// default source; tests inject a seeded one.
func NewTemplateGenerator(rng *rand.Rand) *TemplateGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &TemplateGenerator{rng: rng}
}

// Generate builds an announcement string for the context's mode.
func (g *TemplateGenerator) Generate(_ context.Context, c Context) (string, error) {
	switch c.Mode {
	case ModeOutro:
		return g.pick(outroBank(c)), nil
	case ModeIntro:
		return g.pick(introBank(c)), nil
	case ModeLocation:
		return g.pick(locationBank(c)), nil
	case ModeTime:
		return g.pick(timeBank(c)), nil
	case ModeRandom:
		return g.generateRandom(c)
	default:
		return g.pick(genericBank(c)), nil
	}
}

// generateRandom re-dispatches to a random concrete mode.
func (g *TemplateGenerator) generateRandom(c Context) (string, error) {
	modes := []string{ModeLocation, ModeOutro, ModeTime, ""}
	c.Mode = modes[g.draw(len(modes))]
	return g.Generate(context.Background(), c)
}

func (g *TemplateGenerator) pick(bank []string) string {
	return bank[g.draw(len(bank))]
}

func (g *TemplateGenerator) draw(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func outroBank(c Context) []string {
	if c.Artist == "" && c.Title == "" {
		return []string{"More heat coming up next!"}
	}
	return []string{
		fmt.Sprintf("That was %s with %s.", c.Artist, c.Title),
		fmt.Sprintf("You just heard %s by %s.", c.Title, c.Artist),
		fmt.Sprintf("%s, %s. More music coming up.", c.Artist, c.Title),
		fmt.Sprintf("That was %s. Stay tuned for more heat.", c.Artist),
	}
}

func introBank(c Context) []string {
	if c.Artist == "" && c.Title == "" {
		return []string{"This one's pure heat, turn it up!"}
	}
	return []string{
		fmt.Sprintf("This is %s with %s, keep it locked!", c.Artist, c.Title),
		fmt.Sprintf("%s coming through with %s right now!", c.Artist, c.Title),
		fmt.Sprintf("Turn it up, this is %s by %s!", c.Title, c.Artist),
	}
}

// locationBank buckets by audience size: a generic shoutout for nobody
// resolved, a named shoutout for one city, a pair, or up to three names
// plus "and {last}" so the list never runs long.
func locationBank(c Context) []string {
	cities := c.Cities
	switch len(cities) {
	case 0:
		return genericBank(c)
	case 1:
		return []string{
			fmt.Sprintf("We've got a listener tuning in from %s right now!", cities[0]),
			fmt.Sprintf("Shoutout to our listener in %s!", cities[0]),
			fmt.Sprintf("Big up to %s!", cities[0]),
		}
	case 2:
		return []string{
			fmt.Sprintf("Shoutout to our listeners in %s and %s!", cities[0], cities[1]),
		}
	default:
		last := cities[len(cities)-1]
		head := cities[:len(cities)-1]
		if len(head) > 3 {
			head = head[:3]
		}
		return []string{
			fmt.Sprintf("Big up to listeners in %s, and %s!", strings.Join(head, ", "), last),
		}
	}
}

func timeBank(c Context) []string {
	opener := greeting(c.TimeOfDay)
	clock := strings.ToLower(c.Now.Format("3:04 PM"))
	return []string{
		fmt.Sprintf("%s It's %s on %s.", opener, clock, c.StationName),
		fmt.Sprintf("It's %s. %s", clock, opener),
		fmt.Sprintf("%s The time is %s.", opener, clock),
	}
}

func genericBank(c Context) []string {
	return []string{
		"Big up to everyone listening right now!",
		"Much love to all our listeners out there!",
		fmt.Sprintf("Thanks for tuning in to %s!", c.StationName),
		fmt.Sprintf("You're listening to %s - the sound of the streets!", c.StationName),
	}
}
