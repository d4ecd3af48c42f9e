package engine

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/OGaCu/madventure/internal/storage"
)

// Generator draws quests from a template catalog. It is not safe for
// concurrent use; the Service serialises access.
type Generator struct {
	catalog []Template
	rng     *rand.Rand
	now     func() time.Time
	newID   func() string
}

// NewGenerator returns a generator over catalog. A nil rng draws from a
// randomly seeded source.
func NewGenerator(catalog []Template, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		catalog: catalog,
		rng:     rng,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// NewSeededGenerator returns a generator over the built-in catalog whose
// draws are reproducible for a given seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(Catalog(), rand.New(rand.NewPCG(seed, seed)))
}

// Eligible returns the templates that satisfy f, in catalog order.
func (g *Generator) Eligible(f Filter) []Template {
	var out []Template
	for _, t := range g.catalog {
		if t.Duration > f.TimeAvailable {
			continue
		}
		if !f.allowsLocation(t.Location) {
			continue
		}
		if !f.allowsCategory(t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Generate draws one template uniformly from those matching f and
// instantiates it. When nothing matches, the draw is taken from the whole
// catalog instead.
func (g *Generator) Generate(f Filter) storage.Quest {
	q, _ := g.Draw(f)
	return q
}

// Draw is Generate that also reports whether the catalog fallback fired.
func (g *Generator) Draw(f Filter) (q storage.Quest, fallback bool) {
	pool := g.Eligible(f)
	fallback = len(pool) == 0
	if fallback {
		pool = g.catalog
	}
	t := pool[g.rng.IntN(len(pool))]
	return Instantiate(t, g.newID(), g.now()), fallback
}

// Instantiate turns a template into a current quest.
func Instantiate(t Template, id string, now time.Time) storage.Quest {
	return storage.Quest{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Difficulty:  string(DifficultyForDuration(t.Duration)),
		Duration:    t.Duration,
		Location:    string(t.Location),
		Status:      string(StatusCurrent),
		CreatedAt:   now,
		XPReward:    t.XPReward,
	}
}
