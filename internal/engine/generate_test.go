package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 4, 9, 30, 0, 0, time.UTC)

func newTestGenerator(catalog []Template, seed uint64) *Generator {
	g := NewGenerator(catalog, rand.New(rand.NewPCG(seed, seed)))
	g.now = func() time.Time { return fixedNow }
	return g
}

func TestGenerateRespectsFilter(t *testing.T) {
	g := newTestGenerator(Catalog(), 1)
	filters := []Filter{
		{TimeAvailable: 30, Location: LocationAny},
		{TimeAvailable: 10, Location: LocationIndoor},
		{TimeAvailable: 60, Location: LocationOutdoor, Categories: []Category{CategoryExplore}},
		{TimeAvailable: 20, Location: LocationAny, Categories: []Category{CategoryWellness, CategoryLearning}},
	}
	for _, f := range filters {
		require.NotEmpty(t, g.Eligible(f), "filter %+v", f)
		for i := 0; i < 200; i++ {
			q, fallback := g.Draw(f)
			require.False(t, fallback)
			assert.LessOrEqual(t, q.Duration, f.TimeAvailable)
			loc := Location(q.Location)
			assert.True(t, f.Location == LocationAny || loc == LocationAny || loc == f.Location, "location %s for filter %s", loc, f.Location)
			assert.True(t, f.allowsCategory(Category(q.Category)), "category %s", q.Category)
		}
	}
}

func TestGenerateFallsBackToFullCatalog(t *testing.T) {
	g := newTestGenerator(Catalog(), 2)
	f := Filter{TimeAvailable: 0, Location: LocationAny}
	require.Empty(t, g.Eligible(f))

	titles := map[string]bool{}
	for _, tpl := range Catalog() {
		titles[tpl.Title] = true
	}
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		q, fallback := g.Draw(f)
		require.True(t, fallback)
		assert.True(t, titles[q.Title], "unexpected title %q", q.Title)
		assert.Greater(t, q.Duration, f.TimeAvailable)
		seen[q.Title] = true
	}
	// Every template is reachable on fallback.
	assert.Len(t, seen, len(titles))
}

func TestGenerateImpossibleCategoryFilterFallsBack(t *testing.T) {
	g := newTestGenerator(Catalog(), 3)
	// No indoor explore quest fits in 10 minutes.
	f := Filter{TimeAvailable: 10, Location: LocationIndoor, Categories: []Category{CategoryExplore}}
	require.Empty(t, g.Eligible(f))
	q := g.Generate(f)
	assert.NotEmpty(t, q.ID)
}

func TestGenerateIsUniformOverEligible(t *testing.T) {
	g := newTestGenerator(Catalog(), 4)
	f := Filter{TimeAvailable: 5, Location: LocationAny, Categories: []Category{CategorySocial, CategoryCreative}}
	eligible := g.Eligible(f)
	require.Len(t, eligible, 2) // Quick Chat, Quick Doodle

	counts := map[string]int{}
	const draws = 4000
	for i := 0; i < draws; i++ {
		counts[g.Generate(f).Title]++
	}
	require.Len(t, counts, 2)
	for title, n := range counts {
		assert.InDelta(t, draws/2, n, 200, "draws of %q", title)
	}
}

func TestGenerateInstantiatesCurrentQuest(t *testing.T) {
	g := newTestGenerator(Catalog(), 5)
	ids := map[string]bool{}
	for i := 0; i < 50; i++ {
		q := g.Generate(DefaultFilter())
		assert.NotEmpty(t, q.ID)
		assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
		ids[q.ID] = true

		assert.Equal(t, string(StatusCurrent), q.Status)
		assert.Equal(t, fixedNow, q.CreatedAt)
		assert.Nil(t, q.CompletedAt)
		assert.Nil(t, q.Photo)
		assert.Nil(t, q.Notes)
		assert.Equal(t, string(DifficultyForDuration(q.Duration)), q.Difficulty)
		assert.Positive(t, q.XPReward)
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	a := NewSeededGenerator(99)
	b := NewSeededGenerator(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Generate(DefaultFilter()).Title, b.Generate(DefaultFilter()).Title)
	}
}

func TestDifficultyForDuration(t *testing.T) {
	cases := map[int]Difficulty{
		1:  DifficultyEasy,
		20: DifficultyEasy,
		21: DifficultyMedium,
		40: DifficultyMedium,
		41: DifficultyHard,
		90: DifficultyHard,
	}
	for minutes, want := range cases {
		assert.Equal(t, want, DifficultyForDuration(minutes), "duration %d", minutes)
	}
}

func TestGeneratedDifficultyBoundaries(t *testing.T) {
	for _, tc := range []struct {
		duration int
		want     Difficulty
	}{
		{20, DifficultyEasy},
		{21, DifficultyMedium},
		{40, DifficultyMedium},
		{41, DifficultyHard},
	} {
		catalog := []Template{{Title: "t", Description: "d", Category: CategoryExplore, Duration: tc.duration, Location: LocationAny, XPReward: 10}}
		q := newTestGenerator(catalog, 6).Generate(Filter{TimeAvailable: 60, Location: LocationAny})
		assert.Equal(t, string(tc.want), q.Difficulty, "duration %d", tc.duration)
	}
}

func TestCatalogIsValid(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 20)

	perCategory := map[Category]int{}
	for _, tpl := range catalog {
		require.NoError(t, tpl.validate())
		perCategory[tpl.Category]++
	}
	for _, c := range Categories {
		assert.Equal(t, 4, perCategory[c], "templates in %s", c)
	}

	// Callers get a copy.
	catalog[0].Title = "changed"
	assert.NotEqual(t, "changed", Catalog()[0].Title)
}

func TestParseCatalogRejectsInvalidTemplates(t *testing.T) {
	bad := []string{
		"templates: []",
		"not: [valid",
		"templates:\n  - {title: x, description: y, category: cooking, duration: 5, location: any, xp: 10}",
		"templates:\n  - {title: x, description: y, category: social, duration: 0, location: any, xp: 10}",
		"templates:\n  - {title: x, description: y, category: social, duration: 5, location: moon, xp: 10}",
		"templates:\n  - {title: x, description: y, category: social, duration: 5, location: any, xp: 0}",
	}
	for _, doc := range bad {
		_, err := ParseCatalog([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestEmptyFilterLocationMeansAny(t *testing.T) {
	g := newTestGenerator(Catalog(), 8)
	zero := Filter{TimeAvailable: 60}
	anyLoc := Filter{TimeAvailable: 60, Location: LocationAny}
	assert.Equal(t, g.Eligible(anyLoc), g.Eligible(zero))
	assert.Len(t, g.Eligible(zero), 20)
}
