package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"explore":  CategoryExplore,
		" Social ": CategorySocial,
		"art":      CategoryCreative,
		"HEALTH":   CategoryWellness,
		"study":    CategoryLearning,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("cooking")
	assert.Error(t, err)
}

func TestParseCategoriesDedupes(t *testing.T) {
	got, err := ParseCategories([]string{"social", "", "soc", "learn"})
	require.NoError(t, err)
	assert.Equal(t, []Category{CategorySocial, CategoryLearning}, got)

	_, err = ParseCategories([]string{"social", "nope"})
	assert.Error(t, err)
}

func TestParseLocation(t *testing.T) {
	for in, want := range map[string]Location{
		"":         LocationAny,
		"any":      LocationAny,
		"in":       LocationIndoor,
		"Outdoors": LocationOutdoor,
	} {
		got, err := ParseLocation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLocation("space")
	assert.Error(t, err)
}
