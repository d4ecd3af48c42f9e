package engine

import (
	"fmt"
	"strings"
)

// ParseCategory parses user input to a Category.
// Accepts the canonical names plus a few short aliases.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "explore", "exp", "exploring":
		return CategoryExplore, nil
	case "social", "soc":
		return CategorySocial, nil
	case "creative", "art", "create":
		return CategoryCreative, nil
	case "wellness", "well", "health":
		return CategoryWellness, nil
	case "learning", "learn", "study":
		return CategoryLearning, nil
	default:
		return "", fmt.Errorf("invalid category: %q", input)
	}
}

// ParseCategories parses every entry and drops duplicates, keeping first-seen order.
func ParseCategories(inputs []string) ([]Category, error) {
	var out []Category
	seen := map[Category]bool{}
	for _, in := range inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		c, err := ParseCategory(in)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// ParseLocation parses user input to a Location. Empty input means any.
func ParseLocation(input string) (Location, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "any", "anywhere":
		return LocationAny, nil
	case "indoor", "indoors", "in":
		return LocationIndoor, nil
	case "outdoor", "outdoors", "out":
		return LocationOutdoor, nil
	default:
		return "", fmt.Errorf("invalid location: %q", input)
	}
}
