package engine

type Category string

const (
	CategoryExplore  Category = "explore"
	CategorySocial   Category = "social"
	CategoryCreative Category = "creative"
	CategoryWellness Category = "wellness"
	CategoryLearning Category = "learning"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryExplore,
	CategorySocial,
	CategoryCreative,
	CategoryWellness,
	CategoryLearning,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryExplore, CategorySocial, CategoryCreative, CategoryWellness, CategoryLearning:
		return true
	default:
		return false
	}
}

type Location string

const (
	LocationIndoor  Location = "indoor"
	LocationOutdoor Location = "outdoor"
	LocationAny     Location = "any"
)

func (l Location) IsValid() bool {
	switch l {
	case LocationIndoor, LocationOutdoor, LocationAny:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForDuration derives a quest's difficulty from its length in minutes.
func DifficultyForDuration(minutes int) Difficulty {
	switch {
	case minutes <= 20:
		return DifficultyEasy
	case minutes <= 40:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

type Status string

const (
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
	StatusUpcoming  Status = "upcoming"
)

// Filter narrows the catalog before a quest is drawn.
type Filter struct {
	TimeAvailable int // minutes
	Location      Location
	Categories    []Category // empty means any
}

// DefaultFilter mirrors the generator dialog's initial state.
func DefaultFilter() Filter {
	return Filter{TimeAvailable: 30, Location: LocationAny}
}

func (f Filter) allowsCategory(c Category) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, want := range f.Categories {
		if want == c {
			return true
		}
	}
	return false
}

// An empty filter location means any.
func (f Filter) allowsLocation(l Location) bool {
	return f.Location == "" || f.Location == LocationAny || l == LocationAny || l == f.Location
}
