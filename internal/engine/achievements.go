package engine

import (
	"time"

	"github.com/OGaCu/madventure/internal/storage"
)

// AchievementRule is a fixed achievement definition and its unlock condition.
type AchievementRule struct {
	ID          string
	Title       string
	Description string
	Icon        string

	// Unlocked reports whether the rule holds. completed holds only
	// quests with status completed.
	Unlocked func(p storage.Profile, completed []storage.Quest) bool
}

// AchievementRules returns the achievement catalog in display order.
func AchievementRules() []AchievementRule {
	return []AchievementRule{
		totalRule("1", "First Steps", "Complete your first quest", "🎯", 1),
		totalRule("2", "Explorer", "Complete 10 quests", "🗺️", 10),
		totalRule("3", "Adventurer", "Complete 25 quests", "⚔️", 25),
		{
			ID:          "4",
			Title:       "Streak Master",
			Description: "Maintain a 7-day streak",
			Icon:        "🔥",
			Unlocked: func(p storage.Profile, _ []storage.Quest) bool {
				return p.CurrentStreak >= 7
			},
		},
		categoryRule("5", "Social Butterfly", "Complete 10 social quests", "🦋", CategorySocial, 10),
		categoryRule("6", "Creative Mind", "Complete 10 creative quests", "🎨", CategoryCreative, 10),
		categoryRule("7", "Wellness Warrior", "Complete 10 wellness quests", "💪", CategoryWellness, 10),
		categoryRule("8", "Knowledge Seeker", "Complete 10 learning quests", "📚", CategoryLearning, 10),
	}
}

func totalRule(id, title, desc, icon string, n int) AchievementRule {
	return AchievementRule{
		ID: id, Title: title, Description: desc, Icon: icon,
		Unlocked: func(_ storage.Profile, completed []storage.Quest) bool {
			return len(completed) >= n
		},
	}
}

func categoryRule(id, title, desc, icon string, cat Category, n int) AchievementRule {
	return AchievementRule{
		ID: id, Title: title, Description: desc, Icon: icon,
		Unlocked: func(_ storage.Profile, completed []storage.Quest) bool {
			count := 0
			for _, q := range completed {
				if Category(q.Category) == cat {
					count++
				}
			}
			return count >= n
		},
	}
}

func (r AchievementRule) locked() storage.Achievement {
	return storage.Achievement{ID: r.ID, Title: r.Title, Description: r.Description, Icon: r.Icon}
}

func ruleByID(id string) (AchievementRule, bool) {
	for _, r := range AchievementRules() {
		if r.ID == id {
			return r, true
		}
	}
	return AchievementRule{}, false
}

// DefaultAchievements returns the full catalog with nothing unlocked.
func DefaultAchievements() []storage.Achievement {
	rules := AchievementRules()
	out := make([]storage.Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.locked())
	}
	return out
}

// NormalizeAchievements brings a saved collection in line with the catalog:
// catalog entries come first in catalog order, missing ones are added
// locked, and unlock stamps are kept. Entries unknown to the catalog are
// kept at the end.
func NormalizeAchievements(saved []storage.Achievement) []storage.Achievement {
	byID := make(map[string]storage.Achievement, len(saved))
	for _, a := range saved {
		if _, dup := byID[a.ID]; dup {
			continue
		}
		byID[a.ID] = a
	}

	rules := AchievementRules()
	out := make([]storage.Achievement, 0, len(rules))
	known := map[string]bool{}
	for _, r := range rules {
		known[r.ID] = true
		a := r.locked()
		if s, ok := byID[r.ID]; ok && s.UnlockedAt != nil {
			t := *s.UnlockedAt
			a.UnlockedAt = &t
		}
		out = append(out, a)
	}
	for _, a := range saved {
		if known[a.ID] {
			continue
		}
		known[a.ID] = true
		out = append(out, a)
	}
	return out
}

// CompletedQuests returns the quests whose status is completed.
func CompletedQuests(history []storage.Quest) []storage.Quest {
	var out []storage.Quest
	for _, q := range history {
		if Status(q.Status) == StatusCompleted {
			out = append(out, q)
		}
	}
	return out
}

// EvaluateAchievements checks every locked achievement in p against history
// (which must already include the triggering completion). It returns the
// profile's achievements with new unlocks stamped at now, and the newly
// unlocked entries in collection order. Neither p nor history is modified.
func EvaluateAchievements(p storage.Profile, history []storage.Quest, now time.Time) (updated []storage.Achievement, unlocked []storage.Achievement) {
	completed := CompletedQuests(history)
	updated = p.Clone().Achievements

	for i := range updated {
		a := &updated[i]
		if a.UnlockedAt != nil {
			continue
		}
		rule, ok := ruleByID(a.ID)
		if !ok {
			continue
		}
		if !rule.Unlocked(p, completed) {
			continue
		}
		stamp := now
		a.UnlockedAt = &stamp
		unlocked = append(unlocked, a.Clone())
	}
	return updated, unlocked
}

// CountUnlocked returns how many achievements have an unlock stamp.
func CountUnlocked(achievements []storage.Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.Unlocked() {
			n++
		}
	}
	return n
}
