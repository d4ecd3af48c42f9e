package engine

import (
	"context"
	"strings"

	"github.com/OGaCu/madventure/internal/storage"
)

// CompleteInput carries the optional proof attached to a completion.
type CompleteInput struct {
	Photo string // URI
	Notes string
}

type CompleteResult struct {
	Snapshot Snapshot
	Quest    storage.Quest

	// Completed is false when the id is unknown or the quest was already
	// completed; nothing changes in that case.
	Completed       bool
	XPAwarded       int
	LevelBefore     int
	LevelAfter      int
	LevelUp         bool
	NewAchievements []storage.Achievement
}

func optionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// CompleteQuest marks a current quest completed, awards its XP, recomputes
// the level and unlocks any achievements the completion satisfies.
func (s *Service) CompleteQuest(ctx context.Context, id string, in CompleteInput) (*CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	levelBefore := s.profile.Level
	i := indexOfQuest(s.quests, id)
	if i < 0 || Status(s.quests[i].Status) == StatusCompleted {
		res := &CompleteResult{
			Snapshot:    s.snapshotLocked(),
			LevelBefore: levelBefore,
			LevelAfter:  levelBefore,
		}
		if i >= 0 {
			res.Quest = s.quests[i].Clone()
		}
		return res, nil
	}

	now := s.now()
	quests := storage.CloneQuests(s.quests)
	q := &quests[i]
	q.Status = string(StatusCompleted)
	completedAt := now
	q.CompletedAt = &completedAt
	q.Photo = optionalText(in.Photo)
	q.Notes = optionalText(in.Notes)

	profile := s.profile.Clone()
	profile.XP += q.XPReward
	syncLevel(&profile)
	profile.TotalQuestsCompleted++

	updated, unlocked := EvaluateAchievements(profile, quests, now)
	profile.Achievements = updated

	if err := s.commit(ctx, quests, profile); err != nil {
		return nil, err
	}

	s.logger.Printf("quest completed: %s %q +%d xp (level %d -> %d)", q.ID, q.Title, q.XPReward, levelBefore, profile.Level)
	for _, a := range unlocked {
		s.logger.Printf("achievement unlocked: %s %q", a.ID, a.Title)
	}

	return &CompleteResult{
		Snapshot:        s.snapshotLocked(),
		Quest:           q.Clone(),
		Completed:       true,
		XPAwarded:       q.XPReward,
		LevelBefore:     levelBefore,
		LevelAfter:      profile.Level,
		LevelUp:         profile.Level > levelBefore,
		NewAchievements: unlocked,
	}, nil
}
