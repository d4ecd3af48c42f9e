package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/OGaCu/madventure/internal/storage"
)

type DeleteResult struct {
	Snapshot Snapshot
	Deleted  bool
}

// DeleteQuest removes the quest with the given id. Unknown ids are a no-op.
func (s *Service) DeleteQuest(ctx context.Context, id string) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]storage.Quest, 0, len(s.quests))
	for _, q := range s.quests {
		if q.ID == id {
			continue
		}
		next = append(next, q.Clone())
	}
	if len(next) == len(s.quests) {
		return &DeleteResult{Snapshot: s.snapshotLocked()}, nil
	}

	if err := s.commit(ctx, next, s.profile.Clone()); err != nil {
		return nil, err
	}
	s.logger.Printf("quest deleted: %s", id)
	return &DeleteResult{Snapshot: s.snapshotLocked(), Deleted: true}, nil
}

type AchievementsResult struct {
	Snapshot        Snapshot
	NewAchievements []storage.Achievement
}

// RecomputeAchievements evaluates locked achievements against the current
// state and persists any new unlocks.
func (s *Service) RecomputeAchievements(ctx context.Context) (*AchievementsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked(ctx, s.profile.Clone())
}

func (s *Service) recomputeLocked(ctx context.Context, profile storage.Profile) (*AchievementsResult, error) {
	updated, unlocked := EvaluateAchievements(profile, s.quests, s.now())
	profile.Achievements = updated
	if err := s.commit(ctx, storage.CloneQuests(s.quests), profile); err != nil {
		return nil, err
	}
	for _, a := range unlocked {
		s.logger.Printf("achievement unlocked: %s %q", a.ID, a.Title)
	}
	return &AchievementsResult{Snapshot: s.snapshotLocked(), NewAchievements: unlocked}, nil
}

// SetStreak records the externally tracked day streak, raises the longest
// streak when exceeded and re-evaluates achievements.
func (s *Service) SetStreak(ctx context.Context, days int) (*AchievementsResult, error) {
	if days < 0 {
		return nil, fmt.Errorf("streak must not be negative: %d", days)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile.Clone()
	profile.CurrentStreak = days
	if days > profile.LongestStreak {
		profile.LongestStreak = days
	}
	return s.recomputeLocked(ctx, profile)
}

// Rename changes the profile's display name.
func (s *Service) Rename(ctx context.Context, name string) (*Snapshot, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, fmt.Errorf("name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile.Clone()
	profile.Name = n
	if err := s.commit(ctx, storage.CloneQuests(s.quests), profile); err != nil {
		return nil, err
	}
	snap := s.snapshotLocked()
	return &snap, nil
}
