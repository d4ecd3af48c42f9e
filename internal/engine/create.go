package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/OGaCu/madventure/internal/storage"
)

type AddResult struct {
	Snapshot Snapshot
	Quest    storage.Quest
	Added    bool // false when a quest with the same id already exists
}

// Generate draws a quest for f without adding it. fallback reports that no
// template matched and the whole catalog was used.
func (s *Service) Generate(f Filter) (q storage.Quest, fallback bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, fallback = s.gen.Draw(f)
	if fallback {
		s.logger.Printf("no template matched filter %+v; drew from full catalog", f)
	}
	return q, fallback
}

// AddQuest appends q to the quest list as a current quest. Difficulty is
// re-derived from duration and completion fields are cleared.
func (s *Service) AddQuest(ctx context.Context, q storage.Quest) (*AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q = q.Clone()
	if strings.TrimSpace(q.ID) == "" {
		q.ID = uuid.NewString()
	}
	if indexOfQuest(s.quests, q.ID) >= 0 {
		return &AddResult{Snapshot: s.snapshotLocked(), Quest: q}, nil
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.now()
	}
	q.Difficulty = string(DifficultyForDuration(q.Duration))
	q.Status = string(StatusCurrent)
	q.CompletedAt = nil
	q.Photo = nil
	q.Notes = nil

	next := append(storage.CloneQuests(s.quests), q)
	if err := s.commit(ctx, next, s.profile.Clone()); err != nil {
		return nil, err
	}
	s.logger.Printf("quest added: %s %q", q.ID, q.Title)

	return &AddResult{Snapshot: s.snapshotLocked(), Quest: q.Clone(), Added: true}, nil
}
