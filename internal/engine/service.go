package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/OGaCu/madventure/internal/storage"
)

// DefaultPlayerName names a freshly initialised profile.
const DefaultPlayerName = "Adventurer"

// Store is the durable home of the quest list and the profile.
type Store interface {
	LoadQuests(ctx context.Context) ([]storage.Quest, bool, error)
	LoadProfile(ctx context.Context) (storage.Profile, bool, error)
	Save(ctx context.Context, quests []storage.Quest, profile storage.Profile) error
	Clear(ctx context.Context) error
}

// Snapshot is a detached copy of the service state.
type Snapshot struct {
	Quests  []storage.Quest
	Profile storage.Profile
}

// Service owns the quest list and the profile. Every mutation computes the
// next state, persists it, and only then replaces the in-memory copy.
type Service struct {
	mu sync.Mutex

	store      Store
	gen        *Generator
	now        func() time.Time
	logger     *log.Logger
	playerName string

	quests  []storage.Quest
	profile storage.Profile
}

type Option func(*Service)

func WithGenerator(g *Generator) Option {
	return func(s *Service) { s.gen = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPlayerName sets the name used when a fresh profile is created.
func WithPlayerName(name string) Option {
	return func(s *Service) {
		if n := strings.TrimSpace(name); n != "" {
			s.playerName = n
		}
	}
}

// NewService loads saved state from store, or starts fresh when none exists.
func NewService(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     log.New(io.Discard, "", 0),
		playerName: DefaultPlayerName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewGenerator(Catalog(), nil)
	}
	s.gen.now = s.now

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewProfile returns a level 1 profile with every achievement locked.
func NewProfile(name string) storage.Profile {
	p := storage.Profile{
		Name:         name,
		Achievements: DefaultAchievements(),
	}
	syncLevel(&p)
	return p
}

func syncLevel(p *storage.Profile) {
	p.Level, p.XPToNextLevel = LevelFor(p.XP)
}

func (s *Service) load(ctx context.Context) error {
	quests, _, err := s.store.LoadQuests(ctx)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Printf("discarding saved quests: %v", err)
		quests = nil
	case err != nil:
		return err
	}

	profile, ok, err := s.store.LoadProfile(ctx)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Printf("discarding saved profile: %v", err)
		ok = false
	case err != nil:
		return err
	}
	if !ok {
		profile = NewProfile(s.playerName)
	} else {
		if strings.TrimSpace(profile.Name) == "" {
			profile.Name = s.playerName
		}
		profile.Achievements = NormalizeAchievements(profile.Achievements)
		// The stored level is a cache of LevelFor(xp).
		syncLevel(&profile)
	}

	if quests == nil {
		quests = []storage.Quest{}
	}
	s.quests = quests
	s.profile = profile
	return nil
}

// commit persists the next state and adopts it. Caller holds s.mu.
func (s *Service) commit(ctx context.Context, quests []storage.Quest, profile storage.Profile) error {
	if err := s.store.Save(ctx, quests, profile); err != nil {
		return err
	}
	s.quests = quests
	s.profile = profile
	return nil
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Quests:  storage.CloneQuests(s.quests),
		Profile: s.profile.Clone(),
	}
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) Profile() storage.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

func (s *Service) Quests() []storage.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.CloneQuests(s.quests)
}

// QuestsByStatus returns the quests with the given status in list order.
func (s *Service) QuestsByStatus(st Status) []storage.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.Quest
	for _, q := range s.quests {
		if Status(q.Status) == st {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Quest returns the quest with the given id.
func (s *Service) Quest(id string) (storage.Quest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfQuest(s.quests, id)
	if i < 0 {
		return storage.Quest{}, false
	}
	return s.quests[i].Clone(), true
}

// MatchID resolves an id or id prefix. Exact matches win; a prefix resolves
// only when it is unambiguous. The input is returned unchanged otherwise.
func (s *Service) MatchID(input string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := strings.TrimSpace(input)
	if in == "" || indexOfQuest(s.quests, in) >= 0 {
		return in
	}
	match := ""
	for _, q := range s.quests {
		if strings.HasPrefix(q.ID, in) {
			if match != "" {
				return in
			}
			match = q.ID
		}
	}
	if match == "" {
		return in
	}
	return match
}

// Reset wipes saved state and starts over with a fresh profile.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.quests = []storage.Quest{}
	s.profile = NewProfile(s.playerName)
	s.logger.Printf("state reset")
	return nil
}

func indexOfQuest(quests []storage.Quest, id string) int {
	for i := range quests {
		if quests[i].ID == id {
			return i
		}
	}
	return -1
}
