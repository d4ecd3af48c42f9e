package storage

import "time"

type Quest struct {
	ID          string
	Title       string
	Description string
	Category    string
	Difficulty  string
	Duration    int // minutes
	Location    string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
	Photo       *string
	Notes       *string
	XPReward    int
}

type Profile struct {
	Name                 string
	Level                int
	XP                   int
	XPToNextLevel        int
	TotalQuestsCompleted int
	CurrentStreak        int
	LongestStreak        int
	Achievements         []Achievement
}

type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	UnlockedAt  *time.Time
}

func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

func (a Achievement) Clone() Achievement {
	a.UnlockedAt = clonePtr(a.UnlockedAt)
	return a
}

// Clone returns a copy of q that shares no pointers with it.
func (q Quest) Clone() Quest {
	out := q
	out.CompletedAt = clonePtr(q.CompletedAt)
	out.Photo = clonePtr(q.Photo)
	out.Notes = clonePtr(q.Notes)
	return out
}

// Clone returns a deep copy of p, achievements included.
func (p Profile) Clone() Profile {
	out := p
	out.Achievements = make([]Achievement, len(p.Achievements))
	for i, a := range p.Achievements {
		a.UnlockedAt = clonePtr(a.UnlockedAt)
		out.Achievements[i] = a
	}
	return out
}

func CloneQuests(in []Quest) []Quest {
	out := make([]Quest, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
