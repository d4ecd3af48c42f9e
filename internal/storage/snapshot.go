package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	QuestsKey  = "micro-adventure-quests"
	ProfileKey = "micro-adventure-profile"
)

// ErrCorrupt marks a stored blob that cannot be decoded.
var ErrCorrupt = errors.New("corrupt snapshot")

// questRecord is the persisted JSON shape of a Quest. Timestamps travel as
// RFC 3339 strings and are parsed explicitly by decodeQuest.
type questRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Duration    int     `json:"duration"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	XPReward    int     `json:"xpReward"`
}

type profileRecord struct {
	Name                 string              `json:"name"`
	Level                int                 `json:"level"`
	XP                   int                 `json:"xp"`
	XPToNextLevel        int                 `json:"xpToNextLevel"`
	TotalQuestsCompleted int                 `json:"totalQuestsCompleted"`
	CurrentStreak        int                 `json:"currentStreak"`
	LongestStreak        int                 `json:"longestStreak"`
	Achievements         []achievementRecord `json:"achievements"`
}

type achievementRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	UnlockedAt  *string `json:"unlockedAt,omitempty"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp parses a serialized timestamp. RFC 3339 with or without
// fractional seconds is accepted, which also covers JavaScript's toISOString.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrCorrupt)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrCorrupt, s, err)
	}
	return t.UTC(), nil
}

func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func encodeQuest(q Quest) questRecord {
	return questRecord{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Category:    q.Category,
		Difficulty:  q.Difficulty,
		Duration:    q.Duration,
		Location:    q.Location,
		Status:      q.Status,
		CreatedAt:   formatTimestamp(q.CreatedAt),
		CompletedAt: formatOptionalTimestamp(q.CompletedAt),
		Photo:       clonePtr(q.Photo),
		Notes:       clonePtr(q.Notes),
		XPReward:    q.XPReward,
	}
}

func decodeQuest(r questRecord) (Quest, error) {
	if strings.TrimSpace(r.ID) == "" {
		return Quest{}, fmt.Errorf("%w: quest without id", ErrCorrupt)
	}
	createdAt, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return Quest{}, fmt.Errorf("quest %s createdAt: %w", r.ID, err)
	}
	completedAt, err := parseOptionalTimestamp(r.CompletedAt)
	if err != nil {
		return Quest{}, fmt.Errorf("quest %s completedAt: %w", r.ID, err)
	}
	return Quest{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		Duration:    r.Duration,
		Location:    r.Location,
		Status:      r.Status,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
		Photo:       r.Photo,
		Notes:       r.Notes,
		XPReward:    r.XPReward,
	}, nil
}

// EncodeQuests renders quests as the persisted JSON array.
func EncodeQuests(quests []Quest) ([]byte, error) {
	recs := make([]questRecord, 0, len(quests))
	for _, q := range quests {
		recs = append(recs, encodeQuest(q))
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("marshal quests: %w", err)
	}
	return data, nil
}

// DecodeQuests parses a persisted quest array. Any failure wraps ErrCorrupt.
func DecodeQuests(data []byte) ([]Quest, error) {
	var recs []questRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: quests: %v", ErrCorrupt, err)
	}
	out := make([]Quest, 0, len(recs))
	for _, r := range recs {
		q, err := decodeQuest(r)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// EncodeProfile renders p as the persisted JSON object.
func EncodeProfile(p Profile) ([]byte, error) {
	rec := profileRecord{
		Name:                 p.Name,
		Level:                p.Level,
		XP:                   p.XP,
		XPToNextLevel:        p.XPToNextLevel,
		TotalQuestsCompleted: p.TotalQuestsCompleted,
		CurrentStreak:        p.CurrentStreak,
		LongestStreak:        p.LongestStreak,
		Achievements:         make([]achievementRecord, 0, len(p.Achievements)),
	}
	for _, a := range p.Achievements {
		rec.Achievements = append(rec.Achievements, achievementRecord{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  formatOptionalTimestamp(a.UnlockedAt),
		})
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a persisted profile. Any failure wraps ErrCorrupt.
func DecodeProfile(data []byte) (Profile, error) {
	var rec profileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Profile{}, fmt.Errorf("%w: profile: %v", ErrCorrupt, err)
	}
	for _, c := range []struct {
		name  string
		value int
	}{
		{"xp", rec.XP},
		{"totalQuestsCompleted", rec.TotalQuestsCompleted},
		{"currentStreak", rec.CurrentStreak},
		{"longestStreak", rec.LongestStreak},
	} {
		if c.value < 0 {
			return Profile{}, fmt.Errorf("%w: profile %s %d", ErrCorrupt, c.name, c.value)
		}
	}
	p := Profile{
		Name:                 rec.Name,
		Level:                rec.Level,
		XP:                   rec.XP,
		XPToNextLevel:        rec.XPToNextLevel,
		TotalQuestsCompleted: rec.TotalQuestsCompleted,
		CurrentStreak:        rec.CurrentStreak,
		LongestStreak:        rec.LongestStreak,
		Achievements:         make([]Achievement, 0, len(rec.Achievements)),
	}
	for _, a := range rec.Achievements {
		if strings.TrimSpace(a.ID) == "" {
			return Profile{}, fmt.Errorf("%w: achievement without id", ErrCorrupt)
		}
		unlockedAt, err := parseOptionalTimestamp(a.UnlockedAt)
		if err != nil {
			return Profile{}, fmt.Errorf("achievement %s unlockedAt: %w", a.ID, err)
		}
		p.Achievements = append(p.Achievements, Achievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  unlockedAt,
		})
	}
	return p, nil
}

// SnapshotRepo persists the quest list and the profile under two blob keys.
type SnapshotRepo struct {
	db    *sql.DB
	blobs *BlobRepo
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, blobs: NewBlobRepo(db)}
}

// LoadQuests returns the saved quests. ok is false when nothing was saved.
func (r *SnapshotRepo) LoadQuests(ctx context.Context) (quests []Quest, ok bool, err error) {
	raw, ok, err := r.blobs.Get(ctx, QuestsKey)
	if err != nil || !ok {
		return nil, false, err
	}
	quests, err = DecodeQuests([]byte(raw))
	if err != nil {
		return nil, false, err
	}
	return quests, true, nil
}

// LoadProfile returns the saved profile. ok is false when nothing was saved.
func (r *SnapshotRepo) LoadProfile(ctx context.Context) (profile Profile, ok bool, err error) {
	raw, ok, err := r.blobs.Get(ctx, ProfileKey)
	if err != nil || !ok {
		return Profile{}, false, err
	}
	profile, err = DecodeProfile([]byte(raw))
	if err != nil {
		return Profile{}, false, err
	}
	return profile, true, nil
}

// Save writes both blobs in a single transaction.
func (r *SnapshotRepo) Save(ctx context.Context, quests []Quest, profile Profile) error {
	qdata, err := EncodeQuests(quests)
	if err != nil {
		return err
	}
	pdata, err := EncodeProfile(profile)
	if err != nil {
		return err
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		blobs := r.blobs.WithTx(tx)
		if err := blobs.Put(ctx, QuestsKey, string(qdata)); err != nil {
			return err
		}
		return blobs.Put(ctx, ProfileKey, string(pdata))
	})
}

// Clear removes both blobs.
func (r *SnapshotRepo) Clear(ctx context.Context) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		blobs := r.blobs.WithTx(tx)
		if err := blobs.Delete(ctx, QuestsKey); err != nil {
			return err
		}
		return blobs.Delete(ctx, ProfileKey)
	})
}
