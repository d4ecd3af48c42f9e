package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleQuest() Quest {
	done := created.Add(90 * time.Minute)
	photo := "data:image/png;base64,AAAA"
	return Quest{
		ID:          "q-1",
		Title:       "Quick Walk",
		Description: "Take a 5-minute walk around the block",
		Category:    "explore",
		Difficulty:  "easy",
		Duration:    5,
		Location:    "outdoor",
		Status:      "completed",
		CreatedAt:   created,
		CompletedAt: &done,
		Photo:       &photo,
		XPReward:    20,
	}
}

func TestDecodeQuestsParsesISOTimestamps(t *testing.T) {
	raw := `[{"id":"a","title":"Quick Chat","description":"Say hi","category":"social",
		"difficulty":"easy","duration":2,"location":"any","status":"completed",
		"createdAt":"2024-03-01T10:00:00.000Z","completedAt":"2024-03-01T11:30:00.250Z",
		"notes":"fun","xpReward":15}]`

	quests, err := DecodeQuests([]byte(raw))
	require.NoError(t, err)
	require.Len(t, quests, 1)

	q := quests[0]
	assert.True(t, created.Equal(q.CreatedAt))
	require.NotNil(t, q.CompletedAt)
	assert.True(t, time.Date(2024, 3, 1, 11, 30, 0, 250_000_000, time.UTC).Equal(*q.CompletedAt))
	assert.Nil(t, q.Photo)
	require.NotNil(t, q.Notes)
	assert.Equal(t, "fun", *q.Notes)
	assert.Equal(t, 15, q.XPReward)
}

func TestDecodeQuestsRejectsMalformed(t *testing.T) {
	bad := []string{
		`not json`,
		`{"id":"a"}`,
		`[{"title":"no id","createdAt":"2024-03-01T10:00:00Z"}]`,
		`[{"id":"a","createdAt":"yesterday"}]`,
		`[{"id":"a","createdAt":""}]`,
		`[{"id":"a","createdAt":"2024-03-01T10:00:00Z","completedAt":"soon"}]`,
	}
	for _, raw := range bad {
		_, err := DecodeQuests([]byte(raw))
		assert.ErrorIs(t, err, ErrCorrupt, raw)
	}
}

func TestEncodeQuestsFieldNames(t *testing.T) {
	q := sampleQuest()
	q.CompletedAt = nil
	q.Photo = nil
	data, err := EncodeQuests([]Quest{q})
	require.NoError(t, err)

	var recs []map[string]any
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "2024-03-01T10:00:00Z", rec["createdAt"])
	assert.EqualValues(t, 20, rec["xpReward"])
	assert.NotContains(t, rec, "completedAt")
	assert.NotContains(t, rec, "photo")
}

func TestEncodeQuestsEmptyIsArray(t *testing.T) {
	data, err := EncodeQuests(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestDecodeProfile(t *testing.T) {
	raw := `{"name":"Tess","level":2,"xp":120,"xpToNextLevel":130,"totalQuestsCompleted":3,
		"currentStreak":1,"longestStreak":4,"achievements":[
		{"id":"1","title":"First Steps","description":"Complete your first quest","icon":"🎯","unlockedAt":"2024-03-01T10:00:00.000Z"},
		{"id":"2","title":"Explorer","description":"Complete 10 quests","icon":"🗺️"}]}`

	p, err := DecodeProfile([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "Tess", p.Name)
	assert.Equal(t, 120, p.XP)
	assert.Equal(t, 4, p.LongestStreak)
	require.Len(t, p.Achievements, 2)
	require.True(t, p.Achievements[0].Unlocked())
	assert.True(t, created.Equal(*p.Achievements[0].UnlockedAt))
	assert.False(t, p.Achievements[1].Unlocked())
}

func TestDecodeProfileRejectsMalformed(t *testing.T) {
	bad := []string{
		`[]`,
		`{"xp":-1}`,
		`{"totalQuestsCompleted":-3}`,
		`{"currentStreak":-1}`,
		`{"longestStreak":-7}`,
		`{"achievements":[{"title":"no id"}]}`,
		`{"achievements":[{"id":"1","unlockedAt":"later"}]}`,
	}
	for _, raw := range bad {
		_, err := DecodeProfile([]byte(raw))
		assert.True(t, errors.Is(err, ErrCorrupt), raw)
	}
}

func TestSnapshotRepoRoundTrip(t *testing.T) {
	repo := NewSnapshotRepo(openTestDB(t))
	ctx := context.Background()

	_, ok, err := repo.LoadQuests(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	unlocked := created.Add(time.Hour)
	profile := Profile{
		Name: "Tess", Level: 1, XP: 20, XPToNextLevel: 80, TotalQuestsCompleted: 1,
		Achievements: []Achievement{{ID: "1", Title: "First Steps", Icon: "🎯", UnlockedAt: &unlocked}},
	}
	quests := []Quest{sampleQuest()}
	require.NoError(t, repo.Save(ctx, quests, profile))

	gotQuests, ok, err := repo.LoadQuests(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, quests, gotQuests)

	gotProfile, ok, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile, gotProfile)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.LoadQuests(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotRepoCorruptBlob(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewBlobRepo(db).Put(ctx, QuestsKey, "[{"))

	_, ok, err := NewSnapshotRepo(db).LoadQuests(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.False(t, ok)
}

func TestBlobRepoPutOverwrites(t *testing.T) {
	blobs := NewBlobRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "k", "one"))
	require.NoError(t, blobs.Put(ctx, "k", "two"))
	v, ok, err := blobs.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, blobs.Delete(ctx, "k"))
	require.NoError(t, blobs.Delete(ctx, "k"))
	_, ok, err = blobs.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTxRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := NewBlobRepo(db).WithTx(tx).Put(ctx, "k", "v"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := NewBlobRepo(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTxCommits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		blobs := NewBlobRepo(db).WithTx(tx)
		if err := blobs.Put(ctx, "a", "1"); err != nil {
			return err
		}
		return blobs.Put(ctx, "b", "2")
	})
	require.NoError(t, err)

	for _, k := range []string{"a", "b"} {
		_, ok, err := NewBlobRepo(db).Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok, k)
	}
}

func TestResolveDBPath(t *testing.T) {
	t.Setenv("HOME", "/home/tess")

	p, err := ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, "/home/tess/.madventure.db", p)

	p, err = ResolveDBPath("~/games/sq.db")
	require.NoError(t, err)
	assert.Equal(t, "/home/tess/games/sq.db", p)

	p, err = ResolveDBPath("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", p)
}
