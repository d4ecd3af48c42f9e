package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OGaCu/madventure/internal/engine"
)

func setupCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"SIDEQUEST_DB", "SIDEQUEST_PLAYER", "SIDEQUEST_SEED", "SIDEQUEST_VERBOSE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("SIDEQUEST_SEED", "11")

	oldDB, oldEnv := dbPathFlag, envFileFlag
	dbPathFlag = filepath.Join(dir, "sq.db")
	envFileFlag = filepath.Join(dir, "missing.env")
	t.Cleanup(func() { dbPathFlag, envFileFlag = oldDB, oldEnv })
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func currentQuests(t *testing.T) []string {
	t.Helper()
	svc, cleanup, err := openService(context.Background())
	require.NoError(t, err)
	defer cleanup()
	var ids []string
	for _, q := range svc.QuestsByStatus(engine.StatusCurrent) {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestNewWithoutAcceptDoesNotSave(t *testing.T) {
	setupCLI(t)
	out := execute(t, newNewCmd(), "-t", "10")
	assert.Contains(t, out, "--accept")
	assert.Empty(t, currentQuests(t))
}

func TestNewAcceptThenComplete(t *testing.T) {
	setupCLI(t)
	out := execute(t, newNewCmd(), "--accept", "-t", "60", "-c", "social")
	assert.Contains(t, out, "Quest accepted")

	ids := currentQuests(t)
	require.Len(t, ids, 1)

	out = execute(t, newListCmd())
	assert.Contains(t, out, "Current Quests (1)")

	out = execute(t, newDoCmd(), ids[0][:8], "--notes", "went well")
	assert.Contains(t, out, "Quest complete!")
	assert.Contains(t, out, "First Steps")
	assert.Empty(t, currentQuests(t))

	out = execute(t, newDoCmd(), ids[0])
	assert.Contains(t, out, "Nothing to complete")

	out = execute(t, newListCmd(), "--completed")
	assert.Contains(t, out, "Completed Quests (1)")

	out = execute(t, newStatusCmd())
	assert.Contains(t, out, "Adventurer")
	assert.Contains(t, out, "Achievements (1/8)")
}

func TestNewRejectsBadFilters(t *testing.T) {
	setupCLI(t)
	for _, args := range [][]string{
		{"-l", "moon"},
		{"-c", "cooking"},
		{"-t", "-5"},
	} {
		cmd := newNewCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute(), "%v", args)
	}
}

func TestStreakCommandUnlocksStreakMaster(t *testing.T) {
	setupCLI(t)
	out := execute(t, newStreakCmd(), "7")
	assert.Contains(t, out, "Streak Master")

	cmd := newStreakCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-2"})
	assert.Error(t, cmd.Execute())
}
