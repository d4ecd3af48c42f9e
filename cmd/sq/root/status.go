package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, stats and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := svc.Snapshot()
			p := snap.Profile
			current := 0
			for _, q := range snap.Quests {
				if engine.Status(q.Status) == engine.StatusCurrent {
					current++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (%d to next level)", p.XP, p.XPToNextLevel)))
			fmt.Fprintln(out, levelBar(p.XP, 30))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Quests completed:"), p.TotalQuestsCompleted)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Active quests:"), current)
			fmt.Fprintf(out, "- %s %d days %s\n", ui.Key.Render(ui.IconFire+" Current streak:"), p.CurrentStreak, ui.Muted.Render(fmt.Sprintf("(longest %d)", p.LongestStreak)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, engine.CountUnlocked(p.Achievements), len(p.Achievements))))
			for _, a := range p.Achievements {
				if a.UnlockedAt != nil {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, ui.Good.Render(a.Title), ui.Muted.Render(a.UnlockedAt.Local().Format("2006-01-02")))
					continue
				}
				fmt.Fprintf(out, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(a.Title), ui.Muted.Render("("+a.Description+")"))
			}
			return nil
		},
	}

	return cmd
}
