package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/ui"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak <days>",
		Short: "Record your current day streak",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("days is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n < 0 {
				return errors.New("days must be a non-negative integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			days, _ := strconv.Atoi(args[0])
			res, err := svc.SetStreak(ctx, days)
			if err != nil {
				return err
			}
			p := res.Snapshot.Profile
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d days %s\n", ui.Good.Render(ui.IconFire+" Streak set:"), p.CurrentStreak, ui.Muted.Render(fmt.Sprintf("(longest %d)", p.LongestStreak)))
			printUnlocks(out, res.NewAchievements)
			return nil
		},
	}

	return cmd
}

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Change your display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Rename(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Name", snap.Profile.Name))
			return nil
		},
	}

	return cmd
}

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all quests and start a fresh profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("this erases every quest and achievement; pass --force to confirm")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Progress reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm the reset")

	return cmd
}
