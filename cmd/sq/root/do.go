package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/ui"
)

func newDoCmd() *cobra.Command {
	var photo string
	var notes string

	cmd := &cobra.Command{
		Use:     "do <id>",
		Aliases: []string{"complete"},
		Short:   "Complete a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			res, err := svc.CompleteQuest(ctx, svc.MatchID(args[0]), engine.CompleteInput{Photo: photo, Notes: notes})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Completed {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Nothing to complete for %s.", args[0])))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Quest complete!"), res.Quest.Title, ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, fmt.Sprintf("You've reached level %d!", res.LevelAfter))
			}
			printUnlocks(out, res.NewAchievements)
			return nil
		},
	}

	cmd.Flags().StringVar(&photo, "photo", "", "Photo URI to attach")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes about how it went")

	return cmd
}
