package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/ui"
)

func newListCmd() *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List current quests (or completed ones)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, heading := engine.StatusCurrent, "Current Quests"
			if completed {
				status, heading = engine.StatusCompleted, "Completed Quests"
			}
			quests := svc.QuestsByStatus(status)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, fmt.Sprintf("%s (%d)", heading, len(quests))))
			if len(quests) == 0 {
				if completed {
					fmt.Fprintln(out, ui.Muted.Render("No completed quests yet."))
				} else {
					fmt.Fprintln(out, ui.Muted.Render("No active quests. Try `sq new --accept`."))
				}
				return nil
			}
			for _, q := range quests {
				fmt.Fprintln(out, "- "+questLine(q))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Show completed quests")

	return cmd
}
