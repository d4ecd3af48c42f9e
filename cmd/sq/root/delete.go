package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a quest",
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

			res, err := svc.DeleteQuest(ctx, svc.MatchID(args[0]))
			if err != nil {
				return err
			}
			if !res.Deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("No quest %s.", args[0])))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconTrash+" Quest deleted"))
			return nil
		},
	}

	return cmd
}
