package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show quest details",
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

			q, ok := svc.Quest(svc.MatchID(args[0]))
			if !ok {
				return fmt.Errorf("quest %s not found", args[0])
			}
			printQuest(cmd.OutOrStdout(), q)
			return nil
		},
	}

	return cmd
}
