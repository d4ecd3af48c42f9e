package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/ui"
)

func newNewCmd() *cobra.Command {
	var minutes int
	var location string
	var categories []string
	var accept bool

	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"generate", "gen"},
		Short:   "Draw a random quest that fits your time, place and interests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes < 0 {
				return errors.New("time must not be negative")
			}
			loc, err := engine.ParseLocation(location)
			if err != nil {
				return err
			}
			cats, err := engine.ParseCategories(categories)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, fallback := svc.Generate(engine.Filter{TimeAvailable: minutes, Location: loc, Categories: cats})
			out := cmd.OutOrStdout()
			if fallback {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconDice+" Nothing matched those filters; here is a surprise instead."))
			}
			printQuest(out, q)

			if !accept {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render("Run again with --accept to add it to your quests."))
				return nil
			}
			res, err := svc.AddQuest(ctx, q)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconSparkle+" Quest accepted"), ui.Muted.Render(ui.ShortID(res.Quest.ID)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "time", "t", engine.DefaultFilter().TimeAvailable, "Minutes available")
	cmd.Flags().StringVarP(&location, "location", "l", "any", "Location (indoor|outdoor|any)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Categories (explore,social,creative,wellness,learning); empty means all")
	cmd.Flags().BoolVarP(&accept, "accept", "y", false, "Add the generated quest to your list")

	return cmd
}
