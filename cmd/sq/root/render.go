package root

import (
	"fmt"
	"io"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/storage"
	"github.com/OGaCu/madventure/internal/ui"
)

func questLine(q storage.Quest) string {
	return fmt.Sprintf("%s %s %s %s %s",
		ui.Muted.Render(ui.ShortID(q.ID)),
		ui.CategoryIcon(q.Category),
		q.Title,
		ui.Muted.Render(fmt.Sprintf("(%d min, %s)", q.Duration, q.Location)),
		ui.Gold.Render(fmt.Sprintf("+%d XP", q.XPReward)),
	)
}

func printQuest(w io.Writer, q storage.Quest) {
	fmt.Fprintln(w, ui.Heading(ui.CategoryIcon(q.Category), q.Title))
	fmt.Fprintln(w, q.Description)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, ui.LabelValue("ID", q.ID))
	fmt.Fprintln(w, ui.LabelValue("Category", q.Category))
	fmt.Fprintln(w, ui.LabelValue("Difficulty", ui.DifficultyText(q.Difficulty)))
	fmt.Fprintln(w, ui.LabelValue(ui.IconClock+" Duration", fmt.Sprintf("%d min", q.Duration)))
	fmt.Fprintln(w, ui.LabelValue(ui.IconPin+" Location", q.Location))
	fmt.Fprintln(w, ui.LabelValue("Reward", ui.Gold.Render(fmt.Sprintf("+%d XP", q.XPReward))))
	fmt.Fprintln(w, ui.LabelValue("Status", ui.StatusText(q.Status)))
	fmt.Fprintln(w, ui.LabelValue("Created", q.CreatedAt.Local().Format("2006-01-02 15:04")))
	if q.CompletedAt != nil {
		fmt.Fprintln(w, ui.LabelValue("Completed", q.CompletedAt.Local().Format("2006-01-02 15:04")))
	}
	if q.Photo != nil {
		fmt.Fprintln(w, ui.LabelValue(ui.IconCamera+" Photo", *q.Photo))
	}
	if q.Notes != nil {
		fmt.Fprintln(w, ui.LabelValue(ui.IconNote+" Notes", *q.Notes))
	}
}

func printUnlocks(w io.Writer, unlocked []storage.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(w, "%s %s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement unlocked:"), a.Icon, a.Title, ui.Muted.Render("("+a.Description+")"))
	}
}

func levelBar(xp int, width int) string {
	into, cost := engine.Progress(xp)
	return fmt.Sprintf("%s %s", ui.ProgressBar(into, cost, width), ui.Muted.Render(fmt.Sprintf("%d/%d", into, cost)))
}
