package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OGaCu/madventure/internal/ui"
)

const Version = "0.1.0"

var (
	dbPathFlag  string
	envFileFlag string
)

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "Side quests: micro-adventures with XP, levels and achievements",
	Long:          "sq hands out small real-world quests, tracks completions and turns them into experience, levels and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Database path (overrides SIDEQUEST_DB)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "Optional dotenv file")

	rootCmd.AddCommand(
		newNewCmd(),
		newListCmd(),
		newShowCmd(),
		newDoCmd(),
		newDeleteCmd(),
		newStatusCmd(),
		newStreakCmd(),
		newRenameCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
