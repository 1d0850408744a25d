package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kelimeci",
	Short: "Vocabulary learning service with spaced-repetition reviews",
	Long: `kelimeci stores a personal English vocabulary with Turkish
translations, schedules spaced-repetition reviews and serves quizzes
and fill-in-the-blank exercises over a REST API.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
