package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

var journalPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "journey-cli",
	Short:   "A tool for interacting with journey journals.",
	Long:    `A tool for interacting with journey journals.`,
	Version: journey.Version,
	// RunE: func(cmd *cobra.Command, args []string) error {
	//	return nil
	// },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&journalPath,
		"journal",
		"j",
		"journal.journey",
		"The file path of the journal to work with.",
	)
}
