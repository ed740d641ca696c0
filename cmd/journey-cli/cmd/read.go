package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

var (
	readName   string
	readBegin  uint64
	readEnd    uint64
	readOutput string
)

// readCmd represents the read command.
var readCmd = &cobra.Command{
	Use:          "read",
	Short:        "Reads the newest record of a name from the journal.",
	Long:         `Reads the newest record of a name from the journal. The stamp window narrows the view down to older revisions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if readName == "" {
			return fmt.Errorf("a record name is required, use --name")
		}

		journal, err := journey.New(journalPath)
		if err != nil {
			return err
		}
		if err := journal.Load(readBegin, readEnd); err != nil {
			return err
		}
		data, err := journal.Read(readName)
		if err != nil {
			return err
		}

		if readOutput == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(readOutput, data, 0o664) //nolint:gosec // The user chooses where to write.
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVarP(
		&readName,
		"name",
		"n",
		"",
		"The name of the record to read.",
	)

	readCmd.Flags().Uint64VarP(
		&readBegin,
		"begin",
		"b",
		0,
		"The begin of the stamp window, inclusive.",
	)

	readCmd.Flags().Uint64VarP(
		&readEnd,
		"end",
		"e",
		math.MaxUint64,
		"The end of the stamp window, inclusive.",
	)

	readCmd.Flags().StringVarP(
		&readOutput,
		"output",
		"o",
		"",
		"The file to write the record payload to. Defaults to stdout.",
	)
}
