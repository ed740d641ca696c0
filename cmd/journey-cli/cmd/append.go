package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

var (
	appendName  string
	appendData  string
	appendInput string
	appendStamp uint64
	appendSync  bool
)

// appendCmd represents the append command.
var appendCmd = &cobra.Command{
	Use:          "append",
	Short:        "Appends a record to the journal.",
	Long:         `Appends a record to the journal. The payload comes from --data, from the file given with --input, or from stdin.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appendName == "" {
			return fmt.Errorf("a record name is required, use --name")
		}

		var data []byte
		switch {
		case cmd.Flags().Changed("data"):
			data = []byte(appendData)
		case appendInput != "":
			var err error
			data, err = os.ReadFile(appendInput) //nolint:gosec // The user chooses which file to append.
			if err != nil {
				return err
			}
		default:
			var err error
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
		}

		stamp := journey.Now()
		if cmd.Flags().Changed("stamp") {
			stamp = appendStamp
		}

		var options []journey.JournalOption
		if appendSync {
			options = append(options, journey.WithSyncOnAppend())
		}
		journal, err := journey.New(journalPath, options...)
		if err != nil {
			return err
		}
		if err := journal.AppendAt(appendName, data, stamp); err != nil {
			return err
		}
		fmt.Printf("Appended %q with stamp %d to %q.\n", appendName, stamp, journalPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)

	appendCmd.Flags().StringVarP(
		&appendName,
		"name",
		"n",
		"",
		"The name to append the record under.",
	)

	appendCmd.Flags().StringVarP(
		&appendData,
		"data",
		"d",
		"",
		"The record payload as a literal string.",
	)

	appendCmd.Flags().StringVarP(
		&appendInput,
		"input",
		"i",
		"",
		"The file to read the record payload from.",
	)

	appendCmd.Flags().Uint64VarP(
		&appendStamp,
		"stamp",
		"s",
		0,
		"The stamp to append the record with. Defaults to the current wall-clock time.",
	)

	appendCmd.Flags().BoolVar(
		&appendSync,
		"sync",
		false,
		"Flush the journal to stable storage before returning.",
	)
}
