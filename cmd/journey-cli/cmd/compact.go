package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

var (
	compactTarget string
	compactBegin  uint64
	compactEnd    uint64
)

// compactCmd represents the compact command.
var compactCmd = &cobra.Command{
	Use:          "compact",
	Short:        "Compacts the journal into a second journal file.",
	Long:         `Compacts the journal into a second journal file. Only the newest record of every name within the stamp window is carried over, shadowed revisions are left behind.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if compactTarget == "" {
			return fmt.Errorf("a target file path is required, use --target")
		}

		journal, err := journey.New(journalPath)
		if err != nil {
			return err
		}
		if err := journal.Load(compactBegin, compactEnd); err != nil {
			return err
		}
		if err := journal.Compact(compactTarget); err != nil {
			return err
		}
		fmt.Printf("Compacted %d records from %q into %q.\n", journal.Len(), journalPath, compactTarget)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compactCmd)

	compactCmd.Flags().StringVarP(
		&compactTarget,
		"target",
		"t",
		"",
		"The file path of the journal to compact into.",
	)

	compactCmd.Flags().Uint64VarP(
		&compactBegin,
		"begin",
		"b",
		0,
		"The begin of the stamp window, inclusive.",
	)

	compactCmd.Flags().Uint64VarP(
		&compactEnd,
		"end",
		"e",
		math.MaxUint64,
		"The end of the stamp window, inclusive.",
	)
}
