package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Provides detailed information about the journal.",
	Long:         `Provides detailed information about the journal. Every record is listed from the newest to the oldest, including revisions which are shadowed by newer records of the same name.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, err := journey.OpenScanner(journalPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := scanner.Close(); err != nil {
				fmt.Println(err)
			}
		}()

		records := 0
		for scanner.Next() {
			records++
			fmt.Printf("Name:   %s\n", scanner.Value().Name)
			fmt.Printf("Stamp:  %d\n", scanner.Value().Stamp)
			fmt.Printf("Offset: %d\n", scanner.Value().Offset)
			fmt.Printf("Size:   %d\n", scanner.Value().Size)
			fmt.Println()
		}
		if err := scanner.Err(); err != nil && !errors.Is(err, journey.ErrRecordNone) {
			return err
		}
		fmt.Printf("Records: %d\n", records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// describeCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// describeCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}
