package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/store"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print the example task definitions",
	Long:  `Print the example task definitions, e.g. "gantt example > plan.txt".`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), store.ExampleProgram)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
