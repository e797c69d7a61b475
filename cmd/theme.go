package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/store"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the saved chart theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var th store.Theme
	switch {
	case len(args) == 0:
		th, err = s.Theme()
	case args[0] == "toggle":
		th, err = s.ToggleTheme()
	default:
		if th, err = store.ParseTheme(args[0]); err == nil {
			err = s.SetTheme(th)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), th)
	return nil
}
