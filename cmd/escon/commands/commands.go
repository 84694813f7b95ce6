package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evbase/escore/version"
)

// NewRootCmd creates the escon root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escon",
		Short: "Interactive console for the escore event system",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		NewConsoleCommand(),
		NewVersionCommand(),
	)

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetVersionInfo().String())
		},
	}
}
