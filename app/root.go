// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memoriam",
	Short: "Memoriam is a web-based memorial tribute site",
	Long: `Memoriam is a server-rendered memorial tribute site where visitors
browse and search tribute pages, leave condolence messages, and like them.
Administrators curate the hero banner and remove tributes.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
