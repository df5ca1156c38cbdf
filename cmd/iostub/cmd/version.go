package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/QLYYLQ/iostub/version"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		pterm.Println(info.String())
		pterm.Printf("  go: %s, platform: %s\n", info.GoVersion, info.Platform)
	},
}
