package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/QLYYLQ/iostub/errors"
)

// CheckCmd verifies the generated stub is up to date.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the generated stub is up to date",
	Long: `Check regenerates the stub in memory and compares it with the file
on disk, without writing anything.

Exit codes:
  0 - Stub is up to date
  1 - Stub is missing or out of date (diff shown)`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator(v.GetString("config"))
	if err != nil {
		return err
	}

	result, err := gen.Check(v.GetString("output"))
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Success.Printf("%s is up to date\n", result.Path)
		return nil
	}

	if result.Missing {
		pterm.Warning.Printf("%s does not exist\n", result.Path)
		return errors.Newf("stub is missing - run 'iostub' to generate it")
	}

	pterm.Warning.Printf("%s is out of date:\n", result.Path)
	pterm.Println(result.Diff)
	return errors.Newf("stub is out of date - run 'iostub' to update it")
}
