package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/QLYYLQ/iostub/errors"
	"github.com/QLYYLQ/iostub/logger"
	"github.com/QLYYLQ/iostub/registry"
	"github.com/QLYYLQ/iostub/stubgen"
)

var (
	flagOutput    string
	flagConfig    string
	flagWatch     bool
	flagVerbosity int
	flagJSON      bool

	v = viper.New()
)

// RootCmd is the iostub entry point: print the registry summary,
// generate the stub, print the resulting path.
var RootCmd = &cobra.Command{
	Use:   "iostub",
	Short: "Generate the IO.load() type-stub file",
	Long: `iostub generates Mapping.pyi, the type-stub declaration for the
CLTrainingFramework IO registry.

The stub gives static analysis tooling one @overload per modality, so
IO.load() calls narrow to the concrete return type of the handlers
registered for that modality's suffixes. Output is deterministic:
an unchanged registry regenerates byte-identical text.

Examples:
  iostub                         # Summary + generate into the working directory
  iostub -o pkg/io               # Generate into a directory
  iostub -c iostub.toml          # Overlay custom type tables
  iostub -c iostub.toml --watch  # Regenerate whenever the tables change
  iostub check                   # Exit 1 when Mapping.pyi is stale`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(flagVerbosity, flagJSON); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output directory for the stub file (default: working directory)")
	RootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML file overlaying the built-in type tables")
	RootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")
	RootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "JSON log output")
	RootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the config file and regenerate on change (requires --config)")

	// Environment binding: IOSTUB_OUTPUT and IOSTUB_CONFIG, flags win
	v.SetEnvPrefix("IOSTUB")
	v.AutomaticEnv()
	_ = v.BindPFlag("output", RootCmd.PersistentFlags().Lookup("output"))
	_ = v.BindPFlag("config", RootCmd.PersistentFlags().Lookup("config"))

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(VersionCmd)
}

// newGenerator builds the generator from the resolved config path and
// the framework's default registry population.
func newGenerator(configPath string) (*stubgen.Generator, error) {
	cfg, err := stubgen.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return stubgen.New(cfg, registry.Default()), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outputDir := v.GetString("output")
	configPath := v.GetString("config")

	if flagWatch && configPath == "" {
		return errors.NewInvalidRequestError("--watch requires --config")
	}

	gen, err := newGenerator(configPath)
	if err != nil {
		return err
	}

	// pterm styling is terminal output; in JSON log mode the summary
	// goes out as plain text instead.
	if flagJSON {
		fmt.Print(gen.SummaryString())
	} else {
		gen.PrintSummary()
	}

	path, err := gen.Generate(outputDir)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Stub file generated: %s\n", path)

	if !flagWatch {
		return nil
	}

	cw, err := stubgen.NewConfigWatcher(configPath, func(changedPath string) {
		regen, err := newGenerator(changedPath)
		if err != nil {
			logger.Logger.Errorw("Config reload failed",
				logger.FieldPath, changedPath,
				logger.FieldError, err)
			return
		}
		path, err := regen.Generate(outputDir)
		if err != nil {
			logger.Logger.Errorw("Regeneration failed",
				logger.FieldError, err)
			return
		}
		pterm.Success.Printf("Stub file regenerated: %s\n", path)
	})
	if err != nil {
		return err
	}
	defer cw.Stop()
	cw.Start()

	pterm.Info.Printf("Watching %s for changes (Ctrl+C to stop)\n", configPath)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	pterm.Info.Println("Stopping watch")

	return nil
}
