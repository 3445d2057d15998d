package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/app"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/hcl"
)

var (
	exportFlag string
	dryRunFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Execute a theory program",
	Long: `Execute a theory program from a single .hcl file or a directory
of .hcl files: seed the registry, run the selected modules in dependency
order, print the run report, and write the export file.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return &usageError{msg: "run requires exactly one PROGRAM argument"}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.NewConfig(app.Config{
			ProgramPath: args[0],
			LogLevel:    cli.logLevel,
			LogFormat:   cli.logFormat,
			ExportPath:  exportFlag,
			DryRun:      dryRunFlag,
		})
		if err != nil {
			return &usageError{msg: err.Error()}
		}

		return runProgram(cfg)
	},
}

func init() {
	runCmd.Flags().StringVar(&exportFlag, "export", "", "export file path, overriding the program's export block")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "run the program but skip writing the export file")
}

// runProgram builds and runs the app. NewApp panics on fatal startup
// errors (unloadable program, incoherent catalog), so we recover here to
// give the user a clean message instead of a stack trace.
func runProgram(cfg *app.Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()

	pmApp := app.NewApp(os.Stdout, cfg, hcl.NewLoader())
	return pmApp.Run(rootCmd.Context())
}
