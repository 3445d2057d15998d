package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings carries the resolved persistent options. Values come from
// flags first, then PM_-prefixed environment variables.
type settings struct {
	logLevel  string
	logFormat string
}

var cli settings

var rootCmd = &cobra.Command{
	Use:   "pm",
	Short: "pm runs declarative theory programs",
	Long: `pm evaluates theory programs: HCL files that seed parameters,
derive new ones from formulas, and run computation modules over a shared
parameter registry. The final state and the per-module report can be
exported as JSON or YAML.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: resolveSettings,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "logging level: 'debug', 'info', 'warn', or 'error'")
	rootCmd.PersistentFlags().String("log-format", "text", "log output format: 'text' or 'json'")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveSettings binds the persistent flags to viper and validates the
// resolved values. Environment variables use the PM_ prefix, so
// PM_LOG_LEVEL=debug works without flags.
func resolveSettings(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix("PM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag("log-level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("log-format", cmd.Flags().Lookup("log-format")); err != nil {
		return err
	}

	cli.logLevel = strings.ToLower(v.GetString("log-level"))
	switch cli.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return &usageError{msg: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cli.logFormat = strings.ToLower(v.GetString("log-format"))
	if cli.logFormat != "text" && cli.logFormat != "json" {
		return &usageError{msg: "invalid log-format: must be 'text' or 'json'"}
	}

	return nil
}
