package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/app"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the compiled-in computation modules",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tINPUTS\tOUTPUTS\tDESCRIPTION")
		for _, m := range app.CoreModules() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				m.Name(),
				strings.Join(m.RequiredInputs(), ", "),
				strings.Join(m.OutputParams(), ", "),
				m.Description(),
			)
		}
		w.Flush()
	},
}
