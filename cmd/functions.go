package main

import (
	"fmt"

	"github.com/cwbudde/genalg/internal/bench"
	"github.com/spf13/cobra"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List available benchmark functions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range bench.Names() {
			fn, err := bench.Lookup(name, 0)
			if err != nil {
				continue
			}
			low, up := fn.Bounds()
			domain := "float"
			if fn.Integer() {
				domain = "int"
			}
			fmt.Printf("%-12s %s, default dim %d, bounds [%g, %g], optimum %g\n",
				name, domain, fn.Dim(), low[0], up[0], fn.Optimum())
		}
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
