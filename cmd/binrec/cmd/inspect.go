package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/schemafile"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <schema.yaml>",
	Short: "Show the compiled layout of every record type",
	Long: `Compile a YAML schema document and print the layout of every record
type it declares: byte offsets, field widths and the total record size.

Example:
  binrec inspect doom.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		set, err := schemafile.Load(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		printLayouts(cmd.OutOrStdout(), set)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// printLayouts writes a human-readable summary of every type in the set
func printLayouts(w io.Writer, set *schemafile.Set) {
	for i, name := range set.Names() {
		layout, err := set.Layout(name)
		if err != nil {
			continue
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s (%d bytes)", layout.Name(), layout.Size())
		if doc := set.Doc(name); doc != "" {
			fmt.Fprintf(w, " - %s", doc)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "  %6s %6s  %-8s %s\n", "offset", "width", "type", "field")
		for _, f := range layout.Fields() {
			fieldName := f.Name
			if fieldName == "" {
				fieldName = "-"
			}
			fmt.Fprintf(w, "  %6d %6d  %-8s %s\n", f.Offset, f.Width, f.Kind, fieldName)
		}
	}
}
