package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/query"
	"github.com/ssargent/binrec/pkg/schema"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decode a flat file of fixed-size records",
	Long: `Treat a file as a flat array of fixed-size records, decode each one
and print its field values. Records can be filtered with a simple
comparison expression.

Examples:
  binrec dump DOOM.DIR --schema doom.yaml --type DirEntry
  binrec dump DOOM.DIR --schema doom.yaml --type DirEntry --where "size > 4096" --limit 10`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, layout, err := loadLayout(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		where, _ := cmd.Flags().GetString("where")
		limit, _ := cmd.Flags().GetInt("limit")
		skip, _ := cmd.Flags().GetInt("skip")

		var cond *query.Condition
		if where != "" {
			cond, err = query.Parse(where)
			if err != nil {
				cmd.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			cmd.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		if err := dumpRecords(cmd.OutOrStdout(), layout, data, cond, limit, skip); err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringP("type", "t", "", "Record type to decode (required)")
	dumpCmd.Flags().String("where", "", "Filter expression, e.g. \"size > 4096\"")
	dumpCmd.Flags().Int("limit", 0, "Print at most this many records (0 = no limit)")
	dumpCmd.Flags().Int("skip", 0, "Skip this many records before printing")
	dumpCmd.MarkFlagRequired("type")
}

// dumpRecords decodes data as consecutive fixed-size records and prints the
// ones that pass the optional filter condition.
func dumpRecords(w io.Writer, layout *schema.Layout, data []byte, cond *query.Condition, limit, skip int) error {
	size := layout.Size()
	if size == 0 {
		return fmt.Errorf("type %s has no packed fields", layout.Name())
	}
	if len(data)%size != 0 {
		return fmt.Errorf("file holds %d bytes, not a multiple of the %d byte record size", len(data), size)
	}

	count := len(data) / size
	printed := 0
	for i := 0; i < count; i++ {
		if i < skip {
			continue
		}
		if limit > 0 && printed >= limit {
			break
		}

		record, err := layout.Unpack(data[i*size : (i+1)*size])
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		if cond != nil {
			ok, err := cond.Match(record)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			if !ok {
				continue
			}
		}

		fmt.Fprintf(w, "%6d  %s\n", i, record)
		printed++
	}

	return nil
}
