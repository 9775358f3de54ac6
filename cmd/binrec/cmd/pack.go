package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/binrec/pkg/schema"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <values.yaml>",
	Short: "Encode YAML value maps into packed records",
	Long: `Read a YAML document listing field value maps, encode each map as a
packed record and write the concatenated buffers to a file.

The document lists one map per record:

  records:
    - {offset: 0, size: 108, name: E1M1}
    - {offset: 108, size: 92, name: E1M2}

Example:
  binrec pack entries.yaml --schema doom.yaml --type DirEntry --out DOOM.DIR`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, layout, err := loadLayout(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		doc, err := os.ReadFile(args[0])
		if err != nil {
			cmd.Printf("Error reading values document: %v\n", err)
			os.Exit(1)
		}

		data, err := packRecords(layout, doc)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(out, data, 0644); err != nil {
			cmd.Printf("Error writing output file: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Packed %d records (%d bytes) into %s\n", len(data)/layout.Size(), len(data), out)
	},
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringP("type", "t", "", "Record type to encode (required)")
	packCmd.Flags().StringP("out", "o", "", "Output file for the packed records (required)")
	packCmd.MarkFlagRequired("type")
	packCmd.MarkFlagRequired("out")
}

// packRecords encodes every value map in a YAML values document
func packRecords(layout *schema.Layout, doc []byte) ([]byte, error) {
	if layout.Size() == 0 {
		return nil, fmt.Errorf("type %s has no packed fields", layout.Name())
	}

	var document struct {
		Records []map[string]interface{} `yaml:"records"`
	}
	if err := yaml.Unmarshal(doc, &document); err != nil {
		return nil, fmt.Errorf("failed to parse values document: %w", err)
	}
	if len(document.Records) == 0 {
		return nil, fmt.Errorf("values document declares no records")
	}

	out := make([]byte, 0, len(document.Records)*layout.Size())
	for i, values := range document.Records {
		record, err := layout.NewMap(values)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, record.Pack()...)
	}

	return out, nil
}
