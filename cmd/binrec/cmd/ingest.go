package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/schema"
	"github.com/ssargent/binrec/pkg/storage"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Load a flat record file into a record store",
	Long: `Split a file into fixed-size records, validate each one against the
record type and append them to a local record store. Every record is
assigned a time-ordered id.

Example:
  binrec ingest DOOM.DIR --schema doom.yaml --type DirEntry --store ./records`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, layout, err := loadLayout(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			cmd.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		storePath, _ := cmd.Flags().GetString("store")
		store, err := storage.Open(storePath)
		if err != nil {
			cmd.Printf("Error opening record store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		count, err := ingestRecords(store, layout, data)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Ingested %d records into %s\n", count, storePath)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("type", "t", "", "Record type of the file contents (required)")
	ingestCmd.Flags().String("store", "./records", "Record store directory")
	ingestCmd.MarkFlagRequired("type")
}

// ingestRecords validates and appends every record slice in data
func ingestRecords(store *storage.RecordStore, layout *schema.Layout, data []byte) (int, error) {
	size := layout.Size()
	if size == 0 {
		return 0, fmt.Errorf("type %s has no packed fields", layout.Name())
	}
	if len(data)%size != 0 {
		return 0, fmt.Errorf("file holds %d bytes, not a multiple of the %d byte record size", len(data), size)
	}

	count := len(data) / size
	for i := 0; i < count; i++ {
		chunk := data[i*size : (i+1)*size]
		if _, err := layout.Unpack(chunk); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := store.Append(chunk); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return count, nil
}
