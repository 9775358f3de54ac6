package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/schema"
	"github.com/ssargent/binrec/pkg/storage"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Print every record in a record store",
	Long: `Scan a local record store in id order, decode each stored buffer with
the record type and print its field values.

Example:
  binrec cat --schema doom.yaml --type DirEntry --store ./records`,
	Run: func(cmd *cobra.Command, args []string) {
		_, layout, err := loadLayout(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		storePath, _ := cmd.Flags().GetString("store")
		store, err := storage.Open(storePath)
		if err != nil {
			cmd.Printf("Error opening record store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		count, err := catRecords(cmd.OutOrStdout(), store, layout)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("%d records\n", count)
	},
}

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().StringP("type", "t", "", "Record type of the stored buffers (required)")
	catCmd.Flags().String("store", "./records", "Record store directory")
	catCmd.MarkFlagRequired("type")
}

// catRecords decodes and prints every record in the store
func catRecords(w io.Writer, store *storage.RecordStore, layout *schema.Layout) (int, error) {
	count := 0
	err := store.Scan(func(id ksuid.KSUID, data []byte) error {
		record, err := layout.Unpack(data)
		if err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
		fmt.Fprintf(w, "%s  %s\n", id, record)
		count++
		return nil
	})
	return count, err
}
