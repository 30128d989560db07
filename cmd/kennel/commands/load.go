package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dyluth/kennel/internal/printer"
	"github.com/dyluth/kennel/pkg/shelter"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Import outcome records from a CSV file",
	Long: `Import animal outcome records from a CSV file into the store.

The first row must be a header; each column becomes a record field with
the header name. An "animal_id" column, when present, is used as the
record's unique key; otherwise an id is generated per record.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return printer.Error("Cannot open CSV file", err.Error(), nil)
	}
	defer f.Close()

	imported, skipped, err := importCSV(ctx, store, f)
	if err != nil {
		return printer.Error("Import failed", err.Error(), nil)
	}

	printer.Success("Imported %d record(s)\n", imported)
	if skipped > 0 {
		printer.Warning("Skipped %d malformed row(s)\n", skipped)
	}
	return nil
}

// importCSV reads header-keyed records from r and inserts them into the
// store. Rows whose field count does not match the header are skipped
// rather than aborting the import.
func importCSV(ctx context.Context, store *shelter.Client, r io.Reader) (imported, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(row) != len(header) {
			skipped++
			continue
		}

		rec := make(shelter.Record, len(header))
		for i, field := range header {
			if field == "animal_id" {
				rec[shelter.FieldRecordID] = row[i]
				continue
			}
			rec[field] = row[i]
		}

		if err := store.Create(ctx, rec); err != nil {
			return imported, skipped, fmt.Errorf("failed to insert row %d: %w", imported+skipped+1, err)
		}
		imported++
	}

	return imported, skipped, nil
}
