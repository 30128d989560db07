package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dyluth/kennel/internal/catalog"
	"github.com/dyluth/kennel/internal/pipeline"
	"github.com/dyluth/kennel/pkg/shelter"
	"github.com/spf13/cobra"
)

var (
	listFilter      string
	listJSON        bool
	listCatalogPath string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records matching a filter",
	Long: `List the records matching a named filter from the catalog.

Shows the same rows and columns the dashboard table would: internal
store fields are stripped and the display schema is fixed.

Use --json for machine-readable output.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", catalog.ResetName, "Filter name (Reset, Water, Mountain, Disaster, ...)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCatalogPath, "catalog", "", "Path to a YAML filter catalog (built-in filters if omitted)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cat, err := loadCatalog(listCatalogPath)
	if err != nil {
		return err
	}

	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rs, err := pipeline.Run(ctx, store, cat, listFilter)
	if err != nil {
		return err
	}

	if len(rs.Rows) == 0 {
		if listJSON {
			fmt.Println("[]")
		} else {
			fmt.Printf("No records match filter %q.\n", listFilter)
		}
		return nil
	}

	if listJSON {
		outputJSON(rs.Rows)
	} else {
		outputTable(rs)
	}

	return nil
}

func outputJSON(rows []shelter.Record) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func outputTable(rs pipeline.ResultSet) {
	// Print header
	fmt.Printf("%-20s %-30s %-15s %-6s %-12s %s\n",
		"NAME", "BREED", "SEX", "AGE", "LAT", "LONG")

	// Print rows
	for _, row := range rs.Rows {
		name := row[shelter.FieldName]
		if name == "" {
			name = "-"
		}

		// Truncate breed if too long
		breed := row[shelter.FieldBreed]
		if len(breed) > 30 {
			breed = breed[:27] + "..."
		}

		fmt.Printf("%-20s %-30s %-15s %-6s %-12s %s\n",
			name, breed, row[shelter.FieldSex], row[shelter.FieldAge],
			row[shelter.FieldLat], row[shelter.FieldLong])
	}

	fmt.Printf("\n%d record(s)\n", len(rs.Rows))
}
