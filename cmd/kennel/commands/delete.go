package commands

import (
	"context"

	"github.com/dyluth/kennel/internal/catalog"
	"github.com/dyluth/kennel/internal/printer"
	"github.com/spf13/cobra"
)

var (
	deleteFilter      string
	deleteYes         bool
	deleteCatalogPath string
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete records matching a filter",
	Long: `Delete every record matching a named filter from the store.

Filters that resolve to the identity predicate (Reset, or any unknown
name) would delete the entire collection; that requires --yes.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteFilter, "filter", "", "Filter name selecting the records to delete")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Allow deleting the entire collection")
	deleteCmd.Flags().StringVar(&deleteCatalogPath, "catalog", "", "Path to a YAML filter catalog (built-in filters if omitted)")
	deleteCmd.MarkFlagRequired("filter")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cat, err := loadCatalog(deleteCatalogPath)
	if err != nil {
		return err
	}

	if cat.IsReset(deleteFilter) && !deleteYes {
		return printer.Error(
			"Refusing to delete the entire collection",
			"Filter \""+deleteFilter+"\" matches every record in the store.",
			[]string{
				"Pass --yes to confirm deleting everything",
				"Pick a narrower filter (e.g. --filter " + firstNonReset(cat) + ")",
			},
		)
	}

	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Delete(ctx, cat.Resolve(deleteFilter))
	if err != nil {
		return printer.Error("Delete failed", err.Error(), nil)
	}

	printer.Success("Deleted %d record(s)\n", removed)
	return nil
}

// firstNonReset picks a catalog filter name to suggest in error output.
func firstNonReset(cat *catalog.Catalog) string {
	for _, name := range cat.Names() {
		if name != catalog.ResetName {
			return name
		}
	}
	return catalog.ResetName
}
