package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"pedalbuild/feature/bom"
	"pedalbuild/feature/inventory"

	"github.com/spf13/cobra"
)

var exportOut string

// bomCmd is the parent command for circuit BOM operations.
var bomCmd = &cobra.Command{
	Use:   "bom",
	Short: "Inspect and validate circuit BOMs",
}

// newBOMService wires the BOM service onto the inventory searcher.
func newBOMService(env *environment) *bom.Service {
	inv := inventory.NewService(env.db, env.logger)
	return bom.NewService(env.db, inv, env.logger)
}

var bomShowCmd = &cobra.Command{
	Use:   "show <circuit_id>",
	Short: "List a circuit's BOM items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		items, err := newBOMService(env).GetBOM(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch BOM: %w", err)
		}

		fmt.Printf("%-14s %-16s %4s %-12s %-8s\n", "TYPE", "VALUE", "QTY", "REFS", "CRITICAL")
		for _, item := range items {
			critical := ""
			if item.IsCritical {
				critical = "yes"
			}
			fmt.Printf("%-14s %-16s %4d %-12s %-8s\n",
				item.ComponentType, item.ComponentValue, item.Quantity,
				item.ReferenceDesignator, critical)
		}
		fmt.Printf("%d item(s)\n", len(items))
		return nil
	},
}

var bomValidateCmd = &cobra.Command{
	Use:   "validate <circuit_id>",
	Short: "Check which BOM lines are satisfiable from stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		report, err := newBOMService(env).Validate(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to validate BOM: %w", err)
		}

		fmt.Printf("Total items:  %d\n", report.TotalItems)
		fmt.Printf("Available:    %d\n", report.AvailableCount)
		fmt.Printf("Missing:      %d\n", report.MissingCount)
		fmt.Printf("Completeness: %.0f%%\n", report.Completeness*100)
		for _, miss := range report.Missing {
			line := fmt.Sprintf("  MISSING %s %s x%d", miss.BOMItem.ComponentType, miss.BOMItem.ComponentValue, miss.QuantityNeeded)
			if miss.Component != nil {
				line += fmt.Sprintf(" (closest: %s, stock %d)", miss.Component.ID, miss.QuantityAvailable)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var bomShoppingListCmd = &cobra.Command{
	Use:   "shopping-list <circuit_id>",
	Short: "List the components that must be bought to build the circuit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		list, err := newBOMService(env).ShoppingList(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to build shopping list: %w", err)
		}

		for _, item := range list.MissingItems {
			fmt.Printf("%-14s %-16s x%-4d %s\n",
				item.Type, item.Value, item.Quantity, strings.Join(item.References, " "))
		}
		fmt.Printf("%d item(s) to buy\n", list.TotalMissing)
		return nil
	},
}

var bomStatsCmd = &cobra.Command{
	Use:   "stats <circuit_id>",
	Short: "Show aggregate BOM statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		stats, err := newBOMService(env).Statistics(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}

		fmt.Printf("Total items:    %d\n", stats.TotalItems)
		fmt.Printf("Critical:       %d\n", stats.CriticalCount)
		fmt.Printf("Low confidence: %d\n", stats.LowConfidenceCount)

		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %-14s %d\n", t, stats.ByType[t])
		}
		return nil
	},
}

var bomExportCmd = &cobra.Command{
	Use:   "export <circuit_id>",
	Short: "Export a circuit's BOM as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		csv, err := newBOMService(env).ExportCSV(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to export BOM: %w", err)
		}

		if exportOut == "" {
			fmt.Println(csv)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(csv+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Printf("Wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	bomExportCmd.Flags().StringVar(&exportOut, "out", "", "Write the CSV to a file instead of stdout")

	bomCmd.AddCommand(bomShowCmd)
	bomCmd.AddCommand(bomValidateCmd)
	bomCmd.AddCommand(bomShoppingListCmd)
	bomCmd.AddCommand(bomStatsCmd)
	bomCmd.AddCommand(bomExportCmd)
	RootCmd.AddCommand(bomCmd)
}
