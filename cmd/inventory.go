package cmd

import (
	"context"
	"fmt"
	"sort"

	"pedalbuild/feature/inventory"
	"pedalbuild/feature/inventory/models"

	"github.com/spf13/cobra"
)

var listType string

// inventoryCmd is the parent command for inventory operations.
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect the component inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components, optionally filtered by type",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		svc := inventory.NewService(env.db, env.logger)

		components, err := svc.List(context.Background(), models.ComponentType(listType))
		if err != nil {
			return fmt.Errorf("failed to list inventory: %w", err)
		}

		printComponents(components)
		return nil
	},
}

var inventorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search components by value, name or part number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		svc := inventory.NewService(env.db, env.logger)

		components, err := svc.Search(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search inventory: %w", err)
		}

		printComponents(components)
		return nil
	},
}

var inventoryLowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List components at or below their minimum quantity",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		svc := inventory.NewService(env.db, env.logger)

		components, err := svc.LowStock(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list low stock: %w", err)
		}

		printComponents(components)
		return nil
	},
}

var inventoryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate inventory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		svc := inventory.NewService(env.db, env.logger)

		stats, err := svc.Statistics(context.Background())
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}

		fmt.Printf("Distinct components: %d\n", stats.TotalTypes)
		fmt.Printf("Total units:         %d\n", stats.TotalUnits)
		fmt.Printf("Low stock:           %d\n", stats.LowStockCount)
		fmt.Printf("Out of stock:        %d\n", stats.OutOfStockCount)

		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %-14s %4d kinds, %6d units\n", t, stats.ByType[t].Types, stats.ByType[t].Units)
		}
		return nil
	},
}

func printComponents(components []models.Component) {
	fmt.Printf("%-40s %-14s %-16s %6s %6s\n", "ID", "TYPE", "VALUE", "STOCK", "MIN")
	for _, c := range components {
		fmt.Printf("%-40s %-14s %-16s %6d %6d\n",
			c.ID, c.Type, c.Value, c.QuantityInStock, c.MinimumQuantity)
	}
	fmt.Printf("%d component(s)\n", len(components))
}

func init() {
	inventoryListCmd.Flags().StringVar(&listType, "type", "", "Filter by component type")

	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventorySearchCmd)
	inventoryCmd.AddCommand(inventoryLowStockCmd)
	inventoryCmd.AddCommand(inventoryStatsCmd)
	RootCmd.AddCommand(inventoryCmd)
}
