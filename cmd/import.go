package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"pedalbuild/core/storage"
	"pedalbuild/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importPreview bool

// importCmd ingests a vendor CSV from the local filesystem.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a vendor inventory CSV",
	Long: `Parses a vendor CSV and inserts new components into the inventory.
Components whose derived id already exists are skipped. Use --preview to
parse the file without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		var store storage.Client
		if env.cfg.Storage.Enabled && !importPreview {
			store, err = storage.NewClient(env.cfg.Storage)
			if err != nil {
				// archiving is best-effort for CLI imports
				env.logger.Warn("Storage client unavailable, skipping archive", zap.Error(err))
			}
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		svc := importer.NewService(env.db, store, env.cfg.Storage.Bucket, env.logger)
		result, err := svc.Import(context.Background(), file, args[0], importPreview)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if result.Preview {
			fmt.Println("Preview only, nothing was written.")
		}
		fmt.Printf("Parsed:   %d\n", result.TotalComponents)
		fmt.Printf("Inserted: %d\n", result.Inserted)
		fmt.Printf("Skipped:  %d\n", result.Skipped)

		types := make([]string, 0, len(result.ByType))
		for t := range result.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %-14s %d\n", t, result.ByType[t])
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importPreview, "preview", false, "Parse the CSV without writing to the database")
	RootCmd.AddCommand(importCmd)
}
