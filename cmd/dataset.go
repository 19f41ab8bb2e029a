package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/internal/ruleset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage the protection rule dataset",
}

var datasetImportCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Import rule records from a spreadsheet into the configured database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("dataset"); err != nil {
			return err
		}

		records, err := ruleset.ReadXLSX(args[0])
		if err != nil {
			return err
		}

		n, err := importRecords(ctx, records)
		if err != nil {
			return err
		}

		zap.L().Info("dataset imported",
			zap.String("file", args[0]),
			zap.Int("records", n),
		)
		return nil
	},
}

func importRecords(ctx context.Context, records []model.RuleRecord) (int, error) {
	switch cfg.Ruleset.Driver {
	case "sqlite":
		idx, err := ruleset.NewSQLite(cfg.Ruleset.SQLitePath)
		if err != nil {
			return 0, err
		}
		defer idx.Close()
		if err := idx.Migrate(ctx); err != nil {
			return 0, err
		}
		return len(records), idx.ImportRecords(ctx, records)

	case "postgres":
		idx, err := ruleset.NewPostgres(ctx, cfg.Ruleset.DatabaseURL)
		if err != nil {
			return 0, err
		}
		defer idx.Close()
		if err := idx.Migrate(ctx); err != nil {
			return 0, err
		}
		return len(records), idx.ImportRecords(ctx, records)

	default:
		return 0, eris.Errorf("dataset import requires a sqlite or postgres ruleset driver, have %q", cfg.Ruleset.Driver)
	}
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate [file.yaml]",
	Short: "Validate a YAML rule dataset file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := ruleset.LoadYAML(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d records OK\n", args[0], len(records))
		return nil
	},
}

var datasetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report record counts per category for the configured backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		records, err := loadAllRecords(ctx)
		if err != nil {
			return err
		}

		counts := ruleset.Counts(records)
		fmt.Printf("driver: %s\n", driverName())
		fmt.Printf("records: %d\n", len(records))
		for _, cat := range []model.RuleCategory{
			model.CategoryCeiling, model.CategoryInRack,
			model.CategoryHydraulic, model.CategoryFigure,
		} {
			fmt.Printf("  %-10s %d\n", cat, counts[cat])
		}
		return nil
	},
}

func driverName() string {
	if cfg.Ruleset.Driver == "" {
		return "memory"
	}
	return cfg.Ruleset.Driver
}

func loadAllRecords(ctx context.Context) ([]model.RuleRecord, error) {
	switch cfg.Ruleset.Driver {
	case "", "memory":
		if cfg.Ruleset.DatasetPath != "" {
			return ruleset.LoadYAML(cfg.Ruleset.DatasetPath)
		}
		return ruleset.Builtin(), nil

	case "sqlite":
		idx, err := ruleset.NewSQLite(cfg.Ruleset.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer idx.Close()
		if err := idx.Migrate(ctx); err != nil {
			return nil, err
		}
		return idx.All(ctx)

	default:
		return nil, eris.Errorf("dataset status not supported for driver %q", cfg.Ruleset.Driver)
	}
}

func init() {
	datasetCmd.AddCommand(datasetImportCmd)
	datasetCmd.AddCommand(datasetValidateCmd)
	datasetCmd.AddCommand(datasetStatusCmd)
	rootCmd.AddCommand(datasetCmd)
}
