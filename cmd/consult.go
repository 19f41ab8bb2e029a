package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/asrs-advisor/internal/model"
)

var (
	consultSupplemental []string
	consultScope        string
	consultStyle        string
	consultNarrate      bool
	consultJSON         bool
	consultDebug        bool
	consultReferences   bool
)

var consultCmd = &cobra.Command{
	Use:   "consult [description]",
	Short: "Determine sprinkler design requirements for a system description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("consult"); err != nil {
			return err
		}

		consultant, closeFn, err := initConsultant(ctx, consultNarrate)
		if err != nil {
			return err
		}
		defer closeFn()

		req := model.ConsultRequest{
			Text:         strings.Join(args, " "),
			Supplemental: consultSupplemental,
			Scope:        model.Scope(consultScope),
			Style:        model.Style(consultStyle),
			Options: model.Options{
				Debug:             consultDebug,
				IncludeReferences: consultReferences,
			},
		}
		if err := validateScope(req.Scope); err != nil {
			return err
		}

		result := consultant.Consult(ctx, req)

		if consultJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Println(result.Report)
		return nil
	},
}

func validateScope(scope model.Scope) error {
	switch scope {
	case "", model.ScopeComprehensive, model.ScopeCeilingOnly, model.ScopeInRackOnly, model.ScopeTablesOnly:
		return nil
	}
	return eris.Errorf("unknown scope %q", scope)
}

func init() {
	consultCmd.Flags().StringArrayVar(&consultSupplemental, "supplemental", nil, "additional clarifying text (repeatable)")
	consultCmd.Flags().StringVar(&consultScope, "scope", string(model.ScopeComprehensive), "lookup scope: comprehensive, ceiling_only, in_rack_only, tables_only")
	consultCmd.Flags().StringVar(&consultStyle, "style", string(model.StyleProfessional), "report style: professional, detailed, summary")
	consultCmd.Flags().BoolVar(&consultNarrate, "narrate", false, "rephrase the report conversationally via Claude")
	consultCmd.Flags().BoolVar(&consultJSON, "json", false, "print the full consultation as JSON")
	consultCmd.Flags().BoolVar(&consultDebug, "debug", false, "include classification detail in the report")
	consultCmd.Flags().BoolVar(&consultReferences, "references", false, "always include table and figure references")
	rootCmd.AddCommand(consultCmd)
}
