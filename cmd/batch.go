package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/asrs-advisor/internal/model"
)

var (
	batchInput  string
	batchOutDir string
	batchScope  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run consultations for newline-delimited descriptions from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		consultant, closeFn, err := initConsultant(ctx, false)
		if err != nil {
			return err
		}
		defer closeFn()

		descriptions, err := readDescriptions(batchInput)
		if err != nil {
			return err
		}
		if len(descriptions) == 0 {
			return eris.Errorf("no descriptions found in %s", batchInput)
		}

		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return eris.Wrap(err, "create output dir")
		}

		var completed atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrent)

		for i, text := range descriptions {
			g.Go(func() error {
				result := consultant.Consult(gctx, model.ConsultRequest{
					Text:  text,
					Scope: model.Scope(batchScope),
				})
				path := filepath.Join(batchOutDir, fmt.Sprintf("consultation_%03d.md", i+1))
				if err := os.WriteFile(path, []byte(result.Report), 0o644); err != nil {
					return eris.Wrapf(err, "write %s", path)
				}
				completed.Add(1)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.Int64("consultations", completed.Load()),
			zap.String("output_dir", batchOutDir),
		)
		return nil
	},
}

// readDescriptions loads one description per non-empty line; # lines are
// comments.
func readDescriptions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, eris.Wrapf(scanner.Err(), "read %s", path)
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "path to newline-delimited descriptions file")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "consultations", "directory for rendered reports")
	batchCmd.Flags().StringVar(&batchScope, "scope", string(model.ScopeComprehensive), "lookup scope for all consultations")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}
