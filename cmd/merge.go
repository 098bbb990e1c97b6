package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/check"
	"github.com/hguenther/smtrs/formatter"
	"github.com/hguenther/smtrs/internal/shape"
)

// mergeCmd: smtrs merge bundle.txtar... | smtrs merge left.yaml right.yaml
var mergeCmd = &cobra.Command{
	Use:   "merge (bundle.txtar... | left.yaml right.yaml)",
	Short: "Join two described values as at a control-flow join",
	Long: `Join two described values as at a control-flow join.

Each txtar bundle must contain left.yaml and right.yaml. Both values get
fresh leaves; shared leaves become ite(cond, left, right) where cond is the
configured condition variable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(formatter.MergeReport)
		if err != nil {
			return err
		}
		if len(args) == 2 && !isBundle(args[0]) && !isBundle(args[1]) {
			return mergePair(cmd, engine, args[0], args[1])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		reports, err := check.ProcessFiles(ctx, logger, engine, args, check.ProcessFile)
		if err != nil {
			logger.Error("Error processing bundles", zap.Error(err))
			return err
		}
		return printReports(cmd, reports)
	},
}

func isBundle(path string) bool {
	return filepath.Ext(path) == ".txtar"
}

func mergePair(cmd *cobra.Command, engine *check.Checker, leftPath, rightPath string) error {
	left, err := shape.Load(leftPath)
	if err != nil {
		logger.Error("Error reading shape", zap.String("path", leftPath), zap.Error(err))
		return err
	}
	right, err := shape.Load(rightPath)
	if err != nil {
		logger.Error("Error reading shape", zap.String("path", rightPath), zap.Error(err))
		return err
	}
	r, err := engine.Merge(leftPath+" + "+rightPath, left, right)
	if err != nil {
		logger.Error("Error merging shapes", zap.Error(err))
		return err
	}
	return printReports(cmd, []formatter.Report{r})
}
