package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/check"
	"github.com/hguenther/smtrs/formatter"
	"github.com/hguenther/smtrs/internal/logic"
)

var (
	jsonOutput bool
	outPath    string
	cacheDir   string
	watch      bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout [paths...]",
	Short: "List the leaf slots of described values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReports(cmd, formatter.LayoutReport, args)
	},
}

var invariantCmd = &cobra.Command{
	Use:   "invariant [paths...]",
	Short: "Allocate fresh leaves and list the invariants of described values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReports(cmd, formatter.InvariantReport, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{layoutCmd, invariantCmd, mergeCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
		c.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
		c.Flags().StringVar(&cacheDir, "cache-dir", "", "Reuse reports of unchanged files stored in this directory")
	}
	for _, c := range []*cobra.Command{layoutCmd, invariantCmd} {
		c.Flags().BoolVarP(&watch, "watch", "w", false, "Recheck files as they change")
	}
}

func newEngine(kind string) (*check.Checker, error) {
	engine := check.NewWithConfig(kind, cfg, logic.NewBuilder(), logger)
	if cacheDir == "" {
		return engine, nil
	}
	cache, err := check.NewCache(cacheDir)
	if err != nil {
		return nil, err
	}
	engine.UseCache(cache)
	return engine, nil
}

func runReports(cmd *cobra.Command, kind string, paths []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	engine, err := newEngine(kind)
	if err != nil {
		return err
	}
	reports, err := check.ProcessFiles(ctx, logger, engine, paths, check.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return err
	}
	if err := printReports(cmd, reports); err != nil || !watch {
		return err
	}

	watchCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return check.Watch(watchCtx, logger, engine, watchDirs(paths), func(path string, reports []formatter.Report) {
		if err := printReports(cmd, reports); err != nil {
			logger.Error("Error printing reports", zap.String("file", path), zap.Error(err))
		}
	})
}

func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func printReports(cmd *cobra.Command, reports []formatter.Report) error {
	if !jsonOutput {
		fmt.Fprint(cmd.OutOrStdout(), formatter.GenerateFormattedReport(reports))
		return nil
	}

	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return err
	}
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(d))
		return nil
	}
	if err := os.WriteFile(outPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reports written to %s\n", outPath)
	return nil
}
