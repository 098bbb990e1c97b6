package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/formatter"
)

// Processor produces the reports for one file.
type Processor func(Engine, string) ([]formatter.Report, error)

// ProcessFile runs the engine on a single file.
func ProcessFile(engine Engine, path string) ([]formatter.Report, error) {
	return engine.Run(path)
}

// ProcessSources runs the engine on in-memory sources, keyed by name.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	names []string,
	sources [][]byte,
) ([]formatter.Report, error) {
	var all []formatter.Report
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		reports, err := engine.RunSource(names[i], source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", names[i]), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, reports...)
	}
	return all, nil
}

// ProcessFiles runs processor on every path; directories are walked.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor Processor,
) ([]formatter.Report, error) {
	var all []formatter.Report
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, processor, nil)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, reports...)
	}
	return all, nil
}

type fileResult struct {
	index   int
	reports []formatter.Report
	err     error
}

// ProcessPath runs processor on path. A directory is walked for description
// files, which are processed concurrently with progress written to progress
// (stderr when nil). Reports come back in file name order; files that fail
// are logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor Processor,
	progress io.Writer,
) ([]formatter.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	sort.Strings(files)

	if progress == nil {
		progress = os.Stderr
	}
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make(chan fileResult, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	started := 0
	for i, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		started++
		go func(i int, fp string) {
			defer func() { <-sem }()
			reports, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			_ = bar.Add(1)
			results <- fileResult{index: i, reports: reports, err: err}
		}(i, filePath)
	}

	collected := make([]fileResult, 0, started)
	for i := 0; i < started; i++ {
		collected = append(collected, <-results)
	}
	_ = bar.Finish()
	fmt.Fprintln(progress)

	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })
	reports := []formatter.Report{}
	for _, r := range collected {
		if r.err != nil {
			continue
		}
		reports = append(reports, r.reports...)
	}
	return reports, ctx.Err()
}

var desiredExtensions = map[string]bool{
	".yaml":  true,
	".yml":   true,
	".txtar": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
