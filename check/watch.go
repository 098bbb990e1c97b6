package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/formatter"
)

// settle is how long a burst of writes to one file is coalesced.
const settle = 100 * time.Millisecond

// ReportFunc receives the reports of a file that changed.
type ReportFunc func(path string, reports []formatter.Report)

// Watch rechecks description files under dirs whenever they are written,
// until ctx is done.
func Watch(ctx context.Context, logger *zap.Logger, engine Engine, dirs []string, onReports ReportFunc) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	logger.Info("watching", zap.Strings("dirs", dirs))

	pending := make(map[string]bool)
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !hasDesiredExtension(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		case <-timer.C:
			for path := range pending {
				reports, err := engine.Run(path)
				if err != nil {
					logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
					continue
				}
				onReports(path, reports)
			}
			pending = make(map[string]bool)
		}
	}
}
