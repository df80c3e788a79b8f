// Package batch applies a per-song operation to every song directory under a
// pack root, with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/stepsmith/stepsmith/internal/ctxlog"
	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/tool"
)

// SongFunc processes one song directory.
type SongFunc func(ctx context.Context, songDir string) ([]tool.Action, error)

// SongResult is the outcome for one song directory.
type SongResult struct {
	Path    string
	Actions []tool.Action
	Err     error
}

// FindSongDirs walks root and returns every directory that directly contains
// a simfile, sorted by path. Subdirectories of song directories are not
// descended into.
func FindSongDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if ssc.IsSongDir(path) {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan pack directory: %w", err)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Process runs fn over every song directory under root using the given
// number of workers. Results come back in path order regardless of worker
// scheduling. A cancelled context stops dispatching new songs; songs already
// dispatched finish and are included in the results.
func Process(ctx context.Context, root string, workers int, fn SongFunc) ([]SongResult, error) {
	if workers < 1 {
		workers = 1
	}

	dirs, err := FindSongDirs(root)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Pack scan complete.", "root", root, "songs", len(dirs), "workers", workers)

	results := make([]SongResult, len(dirs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				dir := dirs[i]
				actions, err := fn(ctx, dir)
				results[i] = SongResult{Path: dir, Actions: actions, Err: err}
			}
		}()
	}

dispatch:
	for i := range dirs {
		if ctx.Err() != nil {
			markCancelled(results, dirs, i, ctx.Err())
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			markCancelled(results, dirs, i, ctx.Err())
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// markCancelled fills results for every song that was never dispatched.
func markCancelled(results []SongResult, dirs []string, from int, err error) {
	for j := from; j < len(dirs); j++ {
		results[j] = SongResult{Path: dirs[j], Err: err}
	}
}
