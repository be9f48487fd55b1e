// Package driver runs the read, strip, compare and write workflow over a set of files.
package driver

import (
	"bytes"
	"context"
	"io/fs"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"decomment/internal/source"
	"decomment/internal/strip"
)

// Mode selects what happens to files that contain comments.
type Mode uint8

const (
	// ModeWrite rewrites files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports which files contain comments.
	ModeCheck
	// ModeStdout returns the cleaned text in Result.Cleaned without touching files.
	ModeStdout
)

// FileStore reads and writes whole files.
type FileStore interface {
	Load(path string) (*source.File, error)
	Save(path string, content []byte, mode fs.FileMode) error
}

// Options configures a run.
type Options struct {
	Extensions []string
	Exclude    []string
	Jobs       int // 0 = GOMAXPROCS
	Mode       Mode
	Store      FileStore    // nil = local disk
	Cache      *CleanCache  // nil = disabled
	Progress   ProgressSink // may be nil
}

// Result captures the outcome for one file.
type Result struct {
	Path    string
	Changed bool // comments were found; in ModeWrite the file was rewritten
	Cached  bool // skipped via CleanCache
	Stats   strip.Stats
	Err     error
	Cleaned []byte // ModeStdout only
	Elapsed time.Duration
}

// CleanList cleans the files of a collected list and returns one result per
// file plus the entries that could not be visited, sorted by path.
// Per-file failures are returned in Result.Err; the error return is reserved
// for cancellation, in which case only the files that were processed are returned.
func CleanList(ctx context.Context, list FileList, opts Options) ([]Result, error) {
	results, err := CleanFiles(ctx, list.Files, opts)
	if err != nil {
		processed := results[:0]
		for _, r := range results {
			if r.Path != "" {
				processed = append(processed, r)
			}
		}
		results = processed
	}
	results = append(results, list.Skipped...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, err
}

// CleanFiles processes files in parallel. Results are in the order of files.
func CleanFiles(ctx context.Context, files []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results, nil
	}

	for _, path := range files {
		opts.emit(Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = cleanSingleFile(path, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func cleanSingleFile(path string, opts *Options) Result {
	start := time.Now()
	res := Result{Path: path}
	finish := func(stage Stage, status Status) Result {
		res.Elapsed = time.Since(start)
		opts.emit(Event{File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: res.Elapsed})
		return res
	}

	opts.emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
	file, err := opts.store().Load(path)
	if err != nil {
		res.Err = err
		return finish(StageRead, StatusError)
	}

	if opts.Cache.Known(path, file.Hash) {
		res.Cached = true
		if opts.Mode == ModeStdout {
			res.Cleaned = file.Content
		}
		return finish(StageRead, StatusUnchanged)
	}

	opts.emit(Event{File: path, Stage: StageStrip, Status: StatusWorking})
	cleaned, stats := strip.StripStats(file.Content)
	res.Stats = stats
	res.Changed = !bytes.Equal(file.Content, cleaned)

	if !res.Changed {
		// cache failures never fail the file
		_ = opts.Cache.Remember(path, file.Hash)
	}

	switch opts.Mode {
	case ModeStdout:
		res.Cleaned = cleaned
	case ModeWrite:
		if res.Changed {
			opts.emit(Event{File: path, Stage: StageWrite, Status: StatusWorking})
			if err := opts.store().Save(path, cleaned, file.Mode); err != nil {
				res.Err = err
				return finish(StageWrite, StatusError)
			}
		}
	}

	if res.Changed {
		return finish(StageStrip, StatusCleaned)
	}
	return finish(StageStrip, StatusUnchanged)
}

func (o *Options) store() FileStore {
	if o.Store == nil {
		return source.Disk{}
	}
	return o.Store
}

func (o *Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
