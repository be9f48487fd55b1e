package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileList is the outcome of walking the requested paths.
type FileList struct {
	// Files are the matched source files, sorted and de-duplicated.
	Files []string
	// Skipped are entries below a root that could not be visited; each carries Err.
	Skipped []Result
}

type fileFilter struct {
	extensions map[string]struct{}
	exclude    []string
}

func newFileFilter(extensions, exclude []string) fileFilter {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[ext] = struct{}{}
	}
	return fileFilter{extensions: exts, exclude: exclude}
}

func (f fileFilter) allowed(path string) bool {
	_, ok := f.extensions[filepath.Ext(path)]
	return ok
}

// excluded matches a slash separated path against the exclude globs.
// Patterns were validated when the config was loaded, so match errors are ignored.
func (f fileFilter) excluded(rel string) bool {
	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// CollectFiles expands files and directories (recursively) into the list of
// source files whose extension is in extensions and whose path, relative to
// the root it was found under, does not match an exclude glob. A file given
// directly is matched relative to the working directory.
// A root that cannot be stat'ed is fatal; failures below a root are reported
// in FileList.Skipped and the walk goes on.
func CollectFiles(ctx context.Context, paths, extensions, exclude []string) (FileList, error) {
	filter := newFileFilter(extensions, exclude)

	var list FileList
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		list.Files = append(list.Files, path)
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return FileList{}, err
		}

		info, err := os.Stat(root)
		if err != nil {
			return FileList{}, err
		}
		if !info.IsDir() {
			if filter.allowed(root) && !filter.excluded(filepath.ToSlash(root)) {
				addFile(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err != nil {
				if path == root {
					return err
				}
				list.Skipped = append(list.Skipped, Result{Path: path, Err: err})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path != root {
				rel, relErr := filepath.Rel(root, path)
				if relErr == nil && filter.excluded(filepath.ToSlash(rel)) {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
			}
			if d.IsDir() {
				return nil
			}
			if filter.allowed(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return FileList{}, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(list.Files)
	sort.Slice(list.Skipped, func(i, j int) bool { return list.Skipped[i].Path < list.Skipped[j].Path })
	return list, nil
}

// workingRel returns the slash separated form of path relative to the working
// directory, or the cleaned path when it lies outside of it.
func workingRel(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}
