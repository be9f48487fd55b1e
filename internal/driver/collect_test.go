package driver_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"decomment/internal/driver"
)

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.swift":              "",
		"b.m":                  "",
		"notes.txt":            "",
		"Sources/x.swift":      "",
		"Sources/Gen/y.swift":  "",
		"Pods/Lib/z.swift":     "",
		"deep/Pods/w.swift":    "",
		"Sources/Gen/keep.txt": "",
	})

	tests := []struct {
		name    string
		exts    []string
		exclude []string
		want    []string
	}{
		{
			name: "extension filter",
			exts: []string{".swift"},
			want: []string{"Pods/Lib/z.swift", "Sources/Gen/y.swift", "Sources/x.swift", "a.swift", "deep/Pods/w.swift"},
		},
		{
			name: "several extensions",
			exts: []string{".swift", ".m"},
			want: []string{"Pods/Lib/z.swift", "Sources/Gen/y.swift", "Sources/x.swift", "a.swift", "b.m", "deep/Pods/w.swift"},
		},
		{
			name:    "exclude any Pods directory",
			exts:    []string{".swift"},
			exclude: []string{"**/Pods/**"},
			want:    []string{"Sources/Gen/y.swift", "Sources/x.swift", "a.swift"},
		},
		{
			name:    "exclude file glob",
			exts:    []string{".swift"},
			exclude: []string{"Sources/Gen/*.swift", "Pods/**", "deep/**"},
			want:    []string{"Sources/x.swift", "a.swift"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := driver.CollectFiles(context.Background(), []string{root}, tt.exts, tt.exclude)
			if err != nil {
				t.Fatal(err)
			}
			got := make([]string, 0, len(list.Files))
			for _, f := range list.Files {
				rel, err := filepath.Rel(root, f)
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, filepath.ToSlash(rel))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("files (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectFilesDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.swift": ""})
	file := filepath.Join(root, "a.swift")

	list, err := driver.CollectFiles(context.Background(), []string{root, file, file}, []string{".swift"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{file}, list.Files); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
}

func TestCollectFilesExplicitFileMustMatchExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": ""})
	list, err := driver.CollectFiles(context.Background(), []string{filepath.Join(root, "a.txt")}, []string{".swift"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Files) != 0 {
		t.Errorf("unexpected files: %v", list.Files)
	}
}

func TestCollectFilesExplicitFileExcludes(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeTree(t, root, map[string]string{
		"Pods/x.swift":    "",
		"Sources/y.swift": "",
	})
	t.Chdir(root)

	tests := []struct {
		name string
		arg  string
		want []string
	}{
		{name: "absolute path below the working directory", arg: filepath.Join(root, "Pods", "x.swift")},
		{name: "relative path", arg: filepath.Join("Pods", "x.swift")},
		{name: "dot prefixed path", arg: "." + string(filepath.Separator) + filepath.Join("Pods", "x.swift")},
		{name: "not excluded", arg: filepath.Join(root, "Sources", "y.swift"), want: []string{filepath.Join(root, "Sources", "y.swift")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := driver.CollectFiles(context.Background(), []string{tt.arg}, []string{".swift"}, []string{"Pods/**"})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, list.Files); diff != "" {
				t.Errorf("files (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectFilesExplicitFileOutsideWorkingDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Pods/x.swift": ""})
	t.Chdir(t.TempDir())

	file := filepath.Join(root, "Pods", "x.swift")
	list, err := driver.CollectFiles(context.Background(), []string{file}, []string{".swift"}, []string{filepath.ToSlash(root) + "/Pods/**"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Files) != 0 {
		t.Errorf("file outside the working directory should match on its full path: %v", list.Files)
	}
}
