package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsContentAndMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.swift")
	if err := os.WriteFile(path, []byte("let a = 1 // one\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(f.Content) != "let a = 1 // one\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Mode != 0o600 {
		t.Errorf("mode = %v, want 0600", f.Mode)
	}
	if f.Hash != Hash(f.Content) {
		t.Error("hash does not match content")
	}
}

func TestLoadKeepsBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.swift")
	raw := []byte("\xEF\xBB\xBFa\r\nb")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(f.Content) != string(raw) {
		t.Errorf("content was normalized: %q", f.Content)
	}
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.swift")
	if err := os.WriteFile(path, []byte("ok\xffbad"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	if err.Error() != "invalid UTF-8 at byte 2" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.swift"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestSaveTruncatesAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.swift")
	if err := os.WriteFile(path, []byte("a much longer original body"), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := (Disk{}).Save(path, []byte("short"), 0o640); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Errorf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}
}

func TestDigestString(t *testing.T) {
	d := Hash(nil)
	if got := d.String(); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("digest = %s", got)
	}
}
