// Package source reads and writes whole source files.
package source

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ErrInvalidUTF8 is returned by Load for content that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Hash returns the content digest.
func Hash(content []byte) Digest {
	return sha256.Sum256(content)
}

// Load reads the whole file at path. The content must be valid UTF-8.
func Load(path string) (file *File, err error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	size, err := safecast.Conv[int](info.Size())
	if err != nil {
		return nil, fmt.Errorf("file size overflow: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(size)
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	content := buf.Bytes()
	if off := invalidUTF8Offset(content); off >= 0 {
		return nil, fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
	}

	return &File{
		Path:    path,
		Content: content,
		Hash:    Hash(content),
		Mode:    info.Mode().Perm(),
	}, nil
}

// Save replaces the content of path, creating it with mode if needed.
// The handle is closed on every path; a close error is reported when the write succeeded.
func Save(path string, content []byte, mode fs.FileMode) (err error) {
	if mode == 0 {
		mode = 0o644
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = f.Write(content)
	return err
}

// Disk is the file store backed by the local filesystem.
type Disk struct{}

// Load implements the driver's file store.
func (Disk) Load(path string) (*File, error) { return Load(path) }

// Save implements the driver's file store.
func (Disk) Save(path string, content []byte, mode fs.FileMode) error {
	return Save(path, content, mode)
}

// invalidUTF8Offset возвращает смещение первого битого байта или -1.
func invalidUTF8Offset(content []byte) int {
	if utf8.Valid(content) {
		return -1
	}
	for off := 0; off < len(content); {
		r, size := utf8.DecodeRune(content[off:])
		if r == utf8.RuneError && size == 1 {
			return off
		}
		off += size
	}
	return -1
}
