package source

import (
	"encoding/hex"
	"io/fs"
)

// Digest is a SHA-256 of file content.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// File captures the full text of one source file as read from disk.
type File struct {
	Path    string
	Content []byte
	Hash    Digest
	Mode    fs.FileMode // permission bits, reused when the file is rewritten
}
