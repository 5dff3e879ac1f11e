package parser

import "path/filepath"

// Source identifies where a codebook document originated so callers can load
// from disk, an fs.FS bundle, or an in-memory payload without leaking the
// mechanism into error messages.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile returns a Source pointing at an on-disk codebook.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// SourceFromFS returns a Source identifying an entry inside an fs.FS supplied
// via WithFileSystem.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	raw []byte
}

func (s bytesSource) Kind() SourceKind { return SourceKindBytes }
func (s bytesSource) Location() string { return "inline" }

// SourceFromBytes wraps an in-memory codebook payload.
func SourceFromBytes(raw []byte) Source {
	return bytesSource{raw: append([]byte(nil), raw...)}
}
