package fs

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Entry represents a single file or directory on disk. Entries are values
// regenerated on every listing and never mutated in place.
type Entry struct {
	Name     string // exactly as reported by the filesystem
	FullPath string
	Kind     Kind
	Size     uint64
	Modified time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// DisplayName returns the NFC-normalized name for rendering. Paths must be
// built from Name, which is left untouched.
func (e Entry) DisplayName() string {
	return norm.NFC.String(e.Name)
}
