package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Navigator holds the current directory of one pane.
type Navigator struct {
	current string
}

// NewNavigator stores the initial path verbatim.
func NewNavigator(path string) *Navigator {
	return &Navigator{current: path}
}

// Current returns the current directory.
func (n *Navigator) Current() string {
	return n.current
}

// Open replaces the current directory.
func (n *Navigator) Open(path string) {
	n.current = path
}

// GoUp moves to the parent directory. At the root it stays at the root.
func (n *Navigator) GoUp() {
	n.current = parentOf(n.current)
}

func parentOf(path string) string {
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return rootOf(clean)
	}
	return parent
}

func rootOf(path string) string {
	return filepath.VolumeName(path) + string(filepath.Separator)
}

// List enumerates the current directory in filesystem order (os.ReadDir
// returns entries sorted by name, which keeps the order stable).
func (n *Navigator) List() ([]Entry, error) {
	return ReadEntries(n.current)
}

// Breadcrumbs returns the path components from the root (exclusive) to the
// current directory (inclusive).
func (n *Navigator) Breadcrumbs() []string {
	return Breadcrumbs(n.current)
}

// ReadEntries lists dir non-recursively. Kind and size follow symlinks; a
// dangling link falls back to the link's own metadata. Any other per-entry
// failure aborts the listing.
func ReadEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		fullPath := filepath.Join(dir, name)

		info, err := os.Stat(fullPath)
		if err != nil {
			if !errors.Is(err, iofs.ErrNotExist) {
				return nil, fmt.Errorf("cannot stat %s: %w", fullPath, err)
			}
			info, err = de.Info()
			if err != nil {
				return nil, fmt.Errorf("cannot stat %s: %w", fullPath, err)
			}
		}

		kind := KindFile
		var size uint64
		if info.IsDir() {
			kind = KindDirectory
		} else if info.Size() > 0 {
			size = uint64(info.Size())
		}

		entries = append(entries, Entry{
			Name:     name,
			FullPath: fullPath,
			Kind:     kind,
			Size:     size,
			Modified: info.ModTime().Local(),
		})
	}

	return entries, nil
}

// Breadcrumbs splits path into its components below the root.
func Breadcrumbs(path string) []string {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(path)
	rest := strings.TrimPrefix(clean, filepath.VolumeName(clean))

	var crumbs []string
	for _, part := range strings.Split(filepath.ToSlash(rest), "/") {
		if part == "" || part == "." {
			continue
		}
		crumbs = append(crumbs, part)
	}
	return crumbs
}
