package pane

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	fsutil "github.com/kk-code-lab/twindir/internal/fs"
)

// Column describes one list column; Width is in logical points.
type Column struct {
	Name  string
	Width float64
}

// DefaultColumns returns the fixed column set shown by every pane.
func DefaultColumns() []Column {
	return []Column{
		{Name: "Icon", Width: 30},
		{Name: "Name", Width: 100},
		{Name: "Size", Width: 60},
		{Name: "Modified", Width: 200},
	}
}

// Snapshot is the read-only view of one pane handed to the renderer.
type Snapshot struct {
	Name            string
	Path            string
	Items           []fsutil.Entry
	Columns         []Column
	Breadcrumbs     []string
	CursorIndex     int // -1 when the pane is empty
	SelectedIndices []int
	Focused         bool
	Err             error

	// Fingerprint changes whenever anything visible in the snapshot changes.
	Fingerprint uint64
}

// IsSelected reports whether index is part of the selection.
func (s Snapshot) IsSelected(index int) bool {
	for _, i := range s.SelectedIndices {
		if i == index {
			return true
		}
		if i > index {
			return false
		}
	}
	return false
}

// CursorItem returns the entry under the cursor.
func (s Snapshot) CursorItem() (fsutil.Entry, bool) {
	if s.CursorIndex < 0 || s.CursorIndex >= len(s.Items) {
		return fsutil.Entry{}, false
	}
	return s.Items[s.CursorIndex], true
}

func fingerprint(s *Snapshot) uint64 {
	d := xxhash.New()
	var buf []byte
	write := func(str string) {
		_, _ = d.WriteString(str)
		_, _ = d.Write([]byte{0})
	}
	writeInt := func(v int64) {
		buf = strconv.AppendInt(buf[:0], v, 10)
		buf = append(buf, 0)
		_, _ = d.Write(buf)
	}

	write(s.Path)
	for _, it := range s.Items {
		write(it.Name)
		writeInt(int64(it.Kind))
		writeInt(int64(it.Size))
		writeInt(it.Modified.UnixNano())
	}
	writeInt(int64(s.CursorIndex))
	for _, i := range s.SelectedIndices {
		writeInt(int64(i))
	}
	if s.Focused {
		write("focused")
	}
	if s.Err != nil {
		write(s.Err.Error())
	}
	return d.Sum64()
}
