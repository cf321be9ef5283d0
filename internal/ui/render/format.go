package render

import (
	"strconv"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/twindir/internal/fs"
)

const (
	iconDirectory = "📁"
	iconFile      = "📄"
	crumbSep      = " › "
)

func iconFor(e fsutil.Entry) string {
	if e.IsDir() {
		return iconDirectory
	}
	return iconFile
}

// formatSize renders the byte count; directories have no size.
func formatSize(e fsutil.Entry) string {
	if e.IsDir() {
		return ""
	}
	return strconv.FormatUint(e.Size, 10) + " bytes"
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC1123Z)
}

// formatBreadcrumbs renders "/ a › b" from the components below the root.
func formatBreadcrumbs(crumbs []string) string {
	if len(crumbs) == 0 {
		return "/"
	}
	return "/ " + strings.Join(crumbs, crumbSep)
}
