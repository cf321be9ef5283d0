package fs

import (
	"os"
	"path/filepath"
)

// DurableMove renames src to dst so that, once it returns nil, a crash cannot
// leave the object reachable only at src. The source is fsynced, renamed, and
// then both parent directories are fsynced. An existing dst is overwritten
// following platform rename semantics. Step errors are returned unchanged;
// a cross-device rename is not emulated with copy and delete.
func DurableMove(src, dst string) error {
	if err := syncPath(src); err != nil {
		return err
	}

	if err := rename(src, dst); err != nil {
		return err
	}

	srcDir := filepath.Dir(src)
	dstDir := filepath.Dir(dst)
	if err := syncDir(srcDir); err != nil {
		return err
	}
	if filepath.Clean(dstDir) != filepath.Clean(srcDir) {
		if err := syncDir(dstDir); err != nil {
			return err
		}
	}
	return nil
}

func syncPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return syncOpenFile(f)
}
