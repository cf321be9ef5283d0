package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestDurableMoveBasic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "foo.txt")
	dst := filepath.Join(dir, "bar.txt")
	writeFile(t, src, "hello world")

	if err := DurableMove(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if exists(src) {
		t.Fatalf("source file should be gone")
	}
	if got := readFile(t, dst); got != "hello world" {
		t.Fatalf("unexpected destination contents %q", got)
	}
}

func TestDurableMoveAcrossDirectories(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	src := filepath.Join(left, "a.txt")
	dst := filepath.Join(right, "a.txt")
	writeFile(t, src, "hello")

	if err := DurableMove(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if exists(src) {
		t.Fatalf("source file should be gone")
	}
	if got := readFile(t, dst); got != "hello" {
		t.Fatalf("unexpected destination contents %q", got)
	}
}

func TestDurableMoveDirectory(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	src := filepath.Join(left, "sub")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(src, "x"), "x")

	if err := DurableMove(src, filepath.Join(right, "sub")); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := readFile(t, filepath.Join(right, "sub", "x")); got != "x" {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestDurableMoveMissingSourceDoesNotCreateDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "no-such-file.txt")
	dst := filepath.Join(dir, "whatever.txt")

	err := DurableMove(src, dst)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) || KindOf(err) != ErrKindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if exists(dst) {
		t.Fatalf("destination must not be created")
	}
}

func TestDurableMoveOverwritesDestination(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	src := filepath.Join(left, "orig")
	dst := filepath.Join(right, "orig")
	writeFile(t, src, "first")
	writeFile(t, dst, "second")

	if err := DurableMove(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if exists(src) {
		t.Fatalf("source file should be gone")
	}
	if got := readFile(t, dst); got != "first" {
		t.Fatalf("expected overwritten contents %q, got %q", "first", got)
	}
}

func TestDurableMoveMissingDestinationParent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	writeFile(t, src, "a")

	err := DurableMove(src, filepath.Join(dir, "missing", "a"))
	if KindOf(err) != ErrKindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if !exists(src) {
		t.Fatalf("source must remain when rename fails")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: ErrKindOther},
		{name: "not exist", err: &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, want: ErrKindNotFound},
		{name: "permission", err: &os.PathError{Op: "open", Path: "x", Err: os.ErrPermission}, want: ErrKindPermission},
		{name: "other", err: errors.New("boom"), want: ErrKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf(%v)=%v want %v", tt.err, got, tt.want)
			}
		})
	}
}
