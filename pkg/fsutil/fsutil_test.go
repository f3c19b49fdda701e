package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/bracefmt/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.rs")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "fn main() {}\n")

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != "fn main() {}\n" {
			t.Errorf("content = %q", got)
		}

		if info.Size != int64(len(got)) {
			t.Errorf("Size = %d, want %d", info.Size, len(got))
		}

		var zero [32]byte
		if info.Hash == zero {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.rs"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, writeFile(t, "x"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "fn a() {}\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || modified {
			t.Errorf("CheckModified() = %v, %v; want false, nil", modified, err)
		}
	})

	t.Run("same size and time but new content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "fn a() {}\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("fn b() {}\n"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if err := os.Chtimes(path, time.Time{}, info.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "x")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(context.Background(), nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("error = %v, want ErrNilFileInfo", err)
		}
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "old")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if stat.Mode().Perm() != 0o600 {
		t.Errorf("mode = %o, want 600", stat.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
