package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcherRejectsNilCallback(t *testing.T) {
	if _, err := NewWatcher(time.Millisecond, nil, nil, nil); err == nil {
		t.Fatal("expected nil callback to be rejected")
	}
}

func TestNewWatcherRejectsBadGlob(t *testing.T) {
	if _, err := NewWatcher(time.Millisecond, []string{"[unclosed"}, nil, func([]string) {}); err == nil {
		t.Fatal("expected invalid glob pattern to be rejected")
	}
}

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := NewWatcher(100*time.Millisecond, []string{"obj"}, []string{"*.g.cs"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	// A new C# file should come through after the debounce window.
	testFile := filepath.Join(tmpDir, "Widget.cs")
	if err := os.WriteFile(testFile, []byte("class Widget { }"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for file change event")
	}

	// Non-source and excluded files stay silent.
	for _, name := range []string{"readme.txt", "Widget.g.cs"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case paths := <-changedFiles:
		t.Errorf("unexpected event for filtered files: %v", paths)
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// New directory should be recursively watched after create.
	subdir := filepath.Join(tmpDir, "Models")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	subFile := filepath.Join(subdir, "Order.cs")
	if err := os.WriteFile(subFile, []byte("class Order { }"), 0644); err != nil {
		t.Fatal(err)
	}

	foundNested := false
	timeout := time.After(2 * time.Second)
	for !foundNested {
		select {
		case paths := <-changedFiles:
			for _, p := range paths {
				if p == subFile {
					foundNested = true
					break
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for nested file event in newly created directory")
		}
	}
}
