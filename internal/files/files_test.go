package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("creating symlinks needs extra privileges on Windows")
	}
}

func TestRejectLinks(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "real", "nested"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "real", "a.csv"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "link")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(tmp, "real", "a.csv"), filepath.Join(tmp, "real", "b.csv")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain file", filepath.Join(tmp, "real", "a.csv"), false},
		{"missing file", filepath.Join(tmp, "real", "nested", "new.csv"), false},
		{"missing directories", filepath.Join(tmp, "real", "x", "y", "new.csv"), false},
		{"file is link", filepath.Join(tmp, "real", "b.csv"), true},
		{"parent is link", filepath.Join(tmp, "link", "new.csv"), true},
		{"ancestor is link", filepath.Join(tmp, "link", "nested", "new.csv"), true},
		{"empty", "  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RejectLinks(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RejectLinks(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileLeavesLinkTargetAlone(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(target, []byte("original"), 0o600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "out.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(link, []byte("new"), 0o600); err == nil {
		t.Fatalf("expected write through symlink to fail")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Fatalf("target = %q, want original", data)
	}
}

func TestWriteFileReplacesAndKeepsPerms(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "items_translated.csv")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("new"), 0o640); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Fatalf("content = %q, want new", data)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o640 {
			t.Fatalf("perm = %v, want 0640", info.Mode().Perm())
		}
	}
	assertOnlyEntry(t, tmp, "items_translated.csv")
}

func TestPendingDiscardLeavesNothing(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.txt")
	p, err := Create(path, 0o644)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := p.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	p.Discard()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("final path exists after Discard: %v", err)
	}
	if err := p.Commit(); err == nil {
		t.Fatalf("Commit after Discard should fail")
	}
	assertOnlyEntry(t, tmp)
}

func assertOnlyEntry(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(names) {
		t.Fatalf("dir has %d entries, want %v", len(entries), names)
	}
	for i, e := range entries {
		if e.Name() != names[i] {
			t.Fatalf("entry %d = %s, want %s", i, e.Name(), names[i])
		}
	}
}
