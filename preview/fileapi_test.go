package preview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePathAllowsPathsUnderCWD(t *testing.T) {
	cwd := t.TempDir()
	target := filepath.Join(cwd, "script.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	resolved, err := ResolvePath(cwd, "script.json")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if resolved != target {
		t.Fatalf("resolved = %q, want %q", resolved, target)
	}
}

func TestResolvePathRejectsEscape(t *testing.T) {
	cwd := t.TempDir()
	if _, err := ResolvePath(cwd, "/etc/passwd"); err == nil {
		t.Fatal("expected a path-escape error for a path outside the allowed roots")
	}
}

func TestResolvePathHonorsExtraAllowedRoots(t *testing.T) {
	cwd := t.TempDir()
	extraRoot := t.TempDir()
	t.Setenv("DIRECTOR_VIEW_ALLOWED_ROOTS", extraRoot)

	target := filepath.Join(extraRoot, "asset.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	resolved, err := ResolvePath(cwd, target)
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if resolved != target {
		t.Fatalf("resolved = %q, want %q", resolved, target)
	}
}

func TestReadWriteFileRoundTrip(t *testing.T) {
	cwd := t.TempDir()
	path := filepath.Join(cwd, "notes.txt")
	if err := WriteFile(cwd, path, []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := ReadFile(cwd, path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("got %q, want %q", data, "hello")
	}
}
