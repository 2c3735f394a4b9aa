package director

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDumpFrameWritesPNG(t *testing.T) {
	dir := t.TempDir()
	img := ebiten.NewImage(4, 4)
	path, err := DumpFrame(img, dir, "my label!")
	if err != nil {
		t.Fatalf("DumpFrame: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file under %s, got %s", dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestSanitizeLabel(t *testing.T) {
	cases := map[string]string{
		"":           "unlabeled",
		"  ":         "unlabeled",
		"intro/v1":   "intro_v1",
		"scene-01.a": "scene-01.a",
	}
	for in, want := range cases {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
