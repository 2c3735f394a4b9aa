package preview

import "testing"

const minimalDoc = `{
	"scenes": [
		{"name": "only", "duration": 1, "root": {"kind":"box","background":"#00ff00","style":{"width":"100%","height":"100%"}}}
	]
}`

func TestActorInitRenderAndScenes(t *testing.T) {
	a := NewActor(t.TempDir())

	if _, err := a.InitFromContent([]byte(minimalDoc)); err != nil {
		t.Fatalf("InitFromContent: %v", err)
	}

	scenes, err := a.GetScenes()
	if err != nil {
		t.Fatalf("GetScenes: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Name != "only" {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}

	data, err := a.RenderFrame(0.5)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty JPEG bytes")
	}
}

func TestActorRenderBeforeInitIsScriptError(t *testing.T) {
	a := NewActor(t.TempDir())
	if _, err := a.RenderFrame(0); err == nil {
		t.Fatal("expected an error when rendering before init")
	}
}
