package preview

import "testing"

func TestBuildEngineParsesMinimalDocument(t *testing.T) {
	data := []byte(`{
		"width": 640, "height": 360, "fps": 30,
		"scenes": [
			{"name": "intro", "duration": 2, "root": {"kind":"box","background":"#ff0000","style":{"width":"100%","height":"100%"}}},
			{"name": "outro", "duration": 2, "root": {"kind":"box","style":{"width":"100%","height":"100%"}}}
		],
		"transitions": [{"from":0,"to":1,"duration":0.5,"kind":"fade"}]
	}`)
	doc, err := buildEngine(data)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if len(doc.names) != 2 || doc.names[0] != "intro" || doc.names[1] != "outro" {
		t.Fatalf("unexpected scene names: %v", doc.names)
	}
	if len(doc.eng.Timeline.Items) != 2 {
		t.Fatalf("expected 2 timeline items, got %d", len(doc.eng.Timeline.Items))
	}
	if len(doc.eng.Timeline.Transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(doc.eng.Timeline.Transitions))
	}
}

func TestBuildEngineRejectsEmptyScenes(t *testing.T) {
	if _, err := buildEngine([]byte(`{"scenes":[]}`)); err == nil {
		t.Fatal("expected error for a document with no scenes")
	}
}

func TestBuildEngineRejectsUnknownNodeKind(t *testing.T) {
	data := []byte(`{"scenes":[{"duration":1,"root":{"kind":"spinner"}}]}`)
	if _, err := buildEngine(data); err == nil {
		t.Fatal("expected error for an unknown node kind")
	}
}

func TestParseColorHandlesAlpha(t *testing.T) {
	c, err := parseColor("#112233FF")
	if err != nil {
		t.Fatalf("parseColor: %v", err)
	}
	if c.R != 0x11 || c.G != 0x22 || c.B != 0x33 || c.A != 0xff {
		t.Fatalf("unexpected color: %+v", c)
	}
}

func TestParseSizeVariants(t *testing.T) {
	if s := parseSize("50%"); !s.Percent || s.Value != 50 {
		t.Fatalf("expected 50%% percent size, got %+v", s)
	}
	if s := parseSize("100px"); s.Percent || s.Value != 100 {
		t.Fatalf("expected 100px fixed size, got %+v", s)
	}
	if s := parseSize(""); !s.Auto {
		t.Fatalf("expected auto size for empty string, got %+v", s)
	}
}
