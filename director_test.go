package director

import (
	"image/color"
	"testing"

	"github.com/kinetic-motion/director/elements"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
	"github.com/kinetic-motion/director/timeline"
)

func TestRenderFrameNoActiveItemReturnsBlankImage(t *testing.T) {
	eng := New()
	img := eng.RenderFrame(0, scene.Rect{W: 100, H: 100})
	defer eng.ReleaseFrame(img)
	if img == nil {
		t.Fatal("expected a non-nil fallback image")
	}
}

func TestRenderFrameSamplesSingleItem(t *testing.T) {
	eng := New()
	root := eng.Arena.Add(&elements.Box{
		Style:         layout.Style{Width: layout.Pct(100), Height: layout.Pct(100)},
		HasBackground: true,
		Background:    color.RGBA{R: 255, A: 255},
	})
	eng.Timeline.AddScene(root, 5.0)

	img := eng.RenderFrame(1, scene.Rect{W: 64, H: 64})
	defer eng.ReleaseFrame(img)
	if img == nil {
		t.Fatal("expected a rendered frame")
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 64 || h != 64 {
		t.Fatalf("expected 64x64 frame, got %dx%d", w, h)
	}
}

func TestRenderFrameCompositesDuringTransition(t *testing.T) {
	eng := New()
	a := eng.Arena.Add(&elements.Box{Style: layout.Style{Width: layout.Pct(100), Height: layout.Pct(100)}})
	b := eng.Arena.Add(&elements.Box{Style: layout.Style{Width: layout.Pct(100), Height: layout.Pct(100)}})
	eng.Timeline.AddScene(a, 5.0)
	eng.Timeline.AddScene(b, 5.0)
	eng.Timeline.AddTransition(0, 1, 1.0, timeline.Fade, func(p float64) float64 { return p }, timeline.TransitionParams{})

	// The second item starts immediately after ripple-shift for the
	// transition overlap; sample squarely inside the transition window.
	_, tr := eng.Timeline.ActiveAt(eng.Timeline.Items[1].StartTime)
	if tr == nil {
		t.Fatal("expected a transition to be active at the second item's start time")
	}
	img := eng.RenderFrame(eng.Timeline.Items[1].StartTime, scene.Rect{W: 32, H: 32})
	defer eng.ReleaseFrame(img)
	if img == nil {
		t.Fatal("expected a composited transition frame")
	}
}

func TestApplyAudioBindingsIgnoresUnregisteredProperty(t *testing.T) {
	eng := New()
	box := &elements.Box{Style: layout.Style{Width: layout.Pct(100), Height: layout.Pct(100)}}
	id := eng.Arena.Add(box)
	n := eng.Arena.Get(id)
	n.AudioBindings = []scene.AudioBinding{
		{TrackID: "kick", Band: scene.BandBass, Property: "opacity", Min: 0, Max: 1},
	}
	eng.Sampler = constSampler{energy: 0.5}

	item := timeline.Item{SceneRoot: id, StartTime: 0, Duration: 5}
	eng.applyAudioBindings(n, item, 1.0)
	// No "opacity" track is registered on the Box in this minimal fixture;
	// the call must simply not panic on the missing target.
}

type constSampler struct{ energy float64 }

func (c constSampler) BandEnergy(trackID string, band int, t float64) float64 { return c.energy }
