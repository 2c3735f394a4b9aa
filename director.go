// Package director is the root package: it owns the scene arena and wires
// the layout (C4), timeline (C6), render (C7), audio (C9), and lottie (C8)
// passes into one per-frame pipeline, playing the role of willow's top-level
// Update/Draw frame loop (scene.go) generalized from a single persistent
// scene to a timeline of scenes sampled at an arbitrary point in time.
package director

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/kinetic-motion/director/anim"
	"github.com/kinetic-motion/director/audio"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/render"
	"github.com/kinetic-motion/director/scene"
	"github.com/kinetic-motion/director/timeline"
)

var log = logrus.WithField("component", "director")

var (
	frameRenderSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "director_frame_render_seconds",
		Help:    "Wall-clock time to render one frame, start to finish.",
		Buckets: prometheus.DefBuckets,
	})
	framesRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "director_frames_rendered_total",
		Help: "Total frames rendered across all Engine instances.",
	})
)

func init() {
	prometheus.MustRegister(frameRenderSeconds, framesRendered)
}

// Engine owns one scene arena and plays it back against a timeline, per
// spec §4.1's "Engine" (C5's sampler pass lives here, tying the arena to
// layout/render/audio). It implements elements.SubEngine so a Composition
// element can nest an independently-timed Engine as a pre-composition.
type Engine struct {
	Arena    *scene.Arena
	Timeline *timeline.Timeline
	Layout   *layout.Engine
	Renderer *render.Renderer
	Mixer    *audio.Mixer
	Sampler  anim.BandSampler

	Blur          render.MotionBlurConfig
	FrameInterval float64 // 1/fps, used for motion blur's shutter window
}

// New builds an Engine over a fresh arena, layout engine, and renderer.
func New() *Engine {
	arena := scene.NewArena()
	return &Engine{
		Arena:         arena,
		Timeline:      timeline.New(),
		Layout:        layout.New(arena),
		Renderer:      render.New(arena),
		FrameInterval: 1.0 / 30.0,
	}
}

// RenderFrame samples the timeline at t and renders the resulting frame
// (or, during a transition window, both outgoing and incoming scenes
// composited under the transition's shader) into an image sized to
// viewport. The caller owns the returned image and must release it via
// ReleaseFrame.
func (e *Engine) RenderFrame(t float64, viewport scene.Rect) *ebiten.Image {
	timer := prometheus.NewTimer(frameRenderSeconds)
	defer timer.ObserveDuration()
	defer framesRendered.Inc()

	itemIdx, tr := e.Timeline.ActiveAt(t)
	if itemIdx < 0 {
		log.WithField("t", t).Debug("no active timeline item at this time")
		return e.Renderer.RenderFrame(scene.Nil, viewport, t, nil, render.MotionBlurConfig{}, e.FrameInterval)
	}

	if tr == nil {
		item := e.Timeline.Items[itemIdx]
		localT := t - item.StartTime
		return e.Renderer.RenderFrame(item.SceneRoot, viewport, localT, e.sampleFn(item, viewport), e.Blur, e.FrameInterval)
	}

	from := e.Timeline.Items[tr.FromIdx]
	to := e.Timeline.Items[tr.ToIdx]
	progress := (t - tr.StartTime) / tr.Duration

	imgA := e.Renderer.RenderFrame(from.SceneRoot, viewport, t-from.StartTime, e.sampleFn(from, viewport), render.MotionBlurConfig{}, e.FrameInterval)
	imgB := e.Renderer.RenderFrame(to.SceneRoot, viewport, t-to.StartTime, e.sampleFn(to, viewport), render.MotionBlurConfig{}, e.FrameInterval)
	defer e.Renderer.ReleaseFrame(imgA)
	defer e.Renderer.ReleaseFrame(imgB)

	out := ebiten.NewImage(int(viewport.W), int(viewport.H))
	render.RenderTransition(out, imgA, imgB, tr, progress)
	return out
}

// ReleaseFrame returns a frame image obtained from RenderFrame to the
// renderer's pool. Transition-composited frames are freshly allocated and
// safe to discard directly; only pooled single-scene frames need this.
func (e *Engine) ReleaseFrame(img *ebiten.Image) {
	e.Renderer.ReleaseFrame(img)
}

// RenderAt implements elements.SubEngine: renders this Engine's own
// timeline at local time t into a w x h image, for Composition nesting
// (spec §4.3's pre-composition element).
func (e *Engine) RenderAt(t float64, w, h int) *ebiten.Image {
	viewport := scene.Rect{W: float64(w), H: float64(h)}
	return e.RenderFrame(t, viewport)
}

// sampleFn returns the per-node update callback the renderer invokes while
// walking item's subtree: it runs C5's sampler pass (the element's own
// Update, then audio bindings) and the layout pass, exactly once per node per
// sample, grounded on willow's scene.go Update-before-Draw ordering.
func (e *Engine) sampleFn(item timeline.Item, viewport scene.Rect) func(sampleT float64) {
	return func(sampleT float64) {
		e.Arena.Walk(item.SceneRoot, func(id scene.NodeId) bool {
			n := e.Arena.Get(id)
			if n == nil {
				return false
			}
			n.LocalTime = sampleT
			if n.Element != nil {
				n.Element.Update(sampleT)
			}
			e.applyAudioBindings(n, item, sampleT)
			return true
		})
		e.Layout.Layout(item.SceneRoot, viewport)
	}
}

// applyAudioBindings resolves each of n's AudioBinding entries against
// e.Sampler at sampleT, relative to the owning track's timeline start time,
// and maps the band energy onto [Min, Max]. Each call builds a fresh
// anim.Binding, so no previous value carries over between samples and
// Smoothing has no effect: the raw energy is mapped directly.
func (e *Engine) applyAudioBindings(n *scene.SceneNode, item timeline.Item, sampleT float64) {
	if e.Sampler == nil || len(n.AudioBindings) == 0 {
		return
	}
	absT := item.StartTime + sampleT
	for i := range n.AudioBindings {
		b := &n.AudioBindings[i]
		raw := e.Sampler.BandEnergy(b.TrackID, int(b.Band), absT)
		binding := anim.Binding{TrackID: b.TrackID, Band: int(b.Band), Min: b.Min, Max: b.Max, Smoothing: b.Smoothing}
		mapped := binding.Apply(raw)
		if tr, ok := n.Element.(trackWriter); ok {
			if track := tr.Track(b.Property); track != nil {
				track.SetCurrent(mapped)
			}
		}
	}
}

// trackWriter is implemented by element kinds exposing a named float
// track for audio-binding writes (elements.PropertyAnimators).
type trackWriter interface {
	Track(name string) *anim.Track[float64]
}

// ReportFatal captures an unrecoverable pipeline error (export crash,
// decoder panic recovery) to Sentry, per SPEC_FULL.md's ambient error
// handling, and logs it structured via logrus.
func ReportFatal(stage string, err error) {
	wrapped := fmt.Errorf("director: fatal in %s: %w", stage, err)
	log.WithError(wrapped).WithField("stage", stage).Error("fatal pipeline error")
	sentry.CaptureException(wrapped)
}
