// Package timeline implements scene sequencing and cross-scene transitions
// (C6): ripple-shift on transition insertion, and cross-fade/wipe shader
// selection at render time.
//
// The ripple-shift bookkeeping follows spec §4.6/§8 directly; the kind-to-
// shader dispatch switch is grounded on
// yourflock-roost/.../grid_compositor/internal/compositor/compositor.go's
// enum-switch construction of -filter_complex strings, reused here as a
// switch from TransitionKind to a uniform block consumed by package render.
package timeline

import "github.com/kinetic-motion/director/scene"

// TransitionKind enumerates the transition shaders of spec §3.
type TransitionKind int

const (
	Fade TransitionKind = iota
	SlideL
	SlideR
	WipeL
	WipeR
	CircleOpen
	Wave
	Glitch
	Iris
	Spiral
)

// TransitionParams carries the kind-specific parameters spec §3 lists.
type TransitionParams struct {
	WaveAmp, WaveFreq float64
	GlitchIntensity   float64
	IrisR0, IrisR1    float64
	SpiralRotations   float64
}

// AudioTrackRef identifies an audio track owned by a TimelineItem.
type AudioTrackRef struct {
	ID        string
	StartTime float64
}

// Item is one scene's placement on the timeline (spec §3 "TimelineItem").
type Item struct {
	SceneRoot    scene.NodeId
	StartTime    float64
	Duration     float64
	ZIndex       int
	AudioTrackIDs []string
}

// End returns the item's end time (exclusive).
func (it Item) End() float64 { return it.StartTime + it.Duration }

// Transition records a cross-fade between two timeline items by index.
type Transition struct {
	FromIdx, ToIdx int
	StartTime      float64
	Duration       float64
	Kind           TransitionKind
	Ease           func(float64) float64
	Params         TransitionParams
}

// Timeline is the ordered, monotonically non-decreasing-by-start-time
// sequence of Items plus the Transitions between them, and the audio
// tracks each Item owns.
type Timeline struct {
	Items          []Item
	Transitions    []Transition
	audioStartTime map[string]float64
}

// New returns an empty Timeline.
func New() *Timeline {
	return &Timeline{audioStartTime: map[string]float64{}}
}

// AddScene appends a new Item starting immediately after the last item's
// end (or at t=0 for the first).
func (tl *Timeline) AddScene(root scene.NodeId, duration float64, audioTrackIDs ...string) int {
	start := 0.0
	if n := len(tl.Items); n > 0 {
		start = tl.Items[n-1].End()
	}
	tl.Items = append(tl.Items, Item{
		SceneRoot:     root,
		StartTime:     start,
		Duration:      duration,
		AudioTrackIDs: audioTrackIDs,
	})
	for _, id := range audioTrackIDs {
		tl.audioStartTime[id] = start
	}
	return len(tl.Items) - 1
}

// AudioStart returns the current start time of an owned audio track.
func (tl *Timeline) AudioStart(trackID string) (float64, bool) {
	t, ok := tl.audioStartTime[trackID]
	return t, ok
}

// AddTransition inserts a transition between items fromIdx and toIdx,
// rippling every item at index >= toIdx (and the audio tracks they own)
// left by duration (spec §4.6, §8 property 8).
func (tl *Timeline) AddTransition(fromIdx, toIdx int, duration float64, kind TransitionKind, ease func(float64) float64, params TransitionParams) {
	for i := toIdx; i < len(tl.Items); i++ {
		tl.Items[i].StartTime -= duration
		for _, id := range tl.Items[i].AudioTrackIDs {
			tl.audioStartTime[id] -= duration
		}
	}
	start := tl.Items[fromIdx].End()
	if toIdx < len(tl.Items) {
		// After rippling, toIdx's new start is exactly fromIdx's end minus
		// overlap; the transition window begins where the two scenes overlap.
		start = tl.Items[toIdx].StartTime
	}
	tl.Transitions = append(tl.Transitions, Transition{
		FromIdx:   fromIdx,
		ToIdx:     toIdx,
		StartTime: start,
		Duration:  duration,
		Kind:      kind,
		Ease:      ease,
		Params:    params,
	})
}

// ActiveAt returns the index of the Item covering time t, and the
// transition (if any) whose window covers t.
func (tl *Timeline) ActiveAt(t float64) (itemIdx int, tr *Transition) {
	for i := range tl.Transitions {
		tt := &tl.Transitions[i]
		if t >= tt.StartTime && t < tt.StartTime+tt.Duration {
			return tt.FromIdx, tt
		}
	}
	for i, it := range tl.Items {
		if t >= it.StartTime && t < it.End() {
			return i, nil
		}
	}
	return -1, nil
}

// TotalDuration returns the timeline's end time (its last item's End()).
func (tl *Timeline) TotalDuration() float64 {
	if len(tl.Items) == 0 {
		return 0
	}
	return tl.Items[len(tl.Items)-1].End()
}
