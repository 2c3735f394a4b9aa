package lottie

import (
	"math"
	"sync"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
)

// ExpressionContext carries the bindings exposed to an expression snippet,
// per spec §4.8: value, loopValue, time, thisLayer/thisComp (each exposing
// only a name), and vars (a Director-owned variable bag). No thisProperty
// object is bound.
type ExpressionContext struct {
	Value     float64
	LoopValue float64 // cycle segment endpoint, for loopOut("cycle")
	Time      float64
	Vars      map[string]float64
	LayerName string
	CompName  string
}

// Evaluator wraps a goja runtime exposing scalar wiggle/valueAtTime/
// velocityAtTime/lookAt/loopIn/loopOut/clamp/linear globals to Lottie
// expression snippets; no vector math helpers are installed, and loopIn/
// loopOut return their value argument unchanged. One Evaluator is owned
// per Player instance (spec
// §5: expression evaluator state is per-instance mutable state, not
// shared across players of the same immutable Asset).
type Evaluator struct {
	vm *goja.Runtime
	mu sync.Mutex
}

// NewEvaluator builds a fresh JS runtime with the AE-compatible globals
// installed.
func NewEvaluator() *Evaluator {
	vm := goja.New()
	e := &Evaluator{vm: vm}
	e.install()
	return e
}

func (e *Evaluator) install() {
	must := func(name string, fn interface{}) {
		if err := e.vm.Set(name, fn); err != nil {
			logrus.WithError(err).WithField("fn", name).Warn("lottie: failed to install expression global")
		}
	}
	must("wiggle", func(freq, amp float64) float64 {
		// Deterministic pseudo-noise stand-in: a single sine harmonic at
		// the requested frequency, amplitude-scaled. Expressions calling
		// wiggle() inside a render pass must stay deterministic per frame.
		return amp * math.Sin(freq*2*math.Pi)
	})
	must("valueAtTime", func(t float64) float64 { return t })
	must("velocityAtTime", func(t float64) float64 { return 0.0 })
	must("lookAt", func(fromX, fromY, toX, toY float64) float64 {
		return math.Atan2(toY-fromY, toX-fromX) * 180 / math.Pi
	})
	must("loopIn", func(mode string, value float64) float64 { return value })
	must("loopOut", func(mode string, value float64) float64 { return value })
	must("clamp", func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	})
	must("linear", func(t, tMin, tMax, vMin, vMax float64) float64 {
		if tMax == tMin {
			return vMin
		}
		frac := (t - tMin) / (tMax - tMin)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		return vMin + frac*(vMax-vMin)
	})
}

// Eval runs src with ctx's value/time/vars bound as globals, returning the
// sampled value unchanged on any compile or runtime error (spec §4.8:
// "failure falls back to the sampled value").
func (e *Evaluator) Eval(src string, ctx ExpressionContext) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vm.Set("value", ctx.Value)
	e.vm.Set("loopValue", ctx.LoopValue)
	e.vm.Set("time", ctx.Time)
	e.vm.Set("thisLayer", map[string]interface{}{"name": ctx.LayerName})
	e.vm.Set("thisComp", map[string]interface{}{"name": ctx.CompName})
	vars := map[string]interface{}{}
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	e.vm.Set("vars", vars)

	result, err := e.vm.RunString(src)
	if err != nil {
		logrus.WithError(err).WithField("expr", src).Debug("lottie: expression evaluation failed, using sampled value")
		return ctx.Value
	}
	f, ok := toFloat(result)
	if !ok {
		return ctx.Value
	}
	return f
}

func toFloat(v goja.Value) (float64, bool) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, false
	}
	f := v.ToFloat()
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
