package preview

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/kinetic-motion/director"
	"github.com/kinetic-motion/director/direrr"
	"github.com/kinetic-motion/director/elements"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
	"github.com/kinetic-motion/director/timeline"
)

// document is the JSON scene-description format the preview actor's
// InitFromContent/InitFromPath build an Engine from. The scripting
// language itself is an external collaborator (spec §4.11's "script ↔
// engine boundary (abstracted; binding language is external)"); this is
// the concrete boundary format this implementation accepts in its place,
// covering box and text nodes and the transition kinds (§3).
type document struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	FPS         float64         `json:"fps"`
	Scenes      []sceneDoc      `json:"scenes"`
	Transitions []transitionDoc `json:"transitions"`
}

type sceneDoc struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Root     nodeDoc `json:"root"`
}

type transitionDoc struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Duration float64 `json:"duration"`
	Kind     string  `json:"kind"`
}

type nodeDoc struct {
	Kind       string    `json:"kind"`
	Style      styleDoc  `json:"style"`
	Background string    `json:"background,omitempty"`
	Text       string    `json:"text,omitempty"`
	Children   []nodeDoc `json:"children,omitempty"`
}

type styleDoc struct {
	Direction string  `json:"direction,omitempty"`
	Justify   string  `json:"justify,omitempty"`
	Align     string  `json:"align,omitempty"`
	Width     string  `json:"width,omitempty"`
	Height    string  `json:"height,omitempty"`
	Grow      float64 `json:"grow,omitempty"`
	Shrink    float64 `json:"shrink,omitempty"`
	Gap       float64 `json:"gap,omitempty"`
	Padding   float64 `json:"padding,omitempty"`
}

// parsedDocument pairs the Engine built from a document with the scene
// names GetScenes reports (timeline.Item itself carries no name) and the
// document's declared output dimensions.
type parsedDocument struct {
	eng           *director.Engine
	names         []string
	width, height int
	fps           float64
}

var transitionKinds = map[string]timeline.TransitionKind{
	"fade":       timeline.Fade,
	"slidel":     timeline.SlideL,
	"slider":     timeline.SlideR,
	"wipel":      timeline.WipeL,
	"wiper":      timeline.WipeR,
	"circleopen": timeline.CircleOpen,
	"wave":       timeline.Wave,
	"glitch":     timeline.Glitch,
	"iris":       timeline.Iris,
	"spiral":     timeline.Spiral,
}

func linearEase(p float64) float64 { return p }

// buildEngine parses a document's JSON bytes into a fresh Engine plus its
// scene names, or a direrr.ScriptError describing what's wrong with the
// input (spec §7's "script-level" error kind; engine state is untouched
// on failure since nothing is returned to the caller).
func buildEngine(data []byte) (*parsedDocument, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, direrr.NewScript("parse", err)
	}
	if len(doc.Scenes) == 0 {
		return nil, direrr.NewScript("build", fmt.Errorf("document has no scenes"))
	}

	eng := director.New()
	names := make([]string, 0, len(doc.Scenes))
	for i, sd := range doc.Scenes {
		root, err := buildNode(eng, sd.Root)
		if err != nil {
			return nil, direrr.NewScript(fmt.Sprintf("scene[%d]", i), err)
		}
		eng.Timeline.AddScene(root, sd.Duration)
		name := sd.Name
		if name == "" {
			name = fmt.Sprintf("scene%d", i)
		}
		names = append(names, name)
	}
	for _, td := range doc.Transitions {
		if td.From < 0 || td.To < 0 || td.From >= len(doc.Scenes) || td.To >= len(doc.Scenes) {
			return nil, direrr.NewScript("transition", fmt.Errorf("index out of range: %d -> %d", td.From, td.To))
		}
		kind, ok := transitionKinds[strings.ToLower(td.Kind)]
		if !ok {
			kind = timeline.Fade
		}
		eng.Timeline.AddTransition(td.From, td.To, td.Duration, kind, linearEase, timeline.TransitionParams{})
	}

	width, height, fps := doc.Width, doc.Height, doc.FPS
	if width == 0 {
		width = 1280
	}
	if height == 0 {
		height = 720
	}
	if fps == 0 {
		fps = 30
	}
	return &parsedDocument{eng: eng, names: names, width: width, height: height, fps: fps}, nil
}

// buildNode recursively adds nd and its children to eng's arena, returning
// the new node's id. Unknown node kinds are a script-level error (spec §7)
// rather than silently dropped, since a typo in a kind name should surface
// to the author immediately.
func buildNode(eng *director.Engine, nd nodeDoc) (scene.NodeId, error) {
	style := parseStyle(nd.Style)

	var el scene.Element
	switch strings.ToLower(nd.Kind) {
	case "box", "":
		box := &elements.Box{Style: style}
		if nd.Background != "" {
			if c, err := parseColor(nd.Background); err == nil {
				box.HasBackground = true
				box.Background = c
			}
		}
		el = box
	case "text":
		// No font asset is loaded for a script-supplied text node: Text.Draw
		// skips any span whose Font is nil (spec §7's asset-failure policy —
		// renders as empty rather than erroring the whole document).
		el = &elements.Text{Style: style, Spans: []elements.Span{{Text: nd.Text}}}
	default:
		return scene.Nil, fmt.Errorf("unknown node kind %q", nd.Kind)
	}

	id := eng.Arena.Add(el)
	for _, childDoc := range nd.Children {
		childID, err := buildNode(eng, childDoc)
		if err != nil {
			return scene.Nil, err
		}
		if !eng.Arena.TryAddChild(id, childID) {
			return scene.Nil, fmt.Errorf("cannot attach child of kind %q under %q", childDoc.Kind, nd.Kind)
		}
	}
	return id, nil
}

func parseStyle(sd styleDoc) layout.Style {
	s := layout.Style{
		Grow: sd.Grow, Shrink: sd.Shrink, Gap: sd.Gap,
		PaddingT: sd.Padding, PaddingR: sd.Padding, PaddingB: sd.Padding, PaddingL: sd.Padding,
		Width:  parseSize(sd.Width),
		Height: parseSize(sd.Height),
	}
	switch strings.ToLower(sd.Direction) {
	case "column":
		s.Direction = layout.Column
	default:
		s.Direction = layout.Row
	}
	switch strings.ToLower(sd.Justify) {
	case "center":
		s.Justify = layout.JustifyCenter
	case "end":
		s.Justify = layout.JustifyEnd
	case "space-between":
		s.Justify = layout.JustifySpaceBetween
	case "space-around":
		s.Justify = layout.JustifySpaceAround
	default:
		s.Justify = layout.JustifyStart
	}
	switch strings.ToLower(sd.Align) {
	case "center":
		s.Align = layout.AlignCenter
	case "end":
		s.Align = layout.AlignEnd
	case "stretch":
		s.Align = layout.AlignStretch
	default:
		s.Align = layout.AlignStart
	}
	return s
}

// parseSize accepts "auto", "50%", or a bare pixel number; empty defaults
// to auto.
func parseSize(v string) layout.Size {
	v = strings.TrimSpace(v)
	if v == "" || v == "auto" {
		return layout.AutoSize
	}
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return layout.AutoSize
		}
		return layout.Pct(n)
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return layout.AutoSize
	}
	return layout.Fixed(n)
}

// parseColor accepts "#RRGGBB" or "#RRGGBBAA".
func parseColor(v string) (color.RGBA, error) {
	v = strings.TrimPrefix(v, "#")
	if len(v) != 6 && len(v) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", v)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", v, err)
	}
	a := uint8(255)
	if len(v) == 8 {
		a = uint8(n & 0xff)
		n >>= 8
	}
	return color.RGBA{
		R: uint8((n >> 16) & 0xff),
		G: uint8((n >> 8) & 0xff),
		B: uint8(n & 0xff),
		A: a,
	}, nil
}
