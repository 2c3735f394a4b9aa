// Package preview implements the preview server actor (C11): a single
// long-lived worker goroutine owning the current Engine behind a message
// channel, plus the HTTP surface and path-escape-safe file API spec §4.11
// and §6 describe. Grounded on yourflock-roost's grid_compositor service
// (stdlib net/http routing, promhttp wiring, JSON response helpers),
// generalized from its session-manager mutex to this package's
// single-goroutine actor, which spec §4.11 specifically calls for
// ("a channel receives messages").
package preview

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinetic-motion/director/direrr"
	"github.com/kinetic-motion/director/export"
)

var log = logrus.WithField("component", "preview")

type msgKind int

const (
	msgInitContent msgKind = iota
	msgInitPath
	msgRenderFrame
	msgGetScenes
	msgExportVideo
)

// message is the actor's one mailbox entry: a request plus its one-shot
// reply channel, per spec §4.11.
type message struct {
	kind    msgKind
	content []byte // msgInitContent
	path    string // msgInitPath, msgExportVideo (output path)
	time    float64
	reply   chan reply
}

type reply struct {
	err      error
	duration float64       // msgInit*
	jpegData []byte         // msgRenderFrame
	scenes   []SceneSummary // msgGetScenes
}

// SceneSummary is one timeline item as reported by GET /api/scenes.
type SceneSummary struct {
	Index     int     `json:"index"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
	Name      string  `json:"name"`
}

// Actor owns the current Engine and serializes all access to it through a
// single goroutine reading off mailbox (spec §5: "The scene arena is
// mutated only through the director mutex" — here, the actor goroutine is
// the mutex).
type Actor struct {
	mailbox chan message
	doc     *parsedDocument
	cwd     string
}

// NewActor starts the actor goroutine and returns a handle to it. cwd is
// the process working directory used as the file API's default allowed
// root.
func NewActor(cwd string) *Actor {
	a := &Actor{mailbox: make(chan message), cwd: cwd}
	go a.run()
	return a
}

func (a *Actor) run() {
	for m := range a.mailbox {
		switch m.kind {
		case msgInitContent:
			a.handleInit(m, m.content)
		case msgInitPath:
			data, err := os.ReadFile(m.path)
			if err != nil {
				m.reply <- reply{err: direrr.NewScript("read script", err)}
				continue
			}
			a.handleInit(m, data)
		case msgRenderFrame:
			a.handleRender(m)
		case msgGetScenes:
			if a.doc == nil {
				m.reply <- reply{err: direrr.NewScript("scenes", fmt.Errorf("no engine initialized"))}
				continue
			}
			m.reply <- reply{scenes: a.summarizeScenes()}
		case msgExportVideo:
			a.handleExport(m)
		}
	}
}

func (a *Actor) handleInit(m message, data []byte) {
	start := time.Now()
	doc, err := buildEngine(data)
	if err != nil {
		m.reply <- reply{err: err}
		return
	}
	a.doc = doc
	m.reply <- reply{duration: time.Since(start).Seconds()}
}

func (a *Actor) summarizeScenes() []SceneSummary {
	items := a.doc.eng.Timeline.Items
	out := make([]SceneSummary, len(items))
	for i, it := range items {
		name := fmt.Sprintf("scene%d", i)
		if i < len(a.doc.names) {
			name = a.doc.names[i]
		}
		out[i] = SceneSummary{Index: i, StartTime: it.StartTime, Duration: it.Duration, Name: name}
	}
	return out
}

func (a *Actor) handleRender(m message) {
	if a.doc == nil {
		m.reply <- reply{err: direrr.NewScript("render", fmt.Errorf("no engine initialized"))}
		return
	}
	img := a.doc.eng.RenderAt(m.time, a.doc.width, a.doc.height)
	defer a.doc.eng.ReleaseFrame(img)

	buf := &jpegBuffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		m.reply <- reply{err: direrr.NewEncoderError(fmt.Sprintf("jpeg encode: %v", err))}
		return
	}
	m.reply <- reply{jpegData: buf.Bytes()}
}

func (a *Actor) handleExport(m message) {
	if a.doc == nil {
		m.reply <- reply{err: direrr.NewScript("export", fmt.Errorf("no engine initialized"))}
		return
	}
	if !export.Available() {
		m.reply <- reply{err: direrr.NewEncoderError("ffmpeg/ffprobe not found on PATH")}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	total := a.doc.eng.Timeline.TotalDuration()
	fps := a.doc.fps
	w, h := a.doc.width, a.doc.height
	const sampleRate = 44100
	enc, err := export.NewEncoder(ctx, export.Params{
		OutputPath: m.path, Width: w, Height: h, FPS: fps, SampleRate: sampleRate, Channels: 2,
	})
	if err != nil {
		m.reply <- reply{err: err}
		return
	}
	samplesPerFrame := int(float64(sampleRate) / fps)
	frameCount := int(total * fps)
	for i := 0; i < frameCount; i++ {
		t := float64(i) / fps
		img := a.doc.eng.RenderAt(t, w, h)
		pixels := make([]byte, 4*w*h)
		img.ReadPixels(pixels)
		if err := enc.WriteFrame(pixels); err != nil {
			a.doc.eng.ReleaseFrame(img)
			m.reply <- reply{err: err}
			return
		}
		a.doc.eng.ReleaseFrame(img)

		if a.doc.eng.Mixer != nil {
			samples := a.doc.eng.Mixer.Mix(samplesPerFrame, t, sampleRate)
			if err := enc.WriteAudio(samples); err != nil {
				m.reply <- reply{err: err}
				return
			}
		}
	}
	if err := enc.Finish(ctx); err != nil {
		m.reply <- reply{err: err}
		return
	}
	m.reply <- reply{duration: total}
}

// InitFromContent builds a fresh engine from raw script bytes.
func (a *Actor) InitFromContent(content []byte) (float64, error) {
	r := a.send(message{kind: msgInitContent, content: content})
	return r.duration, r.err
}

// InitFromPath builds a fresh engine from a script file, resolved through
// ResolvePath so callers still go through the allowed-roots check.
func (a *Actor) InitFromPath(path string) (float64, error) {
	resolved, err := ResolvePath(a.cwd, path)
	if err != nil {
		return 0, err
	}
	r := a.send(message{kind: msgInitPath, path: resolved})
	return r.duration, r.err
}

// RenderFrame returns JPEG-encoded bytes of the frame at time t.
func (a *Actor) RenderFrame(t float64) ([]byte, error) {
	r := a.send(message{kind: msgRenderFrame, time: t})
	return r.jpegData, r.err
}

// GetScenes returns the current engine's timeline summary.
func (a *Actor) GetScenes() ([]SceneSummary, error) {
	r := a.send(message{kind: msgGetScenes})
	return r.scenes, r.err
}

// ExportVideo runs the exporter against the current engine, writing to
// outputPath (resolved against the allowed roots).
func (a *Actor) ExportVideo(outputPath string) (string, error) {
	resolved, err := ResolvePath(a.cwd, outputPath)
	if err != nil {
		return "", err
	}
	r := a.send(message{kind: msgExportVideo, path: resolved})
	return resolved, r.err
}

func (a *Actor) send(m message) reply {
	m.reply = make(chan reply, 1)
	a.mailbox <- m
	return <-m.reply
}

type jpegBuffer struct{ data []byte }

func (b *jpegBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
func (b *jpegBuffer) Bytes() []byte { return b.data }
