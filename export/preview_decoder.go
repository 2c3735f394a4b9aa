package export

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/direrr"
)

// proxyKey identifies a cached all-intra preview proxy by source path and
// modification time, so an edited source file invalidates the proxy.
type proxyKey struct {
	path  string
	mtime int64
}

// proxyManager produces and caches 720p all-intra proxies for video assets
// so preview-quality seeking doesn't pay full-resolution decode cost,
// grounded on grid_compositor's ffmpeg-process-per-asset model.
type proxyManager struct {
	mu      sync.Mutex
	cache   map[proxyKey]string
	workDir string
}

func newProxyManager(workDir string) *proxyManager {
	return &proxyManager{cache: map[proxyKey]string{}, workDir: workDir}
}

func (pm *proxyManager) get(ctx context.Context, sourcePath string) (string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", direrr.NewEncoderError(fmt.Sprintf("stat %s: %v", sourcePath, err))
	}
	key := proxyKey{path: sourcePath, mtime: info.ModTime().UnixNano()}

	pm.mu.Lock()
	if p, ok := pm.cache[key]; ok {
		pm.mu.Unlock()
		return p, nil
	}
	pm.mu.Unlock()

	out := filepath.Join(pm.workDir, fmt.Sprintf("proxy_%x.mov", key.mtime))
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", sourcePath,
		"-vf", "scale=-2:720",
		"-c:v", "mjpeg", "-intra", "-q:v", "3",
		"-an",
		out,
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if combined, err := cmd.CombinedOutput(); err != nil {
		return "", direrr.NewEncoderError(fmt.Sprintf("proxy encode: %v: %s", err, combined))
	}

	pm.mu.Lock()
	pm.cache[key] = out
	pm.mu.Unlock()
	return out, nil
}

type decodeRequest struct {
	time     float64
	response chan decodeResponse
}

type decodeResponse struct {
	img *ebiten.Image
	w, h int
	err error
}

// PreviewDecoder serves frame requests for a single video asset from a
// background worker goroutine. Decodes run one at a time and each runs to
// completion; a new request does not cancel a decode already in progress.
// Requests that queue up meanwhile are collapsed to the most recent one,
// so scrubbing the playhead doesn't queue up stale decodes.
type PreviewDecoder struct {
	sourcePath string
	proxies    *proxyManager
	width      int
	height     int

	requests chan decodeRequest
	cancel   context.CancelFunc
	closed   chan struct{}
}

// NewPreviewDecoder starts the background decode worker for sourcePath.
func NewPreviewDecoder(sourcePath, workDir string) (*PreviewDecoder, error) {
	if !Available() {
		return nil, direrr.NewEncoderError("ffmpeg/ffprobe not found on PATH")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, direrr.NewEncoderError(fmt.Sprintf("mkdir workdir: %v", err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &PreviewDecoder{
		sourcePath: sourcePath,
		proxies:    newProxyManager(workDir),
		requests:   make(chan decodeRequest, 1),
		cancel:     cancel,
		closed:     make(chan struct{}),
	}
	go d.run(ctx)
	return d, nil
}

func (d *PreviewDecoder) run(ctx context.Context) {
	defer close(d.closed)
	var current *exec.Cmd
	for {
		select {
		case <-ctx.Done():
			if current != nil {
				current.Process.Kill()
			}
			return
		case req := <-d.requests:
			req = d.drainToLatest(req)
			if current != nil {
				current.Process.Kill()
				current.Wait()
			}
			img, w, h, cmd, err := d.decodeFrame(ctx, req.time)
			current = cmd
			req.response <- decodeResponse{img: img, w: w, h: h, err: err}
		}
	}
}

// drainToLatest discards any requests queued behind req, answering each
// discarded one with a closed channel so its caller sees "superseded"
// rather than blocking forever.
func (d *PreviewDecoder) drainToLatest(req decodeRequest) decodeRequest {
	for {
		select {
		case newer := <-d.requests:
			close(req.response)
			req = newer
		default:
			return req
		}
	}
}

func (d *PreviewDecoder) decodeFrame(ctx context.Context, t float64) (*ebiten.Image, int, int, *exec.Cmd, error) {
	proxyPath, err := d.proxies.get(ctx, d.sourcePath)
	if err != nil {
		return nil, 0, 0, nil, err
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", fmt.Sprintf("%f", t),
		"-i", proxyPath,
		"-frames:v", "1",
		"-f", "image2pipe", "-vcodec", "mjpeg",
		"pipe:1",
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, 0, 0, cmd, &direrr.PreviewDecoderError{Msg: err.Error()}
	}
	jimg, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, 0, 0, cmd, &direrr.PreviewDecoderError{Msg: err.Error()}
	}
	bounds := jimg.Bounds()
	d.width, d.height = bounds.Dx(), bounds.Dy()
	return ebiten.NewImageFromImage(jimg), d.width, d.height, cmd, nil
}

// FrameAt implements elements.VideoDecoder. It blocks until the worker
// produces a frame or the request is superseded by a newer one, in which
// case it returns a PreviewDecoderError so the caller keeps its last good
// frame (spec §7).
func (d *PreviewDecoder) FrameAt(t float64) (*ebiten.Image, int, int, error) {
	resp := make(chan decodeResponse, 1)
	select {
	case d.requests <- decodeRequest{time: t, response: resp}:
	case <-time.After(2 * time.Second):
		return nil, 0, 0, &direrr.PreviewDecoderError{Msg: "decoder busy"}
	}
	r, ok := <-resp
	if !ok {
		return nil, 0, 0, &direrr.PreviewDecoderError{Msg: "superseded by newer seek"}
	}
	return r.img, r.w, r.h, r.err
}

// Close stops the background worker and waits for it to exit.
func (d *PreviewDecoder) Close() {
	d.cancel()
	<-d.closed
}
