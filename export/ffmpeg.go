// Package export implements the streaming ffmpeg encoder pipeline and the
// preview/export video decoders of spec §4.10 (C10), grounded on
// yourflock-roost's grid_compositor (exec.CommandContext("ffmpeg", ...),
// restart-on-error run loop, filter_complex construction) and
// phanxgames-willow's screenshot.go raw-RGBA ReadPixels pattern for
// extracting frame bytes to feed ffmpeg's rawvideo stdin.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kinetic-motion/director/direrr"
)

// EncoderMode selects the hardware path ffmpeg should use for the video
// encode pass (SPEC_FULL.md C10 extension).
type EncoderMode int

const (
	EncoderAuto EncoderMode = iota
	EncoderSoftware
	EncoderNVENC
	EncoderQSV
	EncoderAMF
)

func (m EncoderMode) codecArgs() []string {
	switch m {
	case EncoderNVENC:
		return []string{"-c:v", "h264_nvenc", "-preset", "p4"}
	case EncoderQSV:
		return []string{"-c:v", "h264_qsv"}
	case EncoderAMF:
		return []string{"-c:v", "h264_amf"}
	default:
		return []string{"-c:v", "libx264", "-preset", "medium", "-crf", "18"}
	}
}

// Available reports whether ffmpeg and ffprobe are on PATH, per spec §6's
// requirement that the preview server degrades gracefully without them.
func Available() bool {
	_, errFfmpeg := exec.LookPath("ffmpeg")
	_, errFfprobe := exec.LookPath("ffprobe")
	return errFfmpeg == nil && errFfprobe == nil
}

// Params describes one export job: output path, dimensions, frame rate,
// and sample rate, matching spec §4.10's two-phase pipeline contract.
type Params struct {
	OutputPath string
	Width      int
	Height     int
	FPS        float64
	SampleRate int
	Channels   int
	Mode       EncoderMode
}

// Encoder drives the two-phase export pipeline: raw video frames piped to
// ffmpeg as they're rendered, audio written to an f32le sidecar file, then
// a final mux pass that copies the video stream and encodes the audio to
// AAC into the requested container
// (spec §4.10: "two-phase to avoid buffering an entire render in memory").
type Encoder struct {
	params    Params
	tempDir   string
	videoCmd  *exec.Cmd
	videoIn   io.WriteCloser
	videoErr  *bytes.Buffer
	audioFile *os.File
	frameBuf  []byte
}

// NewEncoder starts the video-encode ffmpeg process, piping rawvideo
// frames from stdin into an intermediate video_temp.mp4, and opens the
// audio sidecar file for raw f32le samples.
func NewEncoder(ctx context.Context, params Params) (*Encoder, error) {
	if !Available() {
		return nil, direrr.NewEncoderError("ffmpeg/ffprobe not found on PATH")
	}
	tempDir, err := os.MkdirTemp("", "director-export-*")
	if err != nil {
		return nil, direrr.NewEncoderError(fmt.Sprintf("mkdtemp: %v", err))
	}

	videoTemp := filepath.Join(tempDir, "video_temp.mp4")
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-r", fmt.Sprintf("%f", params.FPS),
		"-i", "pipe:0",
	}
	args = append(args, params.Mode.codecArgs()...)
	args = append(args, videoTemp)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, direrr.NewEncoderError(fmt.Sprintf("stdin pipe: %v", err))
	}
	videoErr := &bytes.Buffer{}
	cmd.Stderr = videoErr
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tempDir)
		return nil, direrr.NewEncoderError(fmt.Sprintf("ffmpeg start: %v", err))
	}

	audioPath := filepath.Join(tempDir, "audio_temp.f32le")
	audioFile, err := os.Create(audioPath)
	if err != nil {
		stdin.Close()
		cmd.Wait()
		os.RemoveAll(tempDir)
		return nil, direrr.NewEncoderError(fmt.Sprintf("create audio sidecar: %v", err))
	}

	return &Encoder{
		params:    params,
		tempDir:   tempDir,
		videoCmd:  cmd,
		videoIn:   stdin,
		videoErr:  videoErr,
		audioFile: audioFile,
		frameBuf:  make([]byte, 4*params.Width*params.Height),
	}, nil
}

// WriteFrame converts a premultiplied-alpha RGBA pixel buffer (as returned
// by ebiten.Image.ReadPixels, per phanxgames-willow/screenshot.go) to
// straight alpha and writes it to ffmpeg's rawvideo stdin.
func (e *Encoder) WriteFrame(premultiplied []byte) error {
	if len(premultiplied) != len(e.frameBuf) {
		return direrr.NewEncoderError("frame size mismatch")
	}
	for i := 0; i < len(premultiplied); i += 4 {
		r, g, b, a := premultiplied[i], premultiplied[i+1], premultiplied[i+2], premultiplied[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		e.frameBuf[i], e.frameBuf[i+1], e.frameBuf[i+2], e.frameBuf[i+3] = r, g, b, a
	}
	if _, err := e.videoIn.Write(e.frameBuf); err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("write frame: %v", err))
	}
	return nil
}

// WriteAudio appends interleaved f32le stereo samples to the audio
// sidecar file.
func (e *Encoder) WriteAudio(samples []float32) error {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		putFloat32LE(buf[i*4:], s)
	}
	_, err := e.audioFile.Write(buf)
	if err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("write audio: %v", err))
	}
	return nil
}

// Finish closes the video stdin, waits for the video-encode pass, then
// runs the mux pass combining video_temp.mp4 and the audio sidecar into
// the final output with -c:v copy -c:a aac (spec §4.10 phase 2).
func (e *Encoder) Finish(ctx context.Context) error {
	defer os.RemoveAll(e.tempDir)

	if err := e.videoIn.Close(); err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("close stdin: %v", err))
	}
	if err := e.videoCmd.Wait(); err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("video pass: %v: %s", err, e.videoErr.String()))
	}
	if err := e.audioFile.Close(); err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("close audio sidecar: %v", err))
	}

	videoTemp := filepath.Join(e.tempDir, "video_temp.mp4")
	audioTemp := filepath.Join(e.tempDir, "audio_temp.f32le")

	muxArgs := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", videoTemp,
		"-f", "f32le", "-ar", fmt.Sprintf("%d", e.params.SampleRate),
		"-ac", fmt.Sprintf("%d", e.params.Channels),
		"-i", audioTemp,
		"-c:v", "copy", "-c:a", "aac",
		e.params.OutputPath,
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", muxArgs...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return direrr.NewEncoderError(fmt.Sprintf("mux pass: %v: %s", err, out))
	}
	return nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
