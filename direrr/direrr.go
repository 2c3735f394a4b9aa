// Package direrr defines the error taxonomy shared across the compositor's
// components. ScriptError, AssetError and EncoderError wrap an underlying
// cause and expose it through Unwrap; the other kinds carry only their own
// fields. Every kind is matched with errors.As rather than by sentinel
// comparison, so callers can carry structured detail (an offending path, a
// layer name) alongside the error.
package direrr

import "fmt"

// ScriptError reports malformed input, an unknown option, a stale node
// handle, or a reference to a nonexistent audio track. Engine state is left
// untouched when this is returned.
type ScriptError struct {
	Op  string
	Err error
}

func (e *ScriptError) Error() string { return fmt.Sprintf("script: %s: %v", e.Op, e.Err) }
func (e *ScriptError) Unwrap() error { return e.Err }

// NewScript wraps err as a ScriptError for operation op.
func NewScript(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ScriptError{Op: op, Err: err}
}

// AssetError reports a missing file, decode failure, or unknown image
// format. The offending node renders as empty/transparent; callers should
// log this once per distinct failure.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string { return fmt.Sprintf("asset %q: %v", e.Path, e.Err) }
func (e *AssetError) Unwrap() error { return e.Err }

// LottieUnsupportedError reports an unknown Lottie effect type or
// unimplemented layer type. The feature is retained as a no-op by the
// caller; this error is only used for the once-per-process warning log.
type LottieUnsupportedError struct {
	Kind string
	Name string
}

func (e *LottieUnsupportedError) Error() string {
	return fmt.Sprintf("lottie: unsupported %s %q", e.Kind, e.Name)
}

// EncoderError reports a non-zero exit from ffmpeg during frame production
// or muxing. Stderr is preserved for diagnostics.
type EncoderError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("encoder %s failed: %v\n%s", e.Stage, e.Err, e.Stderr)
}
func (e *EncoderError) Unwrap() error { return e.Err }

// NewEncoderError wraps msg as an EncoderError with no captured stderr.
// Used where the failure originates in Go code (pipe setup, temp files)
// rather than from an ffmpeg process exit.
func NewEncoderError(msg string) error {
	return &EncoderError{Stage: "setup", Err: fmt.Errorf("%s", msg)}
}

// PreviewDecoderError is returned to a Video node's decode requester; the
// node continues presenting its last good frame rather than erroring the
// whole render.
type PreviewDecoderError struct {
	Msg string
}

func (e *PreviewDecoderError) Error() string { return "preview decoder: " + e.Msg }

// PathEscapeError reports a preview file-API request outside the allowed
// roots.
type PathEscapeError struct {
	Path string
}

func (e *PathEscapeError) Error() string { return fmt.Sprintf("path escapes allowed roots: %q", e.Path) }

// LockPoisonedError surfaces a poisoned shared-resource lock as a
// script-level error rather than a process abort.
type LockPoisonedError struct {
	Resource string
}

func (e *LockPoisonedError) Error() string { return fmt.Sprintf("lock poisoned: %s", e.Resource) }
