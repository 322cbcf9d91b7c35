package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/five82/glyphart/internal/glyphsvc"
)

// Uploader sends one image to the conversion service.
type Uploader interface {
	Upload(ctx context.Context, img glyphsvc.Image) (glyphsvc.Result, error)
}

// DefaultDownloadName is the suggested filename for downloaded results.
const DefaultDownloadName = "glyphart.png"

// Options configure a Controller.
type Options struct {
	Notifier     Notifier
	DownloadName string
}

// Controller holds the selected input, the in-flight gate and the latest
// result. It is safe for concurrent use; the lock is never held across the
// network call.
type Controller struct {
	uploader     Uploader
	notifier     Notifier
	downloadName string

	mu    sync.Mutex
	state State
	// generation increments on every Select so a settling request can tell
	// whether its input is still the selected one.
	generation uint64
}

// NewController builds a Controller around uploader.
func NewController(uploader Uploader, opts Options) *Controller {
	name := filepath.Base(strings.TrimSpace(opts.DownloadName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = DefaultDownloadName
	}
	return &Controller{
		uploader:     uploader,
		notifier:     opts.Notifier,
		downloadName: name,
	}
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether Submit would issue a request right now.
func (c *Controller) CanSubmit() bool {
	return c.State().CanSubmit()
}

// DownloadName returns the suggested filename for downloads.
func (c *Controller) DownloadName() string {
	return c.downloadName
}

// Select replaces the selected input and clears any result. Selecting while a
// request is in flight keeps the gate closed until that request settles; its
// outcome is then discarded in favour of the new input.
func (c *Controller) Select(in Input) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	selected := in
	phase := PhaseIdle
	if c.state.Phase == PhaseSubmitting {
		phase = PhaseSubmitting
	}
	c.state = State{Phase: phase, Input: &selected}
}

// Submit uploads the selected input and blocks until the request settles. It
// is a no-op returning false when nothing is selected or a request is already
// in flight. Failures are reported once through the Notifier; the gate is
// released on every exit path.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if !c.state.CanSubmit() {
		c.mu.Unlock()
		return false
	}
	input := *c.state.Input
	gen := c.generation
	c.state = State{Phase: PhaseSubmitting, Input: c.state.Input}
	c.mu.Unlock()

	requestID := uuid.NewString()
	logger := log.With().
		Str("request_id", requestID).
		Str("input", input.Name).
		Logger()
	logger.Info().
		Int("bytes", input.Size()).
		Str("mime", input.MIMEType).
		Msg("submitting image")

	var (
		res glyphsvc.Result
		err = fmt.Errorf("upload did not complete")
	)
	defer func() {
		if notice := c.settle(logger, gen, res, err); notice != "" && c.notifier != nil {
			c.notifier.Notify(notice)
		}
	}()

	res, err = c.upload(glyphsvc.WithRequestID(ctx, requestID), input)
	return true
}

func (c *Controller) upload(ctx context.Context, input Input) (res glyphsvc.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("upload panicked: %v", r)
		}
	}()
	if c.uploader == nil {
		return glyphsvc.Result{}, fmt.Errorf("no uploader configured")
	}
	return c.uploader.Upload(ctx, input.image())
}

// settle releases the in-flight gate and records the outcome. It returns the
// notification text for failures.
func (c *Controller) settle(logger zerolog.Logger, gen uint64, res glyphsvc.Result, err error) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	superseded := gen != c.generation
	notice := ""
	if err != nil {
		notice = NotificationText(err)
		logger.Error().Err(err).Bool("superseded", superseded).Msg("submission failed")
	} else {
		logger.Info().Int("payload_len", len(res.Payload)).Bool("superseded", superseded).Msg("submission succeeded")
	}

	switch {
	case superseded:
		c.state = State{Phase: PhaseIdle, Input: c.state.Input}
	case err != nil:
		c.state = State{Phase: PhaseFailed, Input: c.state.Input, Message: notice}
	default:
		c.state = State{
			Phase:    PhaseSucceeded,
			Input:    c.state.Input,
			Artifact: &Artifact{SourceName: res.Filename, Payload: res.Payload},
		}
	}
	return notice
}

// Download writes the current result to dir under the suggested filename and
// returns the written path. Without a result it does nothing and returns "".
func (c *Controller) Download(dir string) (string, error) {
	state := c.State()
	if !state.HasResult() {
		return "", nil
	}
	data, err := state.Artifact.Bytes()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, c.downloadName)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("result downloaded")
	return path, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".glyphart-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close download: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod download: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename download: %w", err)
	}
	return nil
}
