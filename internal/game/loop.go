package game

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/davrk/errblast/internal/audio"
	"github.com/davrk/errblast/internal/draw"
	"github.com/davrk/errblast/internal/input"
	"github.com/davrk/errblast/internal/theme"
)

// Phase is the loop controller state.
type Phase int32

const (
	PhaseIdle     Phase = iota // Constructed, not started
	PhaseRunning               // Scheduling frames
	PhasePaused                // No frames scheduled, state frozen
	PhaseGameOver              // Pieces exhausted; ticking, firing suppressed
	PhaseStopped               // Terminal: listeners detached
)

// ErrAlreadyStarted is returned by Run when the loop has left Idle.
var ErrAlreadyStarted = errors.New("game: loop already started")

// OverlayHooks are the outbound signals to the end-of-game overlay
// collaborator. Show fires once per win, after a short delay; Hide fires on
// start and reset. Either may be nil.
type OverlayHooks struct {
	Show func()
	Hide func()
}

// Options configures a Loop.
type Options struct {
	Theme      theme.Theme
	TermSize   draw.TermSizeFunc // Defaults to the local terminal
	Cue        audio.Cue         // Defaults to silent
	Overlay    OverlayHooks
	SpritePath string // Optional ship image, loaded asynchronously
}

// Loop owns the frame scheduling for one game session: delta clamping,
// pause, resize handling, win detection forwarding and teardown. All game
// state mutation happens on the loop goroutine; the exported control
// methods only set flags that the loop observes at the top of a frame.
type Loop struct {
	session *Session
	canvas  *draw.Canvas
	cw      *draw.ChunkWriter
	stream  *input.Stream
	writer  io.Writer

	termSize draw.TermSizeFunc
	cue      audio.Cue
	overlay  OverlayHooks
	spritePt string

	phase     atomic.Int32
	running   atomic.Bool
	resetReq  atomic.Bool
	pauseReq  atomic.Bool
	resumeReq atomic.Bool

	sprite         atomic.Pointer[Sprite]
	overlayVisible bool
}

// NewLoop creates a loop for one connection/terminal. r delivers raw input
// bytes, w receives ANSI output.
func NewLoop(r io.Reader, w io.Writer, opts Options) *Loop {
	termSize := opts.TermSize
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	cue := opts.Cue
	if cue == nil {
		cue = audio.NopCue{}
	}

	termW, termH, err := termSize()
	if err != nil || termW < 1 || termH < 1 {
		termW, termH = 80, 24
	}

	l := &Loop{
		session:  NewSession(opts.Theme, termW, termH*2),
		canvas:   draw.NewCanvas(termW, termH),
		cw:       draw.NewChunkWriter(w),
		stream:   input.StartStream(r),
		writer:   w,
		termSize: termSize,
		cue:      cue,
		overlay:  opts.Overlay,
		spritePt: opts.SpritePath,
	}
	l.phase.Store(int32(PhaseIdle))
	return l
}

// Phase returns the current loop state.
func (l *Loop) Phase() Phase {
	return Phase(l.phase.Load())
}

// Session exposes the game state, e.g. for a results screen after Run
// returns. Not safe to use while the loop is running.
func (l *Loop) Session() *Session {
	return l.session
}

// Stop makes the next scheduled frame a no-op, even if already queued.
// Safe to call from any goroutine, any number of times.
func (l *Loop) Stop() {
	l.running.Store(false)
}

// Reset requests an in-place reinitialization of all entity stores, applied
// at the top of the next frame.
func (l *Loop) Reset() {
	l.resetReq.Store(true)
}

// Pause requests that frame scheduling stop with state frozen.
func (l *Loop) Pause() {
	l.pauseReq.Store(true)
}

// Resume requests that a paused loop start scheduling again. The elapsed
// time baseline is reset so the hidden duration is not reported as one
// giant delta.
func (l *Loop) Resume() {
	l.resumeReq.Store(true)
}

// Run drives the loop until Stop, quit input, or context cancellation.
// It must be called exactly once, from the goroutine that owns the session.
func (l *Loop) Run(ctx context.Context) error {
	if !l.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		return ErrAlreadyStarted
	}
	l.running.Store(true)

	draw.HideCursor(l.writer)
	_ = input.EnableMouse(l.writer) // pointer capture is best-effort
	draw.ClearScreen(l.writer)
	defer func() {
		_ = input.DisableMouse(l.writer)
		draw.ResetStyle(l.writer)
		draw.ShowCursor(l.writer)
		draw.ClearScreen(l.writer)
		l.phase.Store(int32(PhaseStopped))
	}()

	l.loadSpriteAsync()
	l.hideOverlay()

	lastTime := time.Now()
	var frameErr error

	for l.running.Load() {
		if ctx.Err() != nil {
			l.Stop()
			break
		}

		frameStart := time.Now()

		in := l.stream.Read()
		if in.Quit {
			l.Stop()
			break
		}

		if l.handlePause(in, &lastTime) {
			time.Sleep(targetFrameTime)
			continue
		}

		delta := frameStart.Sub(lastTime)
		lastTime = frameStart
		if delta > maxDelta {
			delta = maxDelta
		}
		if delta < 0 {
			delta = 0
		}

		// While the end screen shows, any confirm press restarts too
		if in.Reset || l.resetReq.Swap(false) || (l.overlayVisible && in.Start) {
			l.reset()
		}

		l.syncViewport()

		res := l.session.Update(delta.Seconds(), in)
		for i := 0; i < res.Hits; i++ {
			l.cue.Hit() // each hit cues independently; overlaps mix
		}
		if res.ShowOverlay {
			l.showOverlay()
		}
		l.syncPhase()

		if err := l.drawFrame(); err != nil {
			frameErr = err
			l.Stop()
			break
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	return frameErr
}

// handlePause applies pause/resume requests. Returns true while paused, in
// which case the caller skips update and render for this iteration.
// Resuming resets the delta baseline.
func (l *Loop) handlePause(in input.State, lastTime *time.Time) bool {
	paused := l.Phase() == PhasePaused

	toggle := in.Pause
	if l.pauseReq.Swap(false) && !paused {
		toggle = true
	}
	if l.resumeReq.Swap(false) && paused {
		toggle = true
	}

	if !toggle {
		return paused
	}

	if paused {
		l.phase.Store(int32(PhaseRunning))
		l.syncPhase()
		*lastTime = time.Now()
		return false
	}

	l.phase.Store(int32(PhasePaused))
	l.drawPausedFrame()
	return true
}

// syncPhase mirrors the session's game-over flag into the loop phase.
func (l *Loop) syncPhase() {
	switch {
	case l.session.GameOver && l.Phase() == PhaseRunning:
		l.phase.Store(int32(PhaseGameOver))
	case !l.session.GameOver && l.Phase() == PhaseGameOver:
		l.phase.Store(int32(PhaseRunning))
	}
}

// reset reinitializes the session in place and clears game-over state.
func (l *Loop) reset() {
	l.session.Reset()
	l.stream.ResetKeys()
	l.hideOverlay()
	if l.Phase() == PhaseGameOver {
		l.phase.Store(int32(PhaseRunning))
	}
}

// syncViewport re-derives all size-dependent state when the terminal size
// changed: canvas buffers, star field, text pieces and player bounds.
func (l *Loop) syncViewport() {
	termW, termH, err := l.termSize()
	if err != nil || termW < 1 || termH < 1 {
		return
	}
	if termW == l.canvas.TerminalWidth() && termH == l.canvas.TerminalHeight() {
		return
	}
	draw.ClearScreen(l.writer)
	l.canvas.Resize(termW, termH)
	l.session.Resize(termW, termH*2)
}

// drawFrame renders the session, flushes the canvas and draws text overlays
// on top.
func (l *Loop) drawFrame() error {
	l.session.Render(l.canvas, l.sprite.Load())
	l.canvas.Render(l.cw)
	l.session.RenderHUD(l.cw, l.canvas.TerminalWidth())
	if l.overlayVisible {
		l.drawOverlay()
	}
	return l.cw.Flush()
}

// drawPausedFrame renders one frozen frame with the pause label.
func (l *Loop) drawPausedFrame() {
	l.session.Render(l.canvas, l.sprite.Load())
	l.canvas.Render(l.cw)
	l.session.RenderHUD(l.cw, l.canvas.TerminalWidth())
	l.cw.SetBg(draw.ToRGB(l.session.Theme.BgOuter))
	l.cw.SetFg(draw.ToRGB(l.session.Theme.Accent))
	l.drawCentered(l.canvas.TerminalHeight()/2, "P A U S E D")
	l.cw.Reset()
	_ = l.cw.Flush()
}

// loadSpriteAsync loads the optional ship image off the loop goroutine.
// The renderer uses the geometric fallback until (and unless) it lands.
func (l *Loop) loadSpriteAsync() {
	if l.spritePt == "" {
		return
	}
	go func() {
		if sp, err := LoadSprite(l.spritePt); err == nil {
			l.sprite.Store(sp)
		}
	}()
}
