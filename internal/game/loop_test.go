package game

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/davrk/errblast/internal/input"
	"github.com/davrk/errblast/internal/theme"
)

func testTermSize() (int, int, error) {
	return 60, 20, nil
}

func newTestLoop(in io.Reader, opts Options) *Loop {
	if opts.Theme.Code == "" {
		opts.Theme = theme.ForCode("404")
	}
	if opts.TermSize == nil {
		opts.TermSize = testTermSize
	}
	return NewLoop(in, io.Discard, opts)
}

func TestLoopStopsOnInputEOF(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after input EOF")
	}
	if l.Phase() != PhaseStopped {
		t.Errorf("phase = %v, want PhaseStopped", l.Phase())
	}
}

func TestLoopRunTwice(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != ErrAlreadyStarted {
		t.Errorf("second Run = %v, want ErrAlreadyStarted", err)
	}
}

func TestLoopContextCancel(t *testing.T) {
	// A reader that never returns keeps the input stream open
	r, _ := io.Pipe()
	l := newTestLoop(r, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after context cancel")
	}
}

func TestLoopStopIdempotent(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	l.Stop()
	l.Stop()
	if l.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want PhaseIdle before Run", l.Phase())
	}
}

func TestOverlayHideFiresOnStart(t *testing.T) {
	hides := 0
	l := newTestLoop(strings.NewReader(""), Options{
		Overlay: OverlayHooks{Hide: func() { hides++ }},
	})
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hides < 1 {
		t.Error("hide hook never fired")
	}
}

func TestOverlayPanelContents(t *testing.T) {
	var buf strings.Builder
	l := NewLoop(strings.NewReader(""), &buf, Options{
		Theme:    theme.ForCode("404"),
		TermSize: testTermSize,
	})

	l.showOverlay()
	l.drawOverlay()
	if err := l.cw.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "ERROR 404 DESTROYED") {
		t.Error("missing win banner")
	}
	if !strings.Contains(out, "PAGE NOT FOUND") {
		t.Error("missing theme message")
	}
	if !strings.Contains(out, "\033[48;2;") {
		t.Error("panel text has no solid background")
	}
	if !strings.HasSuffix(out, "\033[0m") {
		t.Error("panel does not reset the style")
	}
}

func TestHandlePauseToggles(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	l.phase.Store(int32(PhaseRunning))
	lastTime := time.Now().Add(-time.Minute)

	if !l.handlePause(input.State{Pause: true}, &lastTime) {
		t.Fatal("pause key should pause")
	}
	if l.Phase() != PhasePaused {
		t.Fatalf("phase = %v, want PhasePaused", l.Phase())
	}

	if l.handlePause(input.State{Pause: true}, &lastTime) {
		t.Fatal("second pause key should resume")
	}
	if l.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want PhaseRunning", l.Phase())
	}
	if time.Since(lastTime) > time.Second {
		t.Error("resume did not reset the delta baseline")
	}
}

func TestExternalPauseResume(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	l.phase.Store(int32(PhaseRunning))
	lastTime := time.Now()

	l.Pause()
	if !l.handlePause(input.State{}, &lastTime) {
		t.Fatal("external pause request ignored")
	}

	l.Resume()
	if l.handlePause(input.State{}, &lastTime) {
		t.Fatal("external resume request ignored")
	}
}

func TestResumeRequestWhileRunningIgnored(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	l.phase.Store(int32(PhaseRunning))
	lastTime := time.Now()

	l.Resume()
	if l.handlePause(input.State{}, &lastTime) {
		t.Error("resume while running must not pause")
	}
	if l.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want PhaseRunning", l.Phase())
	}
}

func TestLoopResetRestoresSession(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	want := len(l.session.Pieces)

	l.session.Pieces = l.session.Pieces[:0]
	l.session.GameOver = true
	l.phase.Store(int32(PhaseGameOver))

	l.reset()
	if len(l.session.Pieces) != want {
		t.Errorf("pieces after reset = %d, want %d", len(l.session.Pieces), want)
	}
	if l.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want PhaseRunning", l.Phase())
	}
}

func TestSyncPhaseFollowsGameOver(t *testing.T) {
	l := newTestLoop(strings.NewReader(""), Options{})
	l.phase.Store(int32(PhaseRunning))

	l.session.GameOver = true
	l.syncPhase()
	if l.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want PhaseGameOver", l.Phase())
	}

	l.session.GameOver = false
	l.syncPhase()
	if l.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want PhaseRunning", l.Phase())
	}
}
