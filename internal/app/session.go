package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/termrect/internal/config"
	"github.com/dshills/termrect/internal/renderer/backend"
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/grid"
)

// Session errors.
var (
	// ErrStop is returned by a Scene to end the session early.
	ErrStop = errors.New("scene stopped")

	// ErrNoBackend is returned when a session is created without a backend.
	ErrNoBackend = errors.New("no backend")

	// ErrEmptyGrid is returned when neither the config nor the backend
	// give the grid a size.
	ErrEmptyGrid = errors.New("grid has no cells")
)

// Scene draws one frame into the grid.
type Scene interface {
	Frame(g *grid.Grid, n int) error
}

// SceneFunc adapts a function to the Scene interface.
type SceneFunc func(g *grid.Grid, n int) error

// Frame calls f.
func (f SceneFunc) Frame(g *grid.Grid, n int) error {
	return f(g, n)
}

// Options configures a Session.
type Options struct {
	// Backend receives the painted frames. Required.
	Backend backend.Backend

	// Config supplies size, fill, timing and palette.
	// Defaults to config.Default().
	Config *config.Config

	// Logger receives session logs. Defaults to GetLogger().
	Logger *Logger

	// Metrics collects frame timing. Defaults to a new tracker.
	Metrics *Metrics
}

// Session owns a grid and paints it to a backend frame by frame.
// The first paint is full; every later paint sends only the delta.
type Session struct {
	mu sync.Mutex

	id      string
	backend backend.Backend
	grid    *grid.Grid
	cfg     *config.Config
	logger  *Logger
	metrics *Metrics

	// stylesMu guards styles apart from mu, so scenes can resolve styles
	// while Step holds mu.
	stylesMu sync.RWMutex
	styles   map[string]core.Style

	// needFull forces the next paint to clear the device and draw everything.
	needFull bool
}

// NewSession creates a session. The grid takes the configured size, or
// the backend's size for any dimension left at zero.
func NewSession(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	styles, err := cfg.Styles()
	if err != nil {
		return nil, fmt.Errorf("session palette: %w", err)
	}

	width, height := cfg.Width, cfg.Height
	bw, bh := opts.Backend.Size()
	if width == 0 {
		width = bw
	}
	if height == 0 {
		height = bh
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}

	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		backend:  opts.Backend,
		grid:     grid.New(width, height, grid.WithFill(cfg.Fill, normalStyle(styles))),
		cfg:      cfg.Clone(),
		styles:   styles,
		logger:   logger.WithComponent("session").WithField("session", id),
		metrics:  metrics,
		needFull: true,
	}
	s.logger.Debug("created %dx%d grid", width, height)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Grid returns the session grid.
func (s *Session) Grid() *grid.Grid {
	return s.grid
}

// Metrics returns the session metrics.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Config returns a copy of the active configuration.
func (s *Session) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Style returns the palette style called name. Scenes may call it from
// inside Frame.
func (s *Session) Style(name string) (core.Style, bool) {
	s.stylesMu.RLock()
	defer s.stylesMu.RUnlock()
	style, ok := s.styles[name]
	return style, ok
}

func normalStyle(styles map[string]core.Style) core.Style {
	if style, ok := styles["normal"]; ok {
		return style
	}
	return core.DefaultStyle()
}

// Run drives scene until it has drawn the configured number of frames,
// returns ErrStop, the user quits or ctx is cancelled. Any other scene
// or backend error ends the session and is returned.
func (s *Session) Run(ctx context.Context, scene Scene) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if src, ok := s.backend.(backend.EventSource); ok {
		go s.pumpEvents(ctx, src, cancel)
	}

	s.mu.Lock()
	frames, delay := s.cfg.Frames, s.cfg.Delay()
	s.mu.Unlock()

	s.logger.Info("running %d frames every %s", frames, delay)
	for n := 0; frames == 0 || n < frames; n++ {
		if ctx.Err() != nil {
			s.logger.Info("stopped after %d frames", n)
			return nil
		}

		timer := StartTimer()
		err := s.Step(scene, n)
		elapsed := timer.Elapsed()
		s.metrics.RecordFrame(elapsed)

		if errors.Is(err, ErrStop) {
			s.logger.Info("scene stopped at frame %d", n)
			return nil
		}
		if err != nil {
			s.logger.Error("frame %d: %v", n, err)
			return err
		}

		if frames != 0 && n == frames-1 {
			break
		}
		wait := delay - elapsed
		if delay > 0 && wait <= 0 {
			s.metrics.RecordDroppedFrame()
			continue
		}
		select {
		case <-ctx.Done():
		case <-time.After(wait):
		}
	}

	snap := s.metrics.Snapshot()
	s.logger.Info("done: %d frames, %d full and %d delta paints", snap.FrameCount, snap.FullPaints, snap.DeltaPaints)
	return nil
}

// Step draws frame n of scene and paints the result.
func (s *Session) Step(scene Scene, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := scene.Frame(s.grid, n); err != nil {
		if errors.Is(err, ErrStop) {
			return err
		}
		return fmt.Errorf("frame %d: %w", n, err)
	}
	return s.paint()
}

// Repaint paints pending changes without running a frame.
func (s *Session) Repaint() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paint()
}

// paint sends the grid to the backend. Callers hold s.mu.
func (s *Session) paint() error {
	timer := StartTimer()
	full := s.needFull
	if full {
		s.backend.Clear()
		s.grid.DrawFull(s.backend, core.Pos{})
		s.grid.MarkNoneChanged()
		s.needFull = false
	} else {
		s.grid.DrawDelta(s.backend, core.Pos{})
	}
	s.backend.Show()
	s.metrics.RecordPaint(full, timer.Elapsed())

	if r, ok := s.backend.(backend.ErrorReporter); ok {
		if err := r.Err(); err != nil {
			return fmt.Errorf("paint: %w", err)
		}
	}
	return nil
}

// HandleEvent reacts to a device event. It reports whether the event
// asks the session to stop.
func (s *Session) HandleEvent(ev backend.Event) bool {
	if ev.IsQuit() {
		s.logger.Debug("quit event")
		return true
	}
	if ev.Type != backend.EventResize {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("device resized to %dx%d", ev.Width, ev.Height)
	s.metrics.RecordResize()
	s.needFull = true
	return false
}

func (s *Session) pumpEvents(ctx context.Context, src backend.EventSource, cancel context.CancelFunc) {
	for ctx.Err() == nil {
		ev := src.PollEvent()
		if s.HandleEvent(ev) {
			cancel()
			return
		}
		if ev.Type == backend.EventResize {
			if err := s.Repaint(); err != nil {
				s.logger.Warn("repaint after resize: %v", err)
			}
		}
	}
}

// ApplyConfig swaps in a reloaded configuration. Timing and log level
// take effect on the next frame and the palette on the next style lookup.
// Text already in the grid keeps the style it was written with. Grid size
// and fill keep their values from session creation.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("rejected config reload: %v", err)
		return fmt.Errorf("reload config: %w", err)
	}
	styles, err := cfg.Styles()
	if err != nil {
		s.logger.Warn("rejected config reload: %v", err)
		return fmt.Errorf("reload palette: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cfg.Clone()
	next.Width, next.Height, next.Fill = s.cfg.Width, s.cfg.Height, s.cfg.Fill
	s.cfg = next
	s.stylesMu.Lock()
	s.styles = styles
	s.stylesMu.Unlock()
	s.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	s.metrics.RecordReload()
	s.logger.Info("config reloaded (%d styles)", len(styles))
	return nil
}
