package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termrect/internal/app"
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/grid"
)

// DefaultTimeout bounds a single chunk or frame call.
const DefaultTimeout = 5 * time.Second

// frameFunc is the global a script defines to draw each frame.
const frameFunc = "frame"

// StyleFunc resolves a palette style by name.
type StyleFunc func(name string) (core.Style, bool)

// Engine runs a Lua scene. It implements app.Scene.
//
// gopher-lua states are not goroutine-safe; the engine serializes every
// call with its mutex.
type Engine struct {
	L *lua.LState

	mu      sync.Mutex
	grid    *grid.Grid
	styles  StyleFunc
	logger  *app.Logger
	timeout time.Duration
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the time limit for each chunk or frame call.
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the logger that receives log() and print() output.
func WithLogger(l *app.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine drawing into g. Style names passed to
// set_text and clear are resolved with styles; a nil styles only knows
// the default style.
func NewEngine(g *grid.Grid, styles StyleFunc, opts ...Option) *Engine {
	e := &Engine{
		grid:    g,
		styles:  styles,
		logger:  app.NullLogger,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("script")

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.register()
	return e
}

// openSafeLibraries opens the libraries a scene needs and nothing that
// reaches the file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (e *Engine) register() {
	funcs := map[string]lua.LGFunction{
		"size":     e.luaSize,
		"set_text": e.luaSetText,
		"clear":    e.luaClear,
		"mark_all": e.luaMarkAll,
		"log":      e.luaLog,
		"print":    e.luaLog,
	}
	for name, fn := range funcs {
		e.L.SetGlobal(name, e.L.NewFunction(fn))
	}
}

// RunFile loads and runs the scene at path.
func (e *Engine) RunFile(path string) error {
	e.logger.Debug("loading %s", path)
	return e.run(path, func() error { return e.L.DoFile(path) })
}

// RunString runs code as a scene chunk.
func (e *Engine) RunString(code string) error {
	return e.run("chunk", func() error { return e.L.DoString(code) })
}

// HasFrame reports whether the script defines a frame function.
func (e *Engine) HasFrame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	return e.L.GetGlobal(frameFunc).Type() == lua.LTFunction
}

// Frame calls the script's frame(n) with g as the drawing target.
// Scripts without a frame function draw nothing. A frame returning false
// yields app.ErrStop.
func (e *Engine) Frame(g *grid.Grid, n int) error {
	var stop bool
	err := e.run(frameFunc, func() error {
		e.grid = g
		fn := e.L.GetGlobal(frameFunc)
		if fn.Type() != lua.LTFunction {
			return nil
		}
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(n)); err != nil {
			return err
		}
		ret := e.L.Get(-1)
		e.L.Pop(1)
		stop = ret == lua.LFalse
		return nil
	})
	if err != nil {
		return err
	}
	if stop {
		return fmt.Errorf("frame %d returned false: %w", n, app.ErrStop)
	}
	return nil
}

// run executes fn under the engine lock and the time limit.
func (e *Engine) run(name string, fn func() error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
		defer func() {
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = fmt.Errorf("%s: %w", name, ErrTimeout)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: lua panic: %v", name, r)
		}
	}()

	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

func (e *Engine) luaSize(L *lua.LState) int {
	w, h := e.grid.Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

func (e *Engine) luaSetText(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	s := L.CheckString(3)
	style := e.checkStyle(L, 4)

	changed := grid.DrawStrAt(e.grid, core.Pos{X: x, Y: y}, style, s)
	L.Push(lua.LBool(changed))
	return 1
}

func (e *Engine) luaClear(L *lua.LState) int {
	e.grid.Clear(e.checkStyle(L, 1))
	return 0
}

func (e *Engine) luaMarkAll(L *lua.LState) int {
	e.grid.MarkAllChanged()
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.logger.Info("%s", strings.Join(parts, " "))
	return 0
}

// checkStyle resolves the optional style name at argument n.
func (e *Engine) checkStyle(L *lua.LState, n int) core.Style {
	name := L.OptString(n, "")
	if name == "" {
		if style, ok := e.lookup("normal"); ok {
			return style
		}
		return core.DefaultStyle()
	}
	style, ok := e.lookup(name)
	if !ok {
		L.ArgError(n, fmt.Sprintf("unknown style %q", name))
	}
	return style
}

func (e *Engine) lookup(name string) (core.Style, bool) {
	if e.styles == nil {
		return core.Style{}, false
	}
	return e.styles(name)
}
