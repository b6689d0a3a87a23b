package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/NBAH79/XConsole/internal/config"
	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer"
	"github.com/NBAH79/XConsole/internal/renderer/backend"
	"github.com/NBAH79/XConsole/internal/script"
)

// Script sprite placement, to the right of the text panel.
const (
	scriptX           = 117
	scriptY           = 27
	scriptWidth       = 10
	scriptPixelHeight = 36
)

// Options configures the application.
type Options struct {
	// Input ends the run loop on a key press.
	Input backend.InputPoller
	// Pacer pauses between frames. Defaults to backend.SleepPacer.
	Pacer backend.Pacer
	// Logger defaults to logging.Default().
	Logger *logging.Logger
	// Rand seeds the fire. Nil uses a random seed.
	Rand *rand.Rand
}

// Application runs the demo on a console driver.
type Application struct {
	cfg     *config.Config
	driver  backend.Driver
	window  *renderer.Window
	log     *logging.Logger
	metrics *Metrics
	rng     *rand.Rand
	delay   time.Duration

	scene   *Scene
	script  *script.Sprite
	watcher *script.Watcher

	running atomic.Bool
	quit    atomic.Bool
}

// New creates an application. cfg must already be validated.
func New(cfg *config.Config, driver backend.Driver, opts Options) *Application {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Application{
		cfg:    cfg,
		driver: driver,
		window: renderer.NewWindow(driver, renderer.Options{
			Pacer:  opts.Pacer,
			Input:  opts.Input,
			Logger: opts.Logger,
		}),
		log:     opts.Logger.WithComponent("app"),
		metrics: NewMetrics(),
		rng:     opts.Rand,
	}
}

// Window returns the render window.
func (app *Application) Window() *renderer.Window {
	return app.window
}

// Metrics returns the frame metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Run initializes the window, builds the scene and renders until a key
// press or ctx is done. A key press returns nil.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.init(); err != nil {
		app.closeScript()
		return err
	}
	defer func() {
		if cerr := app.shutdown(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	app.log.Info("running, frame delay %v", app.delay)

	err = app.window.Run(ctx, app.delay, app.frame)
	if errors.Is(err, ErrQuit) {
		err = nil
	}
	return err
}

// Quit ends Run after the current frame. It is safe to call from any
// goroutine.
func (app *Application) Quit() {
	app.quit.Store(true)
}

func (app *Application) init() error {
	delay, err := app.cfg.Frame.Duration()
	if err != nil {
		return NewComponentError("config", "frame delay", err)
	}
	app.delay = delay

	palette, err := app.cfg.Palette.Resolve()
	if err != nil {
		return NewComponentError("config", "palette", err)
	}

	w := app.cfg.Window
	status := app.window.Initialize(w.Width, w.Height, w.Title, palette, w.Cursor)
	if status != backend.StatusOK {
		return NewComponentError("window", "initialize", fmt.Errorf("%w: driver status %v", ErrInitialization, status))
	}

	app.scene, err = NewScene(app.cfg.Demo.FireIterations, app.rng)
	if err != nil {
		return NewComponentError("scene", "build", err)
	}

	if path := app.cfg.Script.Path; path != "" {
		app.script, err = script.NewSprite(path, script.Options{
			X:           scriptX,
			Y:           scriptY,
			Width:       scriptWidth,
			PixelHeight: scriptPixelHeight,
			Logger:      app.log,
		})
		if err != nil {
			return NewComponentError("script", "load", err)
		}
		if app.cfg.Script.Watch {
			app.watcher, err = script.NewWatcher(path, app.script.RequestReload, app.log)
			if err != nil {
				// the script still runs, only hot reload is lost
				app.log.Warn("watch %s: %v", path, err)
			}
		}
	}
	return nil
}

// frame draws and advances the scene. Panics become errors so the driver
// is always shut down.
func (app *Application) frame(n uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	if app.quit.Load() {
		return ErrQuit
	}
	start := time.Now()

	app.scene.Draw(app.window)
	if app.script != nil {
		app.window.Draw(app.script)
	}
	if app.driver.LastError() != backend.StatusOK {
		app.metrics.RecordDriverError()
	}

	app.scene.Update()
	if app.script != nil {
		app.script.Update(n)
	}

	app.metrics.RecordFrame(time.Since(start))
	return nil
}

func (app *Application) shutdown() error {
	errs := &ErrorList{}
	if app.watcher != nil {
		errs.Add(WrapError(app.watcher.Close(), "closing watcher"))
		app.watcher = nil
	}
	app.closeScript()

	app.log.WithFields(app.metrics.Snapshot().Fields()).Info("stopped")
	return errs.AsError()
}

func (app *Application) closeScript() {
	if app.script != nil {
		app.script.Close()
		app.script = nil
	}
}
