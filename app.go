package viridian

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/viridian-dev/viridian/internal/config"
	"github.com/viridian-dev/viridian/pkg/engine"
	"github.com/viridian-dev/viridian/pkg/host/memdom"
	"github.com/viridian-dev/viridian/pkg/idle"
	"github.com/viridian-dev/viridian/pkg/render"
	"github.com/viridian-dev/viridian/pkg/server"
)

// App wires a configured engine to an in-memory document and the idle loop.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	loop     *idle.Loop
	doc      *memdom.Document
	eng      *engine.Engine
	registry *prometheus.Registry
}

// NewApp creates an App from cfg, logging to w.
func NewApp(cfg *config.Config, w io.Writer) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := NewLogger(cfg, w)
	a := &App{
		cfg:    cfg,
		logger: logger,
		loop: idle.NewLoop(idle.LoopConfig{
			FrameInterval: cfg.Scheduler.FrameInterval.Std(),
			Slice:         cfg.Scheduler.Slice.Std(),
			Logger:        logger,
		}),
		doc:      memdom.NewDocument(),
		registry: prometheus.NewRegistry(),
	}
	a.eng = engine.New(a.doc, a.loop,
		engine.WithLogger(logger),
		engine.WithYieldThreshold(cfg.Scheduler.YieldThreshold.Std()),
		engine.WithLenientHooks(!cfg.StrictHooks()),
		engine.WithRegisterer(a.registry),
	)
	return a, nil
}

// NewLogger builds the process logger described by cfg.Log.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Render renders el into the document body and commits it before
// returning. It drives the engine on the calling goroutine and must not be
// used while Serve is running.
func (a *App) Render(el *Element) error {
	a.eng.Render(el, a.doc.Body())
	return a.eng.Flush()
}

// HTML returns the body's content as HTML.
func (a *App) HTML() string {
	return render.NewRenderer(render.RendererConfig{}).Children(a.doc.Body())
}

// Serve mounts el and serves it live until ctx is cancelled.
func (a *App) Serve(ctx context.Context, el *Element) error {
	srv := server.New(server.Config{
		Addr:       a.cfg.Server.Addr,
		Gatherer:   a.gatherer(),
		Registerer: a.registerer(),
		Logger:     a.logger,
	}, a.loop, a.doc, a.eng)

	if err := a.loop.Submit(func() { a.eng.Render(el, a.doc.Body()) }); err != nil {
		return err
	}
	return srv.Run(ctx)
}

func (a *App) gatherer() prometheus.Gatherer {
	if !a.cfg.Server.Metrics {
		return nil
	}
	return a.registry
}

func (a *App) registerer() prometheus.Registerer {
	if !a.cfg.Server.Metrics {
		return nil
	}
	return a.registry
}

// Engine returns the app's engine.
func (a *App) Engine() *engine.Engine { return a.eng }

// Document returns the app's host document.
func (a *App) Document() *memdom.Document { return a.doc }

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Registry returns the registry holding the engine's metrics.
func (a *App) Registry() *prometheus.Registry { return a.registry }
