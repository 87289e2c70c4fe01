package server

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/viridian-dev/viridian/pkg/engine"
	"github.com/viridian-dev/viridian/pkg/host/memdom"
	"github.com/viridian-dev/viridian/pkg/idle"
	"github.com/viridian-dev/viridian/pkg/middleware"
	"github.com/viridian-dev/viridian/pkg/render"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address. Default: "localhost:3000".
	Addr string

	// Title is the page title.
	Title string

	// Gatherer, when set, is exposed on /metrics.
	Gatherer prometheus.Gatherer

	// Registerer, when set, receives the HTTP request metrics.
	Registerer prometheus.Registerer

	// ShutdownTimeout bounds graceful shutdown. Default: 5 seconds.
	ShutdownTimeout time.Duration

	// WriteTimeout bounds each websocket write. Default: 10 seconds.
	WriteTimeout time.Duration

	// Logger is the server logger. Default: slog.Default().
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:3000"
	}
	if c.Title == "" {
		c.Title = "viridian"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Server is the live view HTTP/WebSocket server.
type Server struct {
	cfg      Config
	loop     *idle.Loop
	doc      *memdom.Document
	eng      *engine.Engine
	renderer *render.Renderer
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	body    string
	commits uint64
}

// New creates a server for an engine rendering into doc. The engine must be
// scheduled on loop.
func New(cfg Config, loop *idle.Loop, doc *memdom.Document, eng *engine.Engine) *Server {
	cfg.applyDefaults()
	s := &Server{
		cfg:      cfg,
		loop:     loop,
		doc:      doc,
		eng:      eng,
		renderer: render.NewRenderer(render.RendererConfig{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev server
			},
		},
		logger:  cfg.Logger.With("component", "server"),
		clients: make(map[string]*client),
	}
	eng.OnCommit(s.committed)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.OpenTelemetry())
	if s.cfg.Registerer != nil {
		r.Use(middleware.Prometheus(middleware.WithRegistry(s.cfg.Registerer)))
	}

	r.Get("/", s.handlePage)
	r.Post("/events/{vid}/{event}", s.handleEvent)
	r.Get("/ws", s.handleWebSocket)
	if s.cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// committed runs on the loop goroutine after every commit.
func (s *Server) committed(stats engine.CommitStats) {
	html := s.renderer.Children(s.doc.Body())

	s.mu.Lock()
	s.body = html
	s.commits++
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.push(html)
	}
	s.logger.Debug("broadcast", "pass", stats.Pass, "clients", len(clients), "bytes", len(html))
}

// Body returns the body HTML as of the last commit.
func (s *Server) Body() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.body
}

// Commits returns the number of commits observed.
func (s *Server) Commits() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// renderPage renders the full document on the loop goroutine.
func (s *Server) renderPage(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if doErr := s.loop.Do(ctx, func() {
		err = s.renderer.RenderPage(&buf, render.PageData{
			Body:         s.doc.Body(),
			Title:        s.cfg.Title,
			InlineScript: clientScript,
		})
	}); doErr != nil {
		return nil, doErr
	}
	return buf.Bytes(), err
}

// Run serves HTTP and drives the idle loop until ctx is cancelled or either
// fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.logger.Info("server starting", "address", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		s.closeClients()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
