package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/cache"
	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/family"
	"github.com/jkral/interwiki/pkg/mediawiki"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve family and graph data over HTTP",
		Long: `Serve exposes the derived data as a small JSON API:

  GET /healthz              liveness check
  GET /api/families         family grouping of all pages
  GET /api/orphans          translations with no interlanguage links
  GET /api/langlinks        computed links for one page (?title=...)
  GET /graph.svg            rendered category graph (?root=...&counters=1)

Rendered graphs are cached in the configured artifact cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			renderCache, err := c.newRenderCache(ctx)
			if err != nil {
				return err
			}
			defer renderCache.Close()

			srv := &server{
				cli:         c,
				client:      client,
				renderCache: renderCache,
				keyer:       cache.NewScopedKeyer(nil, "wiki:"+client.Endpoint()+":"),
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			printInfo("Listening on %s", addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// server holds the HTTP handler state.
type server struct {
	cli         *CLI
	client      *mediawiki.Client
	renderCache cache.Cache
	keyer       cache.Keyer

	mu       sync.Mutex
	resolver *family.Resolver
	graph    *catgraph.Graph
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/families", s.handleFamilies)
	r.Get("/api/orphans", s.handleOrphans)
	r.Get("/api/langlinks", s.handleLangLinks)
	r.Get("/graph.svg", s.handleGraphSVG)
	return r
}

// logRequests logs each request with the CLI's structured logger.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := withLogger(r.Context(), s.cli.Logger)
		next.ServeHTTP(ww, r.WithContext(ctx))
		s.cli.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// getResolver builds the family resolver on first use.
func (s *server) getResolver(r *http.Request) (*family.Resolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolver != nil {
		return s.resolver, nil
	}
	resolver, _, err := s.cli.newResolver(r.Context(), s.client)
	if err != nil {
		return nil, err
	}
	s.resolver = resolver
	return resolver, nil
}

// getGraph builds the category graph on first use.
func (s *server) getGraph(r *http.Request) (*catgraph.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph != nil {
		return s.graph, nil
	}
	graph := catgraph.New(s.client, s.cli.Logger)
	if err := graph.Update(r.Context()); err != nil {
		return nil, err
	}
	s.graph = graph
	return graph, nil
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	resolver, err := s.getResolver(r)
	if err != nil {
		httpError(w, err)
		return
	}
	out := make(map[string][]string)
	for key, members := range resolver.Families() {
		titles := make([]string, 0, len(members))
		for _, p := range members {
			titles = append(titles, p.Title)
		}
		out[key] = titles
	}
	writeJSON(w, out)
}

func (s *server) handleOrphans(w http.ResponseWriter, r *http.Request) {
	resolver, err := s.getResolver(r)
	if err != nil {
		httpError(w, err)
		return
	}
	orphans, err := resolver.FindOrphans()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, orphans)
}

func (s *server) handleLangLinks(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "missing title parameter", http.StatusBadRequest)
		return
	}
	resolver, err := s.getResolver(r)
	if err != nil {
		httpError(w, err)
		return
	}
	links, err := resolver.GetLangLinks(title)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, links)
}

func (s *server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	graph, err := s.getGraph(r)
	if err != nil {
		httpError(w, err)
		return
	}

	opts := catgraph.DOTOptions{
		Root:     r.URL.Query().Get("root"),
		Counters: r.URL.Query().Get("counters") == "1",
	}
	dot := graph.ToDOT(opts)

	key := s.keyer.RenderKey(cache.Hash([]byte(dot)), cache.RenderKeyOpts{
		Root:     opts.Root,
		Format:   "svg",
		Counters: opts.Counters,
	})
	if data, hit, _ := s.renderCache.Get(r.Context(), key); hit {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(data)
		return
	}

	data, err := catgraph.RenderSVG(r.Context(), dot)
	if err != nil {
		httpError(w, err)
		return
	}
	_ = s.renderCache.Set(r.Context(), key, data, time.Hour)

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
