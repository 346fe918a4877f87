package gourmet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gourmet-box/gourmet/core"
)

const (
	shutdownTimeout   = 5 * time.Second
	cacheControlDev   = "no-store"
	cacheControlProd  = "public, max-age=31536000, immutable"
	routeHeader       = "X-Gourmet-Route"
	htmlContentType   = "text/html; charset=utf-8"
	gzipEncoding      = "gzip"
	readHeaderTimeout = 10 * time.Second
)

// Server serves the showcase page and the public directory.
type Server struct {
	config     core.Config
	restaurant core.Restaurant
	renderer   *core.Renderer
	cache      *core.PageCache
	minifier   *core.HTMLMinifier
	reloader   *core.LiveReloader
	handler    http.Handler
}

func New(cfg core.Config) *Server {
	s := &Server{
		config:     cfg,
		restaurant: core.GourmetBox(),
		renderer:   core.NewRenderer(cfg.ViewsDir, core.TemplateFuncs(cfg.PublicDir)),
	}

	if cfg.CacheEnabled {
		s.cache = core.NewPageCache()
	}
	if cfg.MinifyHTML {
		s.minifier = core.NewHTMLMinifier()
	}

	mux := http.NewServeMux()
	if cfg.IsDev() {
		s.reloader = core.NewLiveReloader()
		mux.HandleFunc("GET "+core.LiveReloadPath, s.reloader.Handler)
	}
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("/", makeStaticHandler(cfg.PublicDir, s.cacheControl()))

	s.handler = mux
	if cfg.DebugLogs {
		s.handler = logRequests(mux)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the configured address and serves until ctx is done, then
// shuts down gracefully. Bind errors are returned immediately.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Address(), err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("serving %s on http://%s (%s)", s.restaurant.Name, ln.Addr(), s.config.Env)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if s.config.IsDev() {
		go s.watch(ctx)
	}

	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}

// Start builds a Server from cfg and runs it until ctx is done.
func Start(ctx context.Context, cfg core.Config) error {
	return New(cfg).Start(ctx)
}

func (s *Server) watch(ctx context.Context) {
	err := core.WatchTemplates(ctx, s.config.ViewsDir, func(name string) {
		log.Printf("template changed: %s", name)
		s.Reload()
	})
	if err != nil {
		log.Printf("template watcher stopped: %v", err)
	}
}

// Reload drops the parsed template and the cached page, then tells any
// connected browsers to refresh. Renders already in flight are not cached.
func (s *Server) Reload() {
	s.renderer.Reload()
	if s.cache != nil {
		s.cache.Invalidate()
	}
	if s.reloader != nil {
		s.reloader.BroadcastReload()
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.page()
	if err != nil {
		log.Printf("render %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if s.config.DebugHeaders {
		w.Header().Set(routeHeader, "index")
	}
	w.Header().Set("Content-Type", htmlContentType)

	if s.cache != nil {
		w.Header().Set("Vary", "Accept-Encoding")
		if acceptsGzip(r) {
			w.Header().Set("Content-Encoding", gzipEncoding)
			w.WriteHeader(http.StatusOK)
			w.Write(page.Gzip)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write(page.HTML)
}

func (s *Server) page() (*core.CachedPage, error) {
	var gen uint64
	if s.cache != nil {
		if page, ok := s.cache.Get(); ok {
			return page, nil
		}
		gen = s.cache.Generation()
	}

	html, err := s.renderer.Render(core.Page{
		Restaurant: s.restaurant,
		LiveReload: s.reloader != nil,
	})
	if err != nil {
		return nil, err
	}

	if s.minifier != nil {
		if html, err = s.minifier.Minify(html); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		return s.cache.Set(gen, html)
	}
	return &core.CachedPage{HTML: html}, nil
}

func (s *Server) cacheControl() string {
	if s.config.IsDev() {
		return cacheControlDev
	}
	return cacheControlProd
}

func makeStaticHandler(publicDir, cacheControl string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}

		if hasDotDotSegment(r.URL.Path) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		file := filepath.Join(publicDir, filepath.FromSlash(rel))

		serveFileWithHeaders(w, r, file, cacheControl)
	})
}

func hasDotDotSegment(p string) bool {
	for _, seg := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// serveFileWithHeaders writes file verbatim. Unlike http.ServeFile it never
// redirects, so "/sub/index.html" is served as a file like any other.
func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, file, cacheControl string) {
	f, err := os.Open(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", detectMimeType(file))
	w.Header().Set("Cache-Control", cacheControl)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func detectMimeType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".html":
		return htmlContentType
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".ico":
		return "image/x-icon"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// acceptsGzip reports whether Accept-Encoding lists gzip with a non-zero
// q-value. Wildcards are not honoured.
func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(coding), gzipEncoding) {
			continue
		}
		return qValue(params) > 0
	}
	return false
}

func qValue(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d", r.Method, r.URL.Path, rec.status)
	})
}
