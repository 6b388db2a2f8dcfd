// Package server serves the remote mirror: the embedded frontend and the
// /ws endpoint fed by the hub.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/GamepadTest/internal/hub"
)

type asset struct {
	contentType string
	body        []byte
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	assets      map[string]asset
	addr        string
	httpServer  *http.Server
	logger      *slog.Logger
}

// New prepares the frontend assets from frontendFS, minifying HTML, CSS
// and JavaScript once up front.
func New(h *hub.Hub, b *hub.Broadcaster, frontendFS fs.FS, addr string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	assets, err := loadAssets(frontendFS)
	if err != nil {
		return nil, err
	}
	return &Server{
		hub:         h,
		broadcaster: b,
		assets:      assets,
		addr:        addr,
		logger:      logger,
	}, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
	return m
}

func loadAssets(fsys fs.FS) (map[string]asset, error) {
	m := newMinifier()
	assets := make(map[string]asset)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		ct := mime.TypeByExtension(path.Ext(p))
		if ct == "" {
			ct = "application/octet-stream"
		}
		mediatype, _, _ := strings.Cut(ct, ";")
		if mediatype == "application/javascript" {
			mediatype = "text/javascript"
		}
		switch mediatype {
		case "text/html", "text/css", "text/javascript":
			if body, err = m.Bytes(mediatype, body); err != nil {
				return fmt.Errorf("minify %s: %w", p, err)
			}
		}
		assets["/"+p] = asset{contentType: ct, body: body}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load frontend: %w", err)
	}
	return assets, nil
}

// Handler returns the mirror's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.logger))
	mux.HandleFunc("/", s.serveAsset)
	return mux
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	a, ok := s.assets[p]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Write(a.body)
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.logger.Info("Mirror listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// URL turns a listen address into a browsable address for it.
func URL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Info("Shutting down mirror server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
