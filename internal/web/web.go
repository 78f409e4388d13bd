// Package web serves the landing page bundle.
package web

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// IndexFile is the entry page every unknown path falls back to.
const IndexFile = "index.html"

// contentTypes pins the types the bundle relies on; everything else is sniffed.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

// Options configures the static server.
type Options struct {
	SSHHost string // Shown in the page's ssh command
	SSHPort string
	Logger  *log.Logger
}

type server struct {
	files  fs.FS
	fields *strings.Replacer
	logger *log.Logger
}

// Routes returns the handler for the bundle in files.
func Routes(files fs.FS, opts Options) http.Handler {
	s := &server{
		files: files,
		fields: strings.NewReplacer(
			"{{.SSHHost}}", opts.SSHHost,
			"{{.SSHPort}}", opts.SSHPort,
		),
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/*", s.serve)
	r.Head("/*", s.serve)
	return r
}

// requestLogger logs each request after it completes.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// serve returns the requested file, or the entry page for anything that
// does not name a file in the bundle.
func (s *server) serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || name == IndexFile {
		s.serveIndex(w, r)
		return
	}

	data, err := fs.ReadFile(s.files, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !isDirErr(s.files, name) {
			s.logger.Warn("read static file", "path", name, "err", err)
		}
		s.serveIndex(w, r)
		return
	}

	if ct, ok := contentTypes[path.Ext(name)]; ok {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

func (s *server) serveIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(s.files, IndexFile)
	if err != nil {
		s.logger.Error("entry page missing", "err", err)
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	filled := s.fields.Replace(string(page))

	w.Header().Set("Content-Type", contentTypes[".html"])
	http.ServeContent(w, r, IndexFile, time.Time{}, strings.NewReader(filled))
}

// isDirErr reports whether name is a directory, which fs.ReadFile refuses.
func isDirErr(files fs.FS, name string) bool {
	info, err := fs.Stat(files, name)
	return err == nil && info.IsDir()
}
