// Package web serves the HTML interface: login, registration and the
// session-gated tracker pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/healthtracker/internal/auth"
	"github.com/mmynk/healthtracker/internal/chart"
	"github.com/mmynk/healthtracker/internal/metrics"
	"github.com/mmynk/healthtracker/internal/middleware"
	"github.com/mmynk/healthtracker/internal/service"
)

const (
	loginPath    = "/login"
	registerPath = "/register"
	homePath     = "/home"
)

// homeAliases serve the same page as homePath.
var homeAliases = []string{"/dashboard", "/tracker", "/profile"}

//go:embed templates/*.html
var templateFS embed.FS

// Deps are the collaborators a Server needs.
type Deps struct {
	Auth    *service.AuthService
	Tracker *service.TrackerService
	JWT     *auth.JWTManager
	Charts  *chart.Renderer
	Metrics *metrics.Manager

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

// Server holds the HTTP handlers.
type Server struct {
	auth         *service.AuthService
	tracker      *service.TrackerService
	jwt          *auth.JWTManager
	charts       *chart.Renderer
	metrics      *metrics.Manager
	gatherer     prometheus.Gatherer
	logger       *slog.Logger
	cookieSecure bool
	templates    *template.Template
}

// NewServer parses the embedded templates and returns a ready Server.
func NewServer(deps Deps) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		auth:         deps.Auth,
		tracker:      deps.Tracker,
		jwt:          deps.JWT,
		charts:       deps.Charts,
		metrics:      deps.Metrics,
		gatherer:     deps.Gatherer,
		logger:       deps.Logger,
		cookieSecure: deps.CookieSecure,
		templates:    tmpl,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(s.logger, s.metrics))
	r.Use(middleware.Recoverer(s.logger, s.metrics))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, homePath, http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("OK"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get(loginPath, s.handleLoginPage)
	r.Post(loginPath, s.handleLogin)
	r.Get(registerPath, s.handleRegisterPage)
	r.Post(registerPath, s.handleRegister)
	r.Get("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(s.jwt, loginPath))
		for _, p := range append([]string{homePath}, homeAliases...) {
			r.Get(p, s.handleHome)
			r.Post(p, s.handleHomeSubmit)
		}
	})

	return r
}

// render executes the named template into a buffer first so a template
// failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("Failed to render template",
			"template", name,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) internalError(r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"user_id", middleware.GetUserID(r.Context()),
		"error", err,
	)
}
