package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hperssn/spinwheel/internal/metrics"
	"github.com/hperssn/spinwheel/internal/wheel"
)

// Deps are the collaborators the router needs. Metrics and StaticDir are
// optional.
type Deps struct {
	Service   *wheel.Service
	Hub       *wheel.Hub
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	StaticDir string
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog(logger, d.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/segments", listSegments(d.Service, logger))
		r.Post("/segments", createSegment(d.Service, logger))
		r.Delete("/segments", deleteAllSegments(d.Service, logger))
		r.Delete("/segments/{id}", deleteSegment(d.Service, logger))

		r.Get("/session", getSession(d.Service, logger))
		r.Patch("/session", updateSession(d.Service, logger))
		r.Post("/session/spin", incrementSpinCount(d.Service, logger))

		r.Post("/spin", spin(d.Service, logger))
		if d.Hub != nil {
			r.Get("/spin/events", StreamSpinEvents(d.Hub))
		}
	})

	if d.StaticDir != "" {
		index := filepath.Join(d.StaticDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
		fs := http.FileServer(http.Dir(d.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
	}

	return r
}
