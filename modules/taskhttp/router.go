package taskhttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/taskkit/modules/taskimport"
	"github.com/dmitrymomot/taskkit/pkg/httpserver"
	"github.com/dmitrymomot/taskkit/pkg/logger"
)

// RouterOptions configures the API router. Every field is optional: the
// zero value mounts the routes at the root with a default importer and
// slog.Default().
type RouterOptions struct {
	Config   Config
	Logger   *slog.Logger
	Importer *taskimport.Importer
}

// Router builds the task API. Routes are mounted under Config.BasePath:
//
//	POST {base}/tasks         create a single task
//	POST {base}/tasks/import  bulk import via taskimport
//	POST {base}/lists         create a task list
//	POST {base}/users         create a user
//
// A liveness probe is always available at /healthz, outside the base path.
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	imp := opts.Importer
	if imp == nil {
		imp = taskimport.New(taskimport.WithLogger(log))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if opts.Config.LogRequests {
		r.Use(requestLogger(log))
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(context.Background(), log))

	base := opts.Config.BasePath
	if base == "" {
		base = "/"
	}
	r.Route(base, func(api chi.Router) {
		api.Post("/tasks", createTask(log))
		api.Post("/tasks/import", importTasks(log, imp))
		api.Post("/lists", createList(log))
		api.Post("/users", createUser(log))
	})

	return r
}

// Serve runs the router on cfg.Addr with graceful shutdown. It blocks until
// ctx is cancelled or an interrupt signal arrives.
func Serve(ctx context.Context, cfg Config, opts RouterOptions) error {
	opts.Config = cfg
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("task API listening", slog.String("addr", cfg.Addr), slog.String("base_path", cfg.BasePath))
		}),
	)
	return srv.Run(ctx, Router(opts))
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
				logger.RequestID(middleware.GetReqID(r.Context())),
			)
		})
	}
}
