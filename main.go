//
// Blogful
// =======
// A REST API for a small blog: articles, comments on them, and users.
// Data lives in PostgreSQL; free text is escaped before it is served.
//
// Print the route docs with `go run . -routes`.
//
// Boot the server:
// ----------------
// $ BLOGFUL_DATABASE_URL=postgres://localhost/blogful go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/
// root.
//
// $ curl -X POST -d '{"title":"Hi","content":"First post","style":"Story"}' http://localhost:3333/api/articles
// {"id":1,"style":"Story","title":"Hi","content":"First post","date_published":"..."}
//
// $ curl -X PATCH -d '{"title":"Hello"}' http://localhost:3333/api/articles/1
//
// $ curl -X DELETE http://localhost:3333/api/articles/1
//
// $ curl http://localhost:3333/api/articles/1
// {"error":{"message":"Article doesn't exist"}}
//
// Metrics are served on the diag port: http://localhost:9999/metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	_ "github.com/joho/godotenv/autoload"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/blogful/internal/article"
	"github.com/SergeyParamoshkin/blogful/internal/comment"
	"github.com/SergeyParamoshkin/blogful/internal/config"
	"github.com/SergeyParamoshkin/blogful/internal/errresponse"
	"github.com/SergeyParamoshkin/blogful/internal/logging"
	"github.com/SergeyParamoshkin/blogful/internal/metrics"
	"github.com/SergeyParamoshkin/blogful/internal/store"
	"github.com/SergeyParamoshkin/blogful/internal/user"
)

const (
	ServiceName     = "blogful"
	shutdownTimeout = 10 * time.Second
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Resource is a mounted entity handler.
type Resource interface {
	Path() string
	Routes() chi.Router
}

type App struct {
	sugarLogger *zap.SugaredLogger
	db          Pinger
	metrics     *metrics.Recorder
	resources   []Resource
}

func main() {
	var (
		routes   = flag.Bool("routes", false, "Generate router documentation")
		addr     = flag.String("addr", "", "application port, overrides BLOGFUL_ADDR")
		diagAddr = flag.String("diag_addr", "", "diag port, overrides BLOGFUL_DIAG_ADDR")
	)

	flag.Parse()

	// Passing -routes to the program will generate docs for the router
	// definition. No database is needed for that.
	if *routes {
		nop := zap.NewNop().Sugar()
		a := App{
			sugarLogger: nop,
			resources: []Resource{
				article.NewDBHandler(nil, nop),
				comment.NewDBHandler(nil, nop),
				user.NewDBHandler(nil, nop),
			},
		}

		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blogful",
			Intro:       "Blogful REST API routes.",
		}))

		return
	}

	if err := run(*addr, *diagAddr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr, diagAddr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if addr != "" {
		cfg.Addr = addr
	}

	if diagAddr != "" {
		cfg.DiagAddr = diagAddr
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() // flushes buffer, if any

	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DatabaseURL, sugar)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	exporter, err := metrics.NewExporter()
	if err != nil {
		return err
	}

	a := App{
		sugarLogger: sugar,
		db:          sqlDB,
		metrics:     metrics.NewRecorder(global.Meter(ServiceName)),
		resources: []Resource{
			article.NewDBHandler(db, sugar),
			comment.NewDBHandler(db, sugar),
			user.NewDBHandler(db, sugar),
		},
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	servers := []*http.Server{
		{Addr: cfg.Addr, Handler: a.Router(), ReadHeaderTimeout: 5 * time.Second},
		{Addr: cfg.DiagAddr, Handler: diagRouter, ReadHeaderTimeout: 5 * time.Second},
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			sugar.Infow("listening", "addr", srv.Addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		sugar.Infow("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}

		return errors.Join(errs...)
	})

	return g.Wait()
}

// Router builds the public API.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("root.")); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Get("/ping", a.Ping)

	for _, res := range a.resources {
		r.Mount(res.Path(), res.Routes())
	}

	return r
}

// Ping answers pong while the database is reachable.
func (a *App) Ping(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), a.sugarLogger)

	if a.db != nil {
		if err := a.db.PingContext(r.Context()); err != nil {
			logger.Errorw("ping database", "error", err)

			if err := render.Render(w, r, errresponse.ErrUnavailable(err)); err != nil {
				logger.Errorw(err.Error())
			}

			return
		}
	}

	if _, err := w.Write([]byte("pong")); err != nil {
		logger.Errorw(err.Error())
	}
}
