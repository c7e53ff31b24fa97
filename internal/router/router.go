package router

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"

	_ "cultivo-console/docs"
	mem "cultivo-console/internal/adapters/storage/memory"
	pg "cultivo-console/internal/adapters/storage/postgres"
	lite "cultivo-console/internal/adapters/storage/sqlite"
	"cultivo-console/internal/domain/cultivos"
	"cultivo-console/internal/domain/genetics"
	"cultivo-console/internal/domain/locations"
	"cultivo-console/internal/domain/registros"
	"cultivo-console/internal/middleware"
	"cultivo-console/internal/platform/logger"
	"cultivo-console/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Logger logger.Logger // puede ser nil

	// Opcional: si viene, usa Postgres. Si no, decide por env
	// (DB_DSN => Postgres, SQLITE_PATH => SQLite, nada => in-memory).
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		cultivoRepo  cultivos.Repository
		registroRepo registros.Repository
		locationRepo locations.Repository
		geneticRepo  genetics.Repository
	)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				warnStorage(opts.Logger, "postgres open failed, falling back to in-memory storage", err)
			} else {
				db = opened
			}
		}
	}

	switch {
	case db != nil:
		cultivoRepo = pg.NewCultivosRepo(db)
		registroRepo = pg.NewRegistrosRepo(db)
		locationRepo = pg.NewLocationsRepo(db)
		geneticRepo = pg.NewGeneticsRepo(db)
	case os.Getenv("SQLITE_PATH") != "":
		opened, err := lite.Open(os.Getenv("SQLITE_PATH"))
		if err != nil {
			warnStorage(opts.Logger, "sqlite open failed, falling back to in-memory storage", err)
		} else {
			cultivoRepo = lite.NewCultivosRepo(opened)
			registroRepo = lite.NewRegistrosRepo(opened)
			locationRepo = lite.NewLocationsRepo(opened)
			geneticRepo = lite.NewGeneticsRepo(opened)
		}
	}

	if cultivoRepo == nil {
		cultivoRepo = mem.NewCultivosRepo()
		registroRepo = mem.NewRegistrosRepo()
		locationRepo = mem.NewLocationsRepo()
		geneticRepo = mem.NewGeneticsRepo()
	}

	// Services por módulo
	locationsSvc := locations.NewService(locationRepo)
	geneticsSvc := genetics.NewService(geneticRepo)
	registrosSvc := registros.NewService(registroRepo)
	cultivosSvc := cultivos.NewService(cultivoRepo, locationsSvc, geneticsSvc, registrosSvc)

	// Rutas por módulo. El historial recibe el chequeo de existencia como
	// closure: el paquete registros no conoce al de cultivos.
	locations.RegisterRoutes(r, locationsSvc)
	genetics.RegisterRoutes(r, geneticsSvc)
	cultivos.RegisterRoutes(r, cultivosSvc)
	registros.RegisterRoutes(r, registrosSvc, func(ctx context.Context, id string) error {
		_, err := cultivosSvc.GetByID(ctx, id)
		if errors.Is(err, cultivos.ErrNotFound) {
			return registros.ErrCultivoNotFound
		}
		return err
	})

	return r
}

func warnStorage(log logger.Logger, msg string, err error) {
	if log == nil {
		return
	}
	log.Warn(msg, map[string]any{"error": err.Error()})
}
