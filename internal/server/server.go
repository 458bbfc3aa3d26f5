package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/kiruna-explorer/backend/internal/db"
	"github.com/kiruna-explorer/backend/internal/queue"
	mid "github.com/kiruna-explorer/backend/internal/server/middleware"
	"github.com/kiruna-explorer/backend/internal/storage"
	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/catalog"
	"github.com/kiruna-explorer/backend/pkg/layout"
	"github.com/kiruna-explorer/backend/pkg/logger"
	"github.com/kiruna-explorer/backend/pkg/store"
	"github.com/kiruna-explorer/backend/pkg/store/memory"
	pgxstore "github.com/kiruna-explorer/backend/pkg/store/pgx"
)

const serviceName = "kiruna-catalog"

// New builds the echo instance serving app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = mid.NewValidator()

	if util.GetEnv("TRACE_ENDPOINT") != "" {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(util.GetEnvString("BODY_LIMIT", "64M")))

	RegisterRoutes(e)
	return e
}

// LayoutParamsFromEnv reads the supported year range of the diagram.
func LayoutParamsFromEnv() layout.Params {
	p := layout.DefaultParams()
	p.FirstYear = util.GetEnvInt("LAYOUT_FIRST_YEAR", p.FirstYear)
	p.LastYear = util.GetEnvInt("LAYOUT_LAST_YEAR", p.LastYear)
	return p
}

// Init wires the catalogue from the environment and serves until SIGINT or
// SIGTERM. Without DATABASE_URL the catalogue lives in memory, without
// AWS_BUCKET blobs do too, and without RABBITMQ_HOST deleted blobs are
// removed synchronously.
func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := InitTracing(ctx, util.GetEnv("TRACE_ENDPOINT"))
	if err != nil {
		logger.Fatal("Failed to set up tracing", "err", err)
	}
	defer shutdownTracing(context.Background())

	app := &mid.App{}

	var catalogStorage store.CatalogStorage
	if dbURL := util.GetEnv("DATABASE_URL"); dbURL != "" {
		// postgres may still be starting when the server comes up
		m, err := util.Retry(5, func() (*db.Migrator, error) {
			return db.NewMigrator(dbURL, util.GetEnvString("MIGRATIONS_PATH", "migrations"))
		})
		if err != nil {
			logger.Fatal("Failed to prepare migrations", "err", err)
		}
		if err := m.Up(); err != nil {
			logger.Fatal("Failed to migrate database", "err", err)
		}
		m.Close()

		conn, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", "err", err)
		}
		defer conn.Close()
		catalogStorage = pgxstore.NewCatalogDBStorageWithConnection(conn)
		app.StoreBackend = "postgres"
	} else {
		logger.Warn("DATABASE_URL not set, keeping the catalogue in memory")
		catalogStorage = memory.NewStore()
		app.StoreBackend = "memory"
	}

	var blobs store.BlobStorage
	if s3cfg := storage.S3ConfigFromEnv(); s3cfg.Bucket != "" {
		client, err := storage.NewS3Client(ctx, s3cfg)
		if err != nil {
			logger.Fatal("Failed to create S3 client", "err", err)
		}
		blobs = storage.NewS3Storage(client, s3cfg.Bucket)
		app.BlobBackend = "s3"
	} else {
		logger.Warn("AWS_BUCKET not set, keeping uploads in memory")
		blobs = memory.NewBlobStore()
		app.BlobBackend = "memory"
	}

	opts := catalog.Options{
		Layout:            LayoutParamsFromEnv(),
		UploadParallelism: util.GetEnvInt("UPLOAD_PARALLELISM", 4),
	}
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que, err := queue.Init(ctx)
		if err != nil {
			logger.Fatal("Failed to connect to queue", "err", err)
		}
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		defer ch.Close()
		if err := queue.SetupQueues(ch, []string{queue.CleanupQueue}); err != nil {
			logger.Fatal("Failed to declare queues", "err", err)
		}
		opts.Cleanup = queue.NewCleanupPublisher(ch)
		watchChannel(ch)
	}

	app.Catalog = catalog.NewService(catalogStorage, blobs, opts)
	e := New(app)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port, "store", app.StoreBackend, "blobs", app.BlobBackend)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), util.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// watchChannel logs when the broker closes the publishing channel. Deletes
// after that fall back to synchronous blob removal.
func watchChannel(ch *amqp091.Channel) {
	closed := ch.NotifyClose(make(chan *amqp091.Error, 1))
	go func() {
		if err, ok := <-closed; ok && err != nil {
			logger.Error("Queue channel closed", "err", err)
		}
	}()
}
