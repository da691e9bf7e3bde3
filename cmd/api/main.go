package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/auth"
	"github.com/justsurfingit/savvy/internal/config"
	"github.com/justsurfingit/savvy/internal/database"
	"github.com/justsurfingit/savvy/internal/handlers"
	"github.com/justsurfingit/savvy/internal/logger"
	"github.com/justsurfingit/savvy/internal/server"
	"github.com/justsurfingit/savvy/internal/services"
	"github.com/justsurfingit/savvy/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(database.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Echo:            cfg.IsDevelopment(),
	}, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

// newBucket returns a nil Bucket when no bucket is configured; image uploads
// then answer 503.
func newBucket(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (storage.Bucket, error) {
	if cfg.GCSBucket == "" {
		logger.Warn("GCS_BUCKET not set, image uploads disabled")
		return nil, nil
	}

	ctx := context.Background()
	opts, err := auth.StorageClientOptions(ctx, cfg.GCSCredentialsFile)
	if err != nil {
		return nil, err
	}
	bucket, err := storage.NewGCSBucket(ctx, cfg.GCSBucket, cfg.AssetBaseURL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})
	logger.Info("object store ready", zap.String("bucket", cfg.GCSBucket))
	return bucket, nil
}

func newImageService(db *gorm.DB, bucket storage.Bucket, cfg *config.Config, logger *zap.Logger) *services.ImageService {
	return services.NewImageService(db, bucket, logger, cfg.UploadMaxRetries, cfg.UploadRetryDelay)
}

func newHandlers(u *handlers.UserHandler, p *handlers.PostHandler, t *handlers.TagHandler, i *handlers.ImageHandler) server.Handlers {
	return server.Handlers{Users: u, Posts: p, Tags: t, Images: i}
}

// seedOnStart imports the job dataset the first time the store comes up
// empty. A missing dataset file is not fatal.
func seedOnStart(lc fx.Lifecycle, seeder *services.Seeder, cfg *config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := os.Stat(cfg.SeedFile); errors.Is(err, os.ErrNotExist) {
				logger.Warn("seed file not found, skipping import", zap.String("path", cfg.SeedFile))
				return nil
			}
			_, err := seeder.SeedFromFile(ctx, cfg.SeedFile)
			return err
		},
	})
}

func serveHTTP(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func main() {
	app := fx.New(
		fx.WithLogger(func(zl *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zl}
		}),
		fx.Provide(
			config.LoadConfig,
			logger.New,
			newDatabase,
			newBucket,
			services.NewUserService,
			services.NewPostService,
			services.NewTagService,
			services.NewAssociationManager,
			services.NewMatcherService,
			services.NewSeeder,
			newImageService,
			handlers.NewUserHandler,
			handlers.NewPostHandler,
			handlers.NewTagHandler,
			handlers.NewImageHandler,
			newHandlers,
			server.NewRouter,
		),
		fx.Invoke(
			seedOnStart,
			serveHTTP,
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
