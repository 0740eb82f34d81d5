package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/RaushanShrivastwa/todo-app/api/handler"
	"github.com/RaushanShrivastwa/todo-app/internal/config"
	boltInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/bolt"
	"github.com/RaushanShrivastwa/todo-app/internal/infrastructure/monitor"
	pgInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/postgres"
	redisInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/redis"
	"github.com/RaushanShrivastwa/todo-app/internal/router"
	"github.com/RaushanShrivastwa/todo-app/internal/services"
	"github.com/RaushanShrivastwa/todo-app/internal/services/lifecycle"
	"github.com/RaushanShrivastwa/todo-app/pkg/httpcontext"
	"github.com/RaushanShrivastwa/todo-app/pkg/logger"
	"github.com/RaushanShrivastwa/todo-app/repository"
	boltRepo "github.com/RaushanShrivastwa/todo-app/repository/bolt"
	pgRepo "github.com/RaushanShrivastwa/todo-app/repository/postgres"
	redisRepo "github.com/RaushanShrivastwa/todo-app/repository/redis"
	todoUC "github.com/RaushanShrivastwa/todo-app/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	todoRepo, probe, count, err := buildStore(appCtx, cfg, zapLogger, manager)
	if err != nil {
		zapLogger.Fatal("store setup failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	mon := monitor.New(cfg.Store.Driver, probe, count, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	todoUseCase := todoUC.New(todoRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Todo:   apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// buildStore wires the repository selected by STORE_DRIVER together with
// the health probe and count functions the monitor uses.
func buildStore(
	ctx context.Context,
	cfg *config.Config,
	zapLogger *zap.Logger,
	manager *lifecycle.Manager,
) (repository.TodoRepository, monitor.ProbeFunc, monitor.CountFunc, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			return nil, nil, nil, err
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		repo := pgRepo.NewTodoRepository(pool)
		probe := func(ctx context.Context) error { return pool.Ping(ctx) }
		return repo, probe, countViaList(repo), nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		repo := redisRepo.NewTodoRepository(client)
		probe := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return repo, probe, countViaList(repo), nil

	case config.DriverBolt:
		store, err := boltInfra.Open(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, nil, nil, err
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})

		if cfg.Snapshot.Enabled {
			snapshotter := services.NewSnapshotter(store, zapLogger, services.SnapshotConfig{
				Path:     cfg.Snapshot.Path,
				Interval: cfg.Snapshot.Interval,
			})
			snapshotter.Start()
			manager.Register("snapshot", func(ctx context.Context) error {
				snapshotter.Stop(ctx)
				return nil
			})
		}

		repo := boltRepo.NewTodoRepository(store)
		probe := func(ctx context.Context) error {
			_, err := store.Size()
			return err
		}
		count := func(ctx context.Context) (int, error) { return store.Size() }
		return repo, probe, count, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func countViaList(repo repository.TodoRepository) monitor.CountFunc {
	return func(ctx context.Context) (int, error) {
		todos, err := repo.List(ctx)
		if err != nil {
			return 0, err
		}
		return len(todos), nil
	}
}
