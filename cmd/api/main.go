// @title Channel Metrics Service API
// @version 1.0
// @description Ingests partner channel CSV exports and emits per-channel and per-country supporter metrics.
// @host localhost:8080
// @BasePath /
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	channelsRepoPg "channel-metrics-service/internal/channels/adapters/postgres"
	"channel-metrics-service/internal/config"
	"channel-metrics-service/internal/logger"

	ingestHttp "channel-metrics-service/internal/ingest/adapters/http/fiber"
	ingestRepoPg "channel-metrics-service/internal/ingest/adapters/postgres"
	ingestS3 "channel-metrics-service/internal/ingest/adapters/s3"
	ingestPorts "channel-metrics-service/internal/ingest/core/ports"
	ingestUsecase "channel-metrics-service/internal/ingest/core/usecase"

	"channel-metrics-service/internal/metrics/adapters/emitter"
	metricsHttp "channel-metrics-service/internal/metrics/adapters/http/fiber"
	metricsRepoPg "channel-metrics-service/internal/metrics/adapters/postgres"
	metricsPorts "channel-metrics-service/internal/metrics/core/ports"
	metricsUsecase "channel-metrics-service/internal/metrics/core/usecase"

	"channel-metrics-service/internal/pkg/distlock"
	"channel-metrics-service/internal/pkg/pgdb"
	"channel-metrics-service/internal/scheduler"
	"channel-metrics-service/internal/worker"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "channel-metrics-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// DB connection
	db, err := pgdb.Open(context.Background(), cfg.PostgresDSN, pgdb.PoolConfig{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
	})
	if err != nil {
		zlog.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	store := pgdb.New(db)
	channelRepository := channelsRepoPg.NewChannelRepository(store)
	recordRepository := ingestRepoPg.NewRecordRepository(store)
	summaryRepository := metricsRepoPg.NewSummaryRepository(store)

	// Payload source is optional
	var source ingestPorts.PayloadSourcePort
	if cfg.S3Bucket != "" {
		client, err := ingestS3.NewClient(context.Background(), cfg.S3Region)
		if err != nil {
			zlog.Fatal("failed to build s3 client", zap.Error(err))
		}
		source = ingestS3.NewPayloadSource(client, cfg.S3Bucket, cfg.S3Prefix)
	}

	// Metric emitter
	var metricEmitter metricsPorts.EmitterPort
	if cfg.MetricsEndpoint != "" {
		metricEmitter = emitter.NewHTTPEmitter(emitter.HTTPConfig{
			Endpoint:      cfg.MetricsEndpoint,
			AuthToken:     cfg.MetricsAuthToken,
			Timeout:       cfg.MetricsTimeout,
			MaxRetries:    cfg.MetricsMaxRetries,
			RetryInterval: cfg.MetricsRetryDelay,
		}, &http.Client{Timeout: cfg.MetricsTimeout})
	} else {
		zlog.Warn("METRICS_ENDPOINT not set, metrics are only logged")
		metricEmitter = emitter.NewLogEmitter(zlog)
	}

	pool := worker.NewPool(cfg.WorkerPoolSize, zlog.Named("worker"))

	buckets, err := cfg.Buckets()
	if err != nil {
		zlog.Fatal("invalid metric buckets", zap.Error(err))
	}

	// Usecases
	ingestUC := ingestUsecase.NewIngestCSVUseCase(channelRepository, recordRepository, source, zlog.Named("ingest"))
	listRecordsUC := ingestUsecase.NewListRecordsUseCase(channelRepository, recordRepository)

	metricsLog := zlog.Named("metrics")
	recomputeUC := metricsUsecase.NewRecomputeUseCase(channelRepository, summaryRepository, metricEmitter, metricsLog)
	extractUC := metricsUsecase.NewExtractUseCase(channelRepository, summaryRepository, metricEmitter, metricsLog)
	extractAllUC := metricsUsecase.NewExtractAllUseCase(channelRepository, extractUC, pool, metricsLog)
	totalsUC, err := metricsUsecase.NewTotalsUseCase(summaryRepository, metricEmitter, metricsLog,
		metricsUsecase.WithBuckets(buckets),
		metricsUsecase.WithNullAsZero(cfg.MetricsNullAsZero),
	)
	if err != nil {
		zlog.Fatal("failed to build totals usecase", zap.Error(err))
	}

	// Scheduler, locked through redis when configured
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	var lock scheduler.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Fatal("failed to ping redis", zap.Error(err))
		}
		lock = distlock.NewRedisLock(rdb, "metrics-tick", 2*cfg.SchedulerInterval+time.Minute)
	}
	sched := scheduler.New(cfg.SchedulerInterval, lock, extractAllUC, totalsUC, zlog.Named("scheduler"))
	go sched.Run(schedCtx)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   cfg.HTTPBodyLimit,
	})

	// ingest endpoints
	ingestHandler := ingestHttp.NewIngestHandler(ingestUC, listRecordsUC, pool)
	app.Post("/channels/:name/ingest", ingestHandler.IngestCSV)
	app.Post("/channels/:name/ingest/s3", ingestHandler.IngestFromSource)
	app.Get("/channels/:name/records", ingestHandler.ListRecords)

	// metrics endpoints
	metricsHandler := metricsHttp.NewMetricsHandler(recomputeUC, extractUC, extractAllUC, totalsUC)
	app.Post("/channels/:name/metrics/recompute", metricsHandler.Recompute)
	app.Post("/channels/:name/metrics/extract", metricsHandler.Extract)
	app.Post("/metrics/extract-all", metricsHandler.ExtractAll)
	app.Post("/metrics/totals", metricsHandler.Totals)

	// task polling
	taskHandler := worker.NewTaskHandler(pool)
	app.Get("/tasks/:id", taskHandler.GetTask)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			zlog.Error("fiber stopped", zap.Error(err))
		}
	}()

	zlog.Info("server started", zap.String("addr", cfg.HTTPAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zlog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zlog.Error("fiber shutdown error", zap.Error(err))
	}

	stopScheduler()
	pool.Stop()

	zlog.Info("server exiting")
}
