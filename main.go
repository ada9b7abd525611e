package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinenotes/cinenotes/backend/go-services/handlers"
	commenthandler "github.com/cinenotes/cinenotes/backend/go-services/internal/comment/handler"
	commentrepo "github.com/cinenotes/cinenotes/backend/go-services/internal/comment/repository"
	commentsvc "github.com/cinenotes/cinenotes/backend/go-services/internal/comment/service"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/config"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/database"
	moviehandler "github.com/cinenotes/cinenotes/backend/go-services/internal/movie/handler"
	movierepo "github.com/cinenotes/cinenotes/backend/go-services/internal/movie/repository"
	moviesvc "github.com/cinenotes/cinenotes/backend/go-services/internal/movie/service"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/storage"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/metrics"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/middleware"
)

func main() {
	// LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetDevelopment(cfg.Development())
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Storage.Endpoint != "")

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.Metrics(), middleware.RequestLogger())

	ctx := context.Background()
	checks := map[string]handlers.ReadinessCheck{}

	// Redis is optional; without it the movie cache is skipped.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var movies movierepo.Repository = movierepo.NewMemoryRepo()
	var comments commentrepo.Repository = commentrepo.NewMemoryRepo()
	if cfg.MongoDB.URI != "" {
		var client *mongo.Client
		client, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		db := client.Database(cfg.MongoDB.Database)
		movies = movierepo.NewMongoRepo(db.Collection("movies"))
		cr, err := commentrepo.NewMongoRepo(ctx, db.Collection("comments"))
		if err != nil {
			logger.Fatalf("failed to prepare comments collection: %v", err)
		}
		comments = cr
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		logger.Infof("using MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warn("MONGODB_URI not set: using in-memory repositories")
	}

	if rdb != nil && cfg.Cache.Enabled {
		movies = movierepo.NewCachedRepo(movies, rdb, cfg.Cache.Prefix, cfg.Cache.TTL)
		logger.Infof("movie cache enabled (ttl=%s)", cfg.Cache.TTL)
	}

	var posters moviehandler.PosterStore
	if cfg.Storage.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.Storage)
		if err != nil {
			logger.Warnf("poster storage unavailable: %v", err)
		} else {
			posters = st
			checks["minio"] = st.Ping
		}
	}

	movieService := moviesvc.NewService(movies)
	commentService := commentsvc.NewService(comments, movieService)

	api := r.Group("/api")
	moviehandler.NewHandler(movieService, posters).Register(api)
	commenthandler.RegisterCommentRoutes(api, commentService)

	handlers.RegisterHealth(r, checks)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Server running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
