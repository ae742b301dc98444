package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"campusportal/internal/config"
	"campusportal/internal/docstore"
	"campusportal/internal/metrics"
	"campusportal/internal/queue"
	"campusportal/internal/roster"
	"campusportal/internal/store"
)

// Worker drains the mirror queue and upserts saved student records into the
// document store, keeping the external backend a lagging copy of the
// in-memory roster.
func main() {
	cfg := config.Load()

	var logger *zap.Logger
	if cfg.Env == "production" || cfg.Env == "prod" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	var docs docstore.Store
	if cfg.DatabaseURL != "" {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect failed", zap.Error(err))
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Fatal("schema setup failed", zap.Error(err))
		}
		docs = docstore.NewPostgres(db.Client)
	} else {
		logger.Warn("DATABASE_URL not set, mirroring into process-local memory store")
		docs = docstore.NewMemory()
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisList(redisClient.Client, queue.DefaultKey)
	} else {
		// In-memory queues do not cross processes; a standalone worker only
		// makes sense with the redis backend.
		logger.Warn("QUEUE_BACKEND is not redis, worker will see no messages from the api process")
		q = queue.NewInMemory(64)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		logger.Fatal("queue consume init failed", zap.Error(err))
	}

	logger.Info("worker started, waiting for messages")
	for msg := range messages {
		if msg.Type != queue.TypeRecordSaved {
			continue
		}

		var rec roster.Student
		if err := json.Unmarshal(msg.Body, &rec); err != nil {
			metrics.MirrorMessages.WithLabelValues("decode_failed").Inc()
			logger.Warn("mirror message decode failed", zap.Error(err))
			continue
		}

		doc := docstore.Document{}
		raw, _ := json.Marshal(rec)
		if err := json.Unmarshal(raw, &doc); err != nil {
			metrics.MirrorMessages.WithLabelValues("decode_failed").Inc()
			logger.Warn("mirror document build failed", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}

		if err := docs.Upsert(ctx, cfg.MirrorColl, rec.ID, doc); err != nil {
			metrics.MirrorMessages.WithLabelValues("failed").Inc()
			logger.Warn("mirror upsert failed", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		metrics.MirrorMessages.WithLabelValues("consumed").Inc()
		logger.Info("record mirrored", zap.String("record_id", rec.ID), zap.String("collection", cfg.MirrorColl))
	}

	logger.Info("worker stopped")
}
