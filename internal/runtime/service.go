// Package runtime wires configuration into running components shared by the
// server, worker, and one-shot CLI paths.
package runtime

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/jesse-lima-gilead/pubtator-benchiling-sub000/config"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/consolidate"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/pipeline"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/telemetry"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/textmerge"
)

// BuildPipeline constructs the document processor described by cfg.
func BuildPipeline(cfg *appconfig.Config, logger *log.Logger, metrics *telemetry.Metrics) (*pipeline.Processor, error) {
	opts := pipeline.Options{
		Chunker: chunk.Kind(cfg.Pipeline.Chunker),
		Merger:  textmerge.Kind(cfg.Pipeline.Merger),
		Chunk: chunk.Options{
			MaxTokensPerChunk: cfg.Pipeline.MaxTokensPerChunk,
			WindowSize:        cfg.Pipeline.WindowSize,
		},
		Consolidate: consolidate.Options{
			ThresholdWords: cfg.Pipeline.ThresholdWords,
			MaxIterations:  cfg.Pipeline.MaxIterations,
		},
	}
	return pipeline.New(opts, logger, metrics)
}

// ConnectRedis opens and pings the job-queue connection.
func ConnectRedis(ctx context.Context, cfg *appconfig.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s): %w", cfg.Redis.Addr(), err)
	}
	return rdb, nil
}
