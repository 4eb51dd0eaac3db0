package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/config"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/queue/streams"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/runtime"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/telemetry"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/worker"
)

func workerCMD() *cobra.Command {
	var cfgPath string
	var cmd = &cobra.Command{
		Use:   "worker",
		Short: "Consume queued documents and process them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			rdb, err := runtime.ConnectRedis(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = rdb.Close() }()

			if err := streams.EnsureGroup(ctx, rdb, cfg.Redis.Stream, cfg.Redis.Group); err != nil {
				return fmt.Errorf("ensure consumer group: %w", err)
			}

			logger := log.New(os.Stdout, "[WORKER] ", log.LstdFlags)
			reg := prometheus.NewRegistry()
			pipe, err := runtime.BuildPipeline(cfg, logger, telemetry.NewMetrics(reg))
			if err != nil {
				return err
			}
			if cfg.Telemetry.Enabled {
				go telemetry.Serve(logger, cfg.Telemetry.Address, reg)
			}

			consumerName := fmt.Sprintf("worker-%s", uuid.NewString()[:8])
			consumer := streams.NewConsumer(rdb, cfg.Redis.Group, consumerName)
			proc := worker.NewProcessor(logger, pipe, consumer, worker.Options{
				Stream:    cfg.Redis.Stream,
				Taggers:   cfg.Pipeline.Taggers,
				InputDir:  cfg.Pipeline.InputDir,
				OutputDir: cfg.Pipeline.OutputDir,
			})
			return proc.Start(ctx)
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return cmd
}
