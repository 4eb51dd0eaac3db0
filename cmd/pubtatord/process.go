package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/config"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/runtime"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/telemetry"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/worker"
)

func processCMD() *cobra.Command {
	var cfgPath, inputDir, outputDir string
	var cmd = &cobra.Command{
		Use:   "process <article-id> [article-id...]",
		Short: "Process articles locally without the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if inputDir == "" {
				inputDir = cfg.Pipeline.InputDir
			}
			if outputDir == "" {
				outputDir = cfg.Pipeline.OutputDir
			}

			logger := log.New(os.Stdout, "[PROCESS] ", log.LstdFlags)
			pipe, err := runtime.BuildPipeline(cfg, logger, telemetry.NewMetrics(nil))
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := worker.ProcessArticle(logger, pipe, id, inputDir, outputDir, cfg.Pipeline.Taggers); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	cmd.Flags().StringVar(&inputDir, "input", "", "directory holding tagger outputs")
	cmd.Flags().StringVar(&outputDir, "output", "", "directory for processed artifacts")

	return cmd
}
