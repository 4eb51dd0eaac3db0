package main

import (
	"github.com/spf13/cobra"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/config"
	srv "github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/server"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			return srv.Run(cfg)
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
