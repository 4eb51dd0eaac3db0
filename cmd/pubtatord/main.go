package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "pubtatord"}

	root.AddCommand(serveCMD(), workerCMD(), processCMD(), listCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
