package main

import (
	"os"

	"github.com/hdt3213/tcplite/cli"
	"github.com/hdt3213/tcplite/lib/logger"
)

func main() {
	if logDir := os.Getenv("TCPLITE_LOG_DIR"); logDir != "" {
		logger.Setup(&logger.Settings{
			Path:       logDir,
			Name:       "tcplite",
			Ext:        "log",
			TimeFormat: "2006-01-02",
		})
	}
	if err := cli.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
