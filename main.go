package main

import (
	"fmt"
	"os"

	"github.com/avstrong/rental/internal/app"
	"github.com/avstrong/rental/internal/config"
	"github.com/avstrong/rental/internal/logger"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l, err := logger.New(logger.Config{
		Level:       conf.Log.Level,
		Development: conf.Log.Development,
		File:        conf.Log.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	var exitCode int

	if err := app.Run(conf, l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	_ = l.Sync()

	os.Exit(exitCode)
}
