package main

import (
	"fmt"
	"os"
	"time"

	"github.com/handiism/prompt-album-builder/internal/config"
	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/tui"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	settings, err := config.Load(config.ResolvePath(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to the run file only.
	log, err := logger.New(logger.Options{
		Level: settings.Logging.Level,
		File:  logger.RunLogPath(settings.Logging.LogDir, time.Now()),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := tui.Run(settings, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Sync()
		os.Exit(1)
	}
}
