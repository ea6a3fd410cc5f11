package main

import (
	"flag"
	"log/slog"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/app"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("YOLO Annotator", 1400, 760, cfg, logger)
	application.Start()
}
