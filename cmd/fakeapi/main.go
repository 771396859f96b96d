// Command fakeapi serves the in-memory trips backend for local development.
//
//	fakeapi -a :8080 -photos 40
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tripkeeper/internal/fakeapi"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

func main() {

	addr := flag.String("a", ":8080", "listen address")
	photos := flag.Int("photos", 0, "number of feed photos to seed")
	level := flag.String("l", "info", "log level")
	format := flag.String("f", logging.FormatJSON, "log format (text, json, zap)")
	flag.Parse()

	logger, err := logging.New(*format, *level, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	s := fakeapi.New()
	s.SeedFeed(*photos)

	if err := s.Run(ctx, *addr, logger); err != nil {
		logger.Error(ctx, "server failed", "error", err)
		os.Exit(1)
	}

}
