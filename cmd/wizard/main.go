package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/udyam-portal/app-udyam/internal/client"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("API_BASE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	baseURL := flag.String("url", defaultURL, "base URL of the registration API")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	verbose := flag.Bool("v", false, "log API calls to stderr")
	flag.Parse()

	logger := logging.New(zap.NewNop())
	if *verbose {
		if err := logging.InitLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		logger = logging.Logger
		defer logging.Sync()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(*baseURL, *timeout, logger)
	if _, err := newRunner(api, os.Stdin, os.Stdout).run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "registration aborted: %v\n", err)
		os.Exit(1)
	}
}
