package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"cluedo-sim/internal/cli"
	"cluedo-sim/internal/config"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Environment defaults (.env is optional)
	_ = godotenv.Load()

	// 2. Parse command-line flags
	logLevel := flag.String("loglevel", envOr("CLUEDO_LOGLEVEL", "info"), "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", os.Getenv("CLUEDO_CONFIG"), "Path to a JSON game configuration")
	seed := flag.Int64("seed", envSeed(), "Seed for reproducible runs (0 picks one from the clock)")
	flag.Parse()

	// 3. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 4. Load game configuration
	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debugf("Using seed %d.", *seed)

	// 5. Create the CLI, injecting the logger
	ui, err := cli.NewCLI(log, os.Stdout, gameConfig, rand.New(rand.NewSource(*seed)), prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Failed to set up: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 6. Run the application
	if err := ui.Run(ctx, flag.Args()); err != nil {
		log.Errorf("Application exited with error: %v", err)
		stop()
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("CLUEDO_SEED"), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}
