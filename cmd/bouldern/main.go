package main

import (
	"context"
	"flag"
	"os"
	_ "time/tzdata"

	"bouldern/pkg/app"
	"bouldern/pkg/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "config.toml", "Service config file")
	gym := flag.String("gym", "", "Gym to update (required)")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if *gym == "" {
		log.Error("You must specify a gym with -gym")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", *configFile, err)
	}
	ctx := context.Background()
	p, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up update pipeline: %v", err)
	}
	if err := p.Run(ctx, *gym); err != nil {
		log.Fatalf("Failed to update %s: %v", *gym, err)
	}
}
