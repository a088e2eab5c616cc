package app

import (
	"context"
	"fmt"

	"bouldern/pkg/calendar"
	"bouldern/pkg/colors"
	"bouldern/pkg/config"
	"bouldern/pkg/gyms"
	"bouldern/pkg/pipeline"
	"bouldern/pkg/plot"
	"bouldern/pkg/routes"
	"bouldern/pkg/sheets"
	"bouldern/pkg/store"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Build wires a pipeline from the service config.
func Build(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	registry, err := gyms.Load(cfg.GymsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load gyms from %s: %w", cfg.GymsFile, err)
	}
	log.WithField("gyms", registry.Names()).Debug("loaded gym registry")

	opts := clientOptions(cfg)

	source, err := newSource(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	st, err := newStore(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	notifier, err := calendar.NewClient(ctx, cfg.CalendarID, opts...)
	if err != nil {
		return nil, err
	}

	backgrounds := &plot.Backgrounds{Gyms: registry, Dir: cfg.DiagramDir, DPI: cfg.DPI}
	return &pipeline.Pipeline{
		Gyms:     registry,
		Loader:   routes.NewLoader(source, registry),
		Renderer: plot.NewRenderer(backgrounds, registry, colors.Default),
		Store:    st,
		Notifier: notifier,
		Colors:   colors.Default,
	}, nil
}

// clientOptions falls back to application default credentials when no key
// file is configured.
func clientOptions(cfg *config.Config) []option.ClientOption {
	if cfg.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
}

func newSource(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (sheets.Source, error) {
	if cfg.XLSXDir != "" {
		log.WithField("dir", cfg.XLSXDir).Info("reading gym sheets from xlsx exports")
		return &sheets.FileSource{Dir: cfg.XLSXDir}, nil
	}
	return sheets.NewSheetClient(ctx, opts...)
}

func newStore(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (pipeline.Store, error) {
	if cfg.Bucket == "" {
		log.WithField("dir", cfg.TargetDir).Info("saving gym diagrams to disk")
		return &store.FileStore{Dir: cfg.TargetDir}, nil
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Storage client: %w", err)
	}
	log.WithFields(log.Fields{"bucket": cfg.Bucket, "prefix": cfg.BucketPrefix}).Info("saving gym diagrams to Cloud Storage")
	return &store.GCSStore{Client: client, Bucket: cfg.Bucket, Prefix: cfg.BucketPrefix}, nil
}
