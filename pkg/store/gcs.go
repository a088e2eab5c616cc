package store

import (
	"context"
	"fmt"

	"bouldern/pkg/plot"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
)

// GCSStore writes diagrams to a Cloud Storage bucket as
// "<prefix><key>.png".
type GCSStore struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (s *GCSStore) ObjectName(key string) string {
	return s.Prefix + key + ".png"
}

func (s *GCSStore) Save(ctx context.Context, key string, p *plot.Plot) error {
	b, err := Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	name := s.ObjectName(key)
	wc := s.Client.Bucket(s.Bucket).Object(name).NewWriter(ctx)
	wc.ContentType = "image/png"
	wc.CacheControl = "no-cache"
	if _, err := wc.Write(b); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to upload gs://%s/%s: %w", s.Bucket, name, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to upload gs://%s/%s: %w", s.Bucket, name, err)
	}
	log.WithFields(log.Fields{"bucket": s.Bucket, "object": name, "bytes": len(b)}).Info("uploaded gym diagram")
	return nil
}
