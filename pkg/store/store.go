package store

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"bouldern/pkg/plot"

	log "github.com/sirupsen/logrus"
)

// Store persists a rendered gym diagram under a key.
type Store interface {
	Save(ctx context.Context, key string, p *plot.Plot) error
}

// Encode writes the plot as png, cropped to its bounds.
func Encode(p *plot.Plot) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Cropped()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileStore writes "<key>.png" files into a directory.
type FileStore struct {
	Dir string
}

func (s *FileStore) Path(key string) string {
	return filepath.Join(s.Dir, key+".png")
}

func (s *FileStore) Save(ctx context.Context, key string, p *plot.Plot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": path, "bytes": len(b)}).Info("saved gym diagram")
	return nil
}
