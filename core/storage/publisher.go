package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher uploads generator artifacts to an object storage bucket so
// downstream consumers can fetch them without access to the generator host.
type Publisher struct {
	client Client
	bucket string
	logger *zap.Logger
}

// NewPublisher creates a publisher for the given bucket.
func NewPublisher(client Client, bucket string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, bucket: bucket, logger: logger}
}

// Publish uploads each named file under its base name. The bucket is
// created when missing. The first failed upload aborts the batch so a
// partially published dataset is noticed immediately.
func (p *Publisher) Publish(ctx context.Context, paths []string) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", p.bucket, err)
	}
	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", p.bucket, err)
		}
	}

	for _, path := range paths {
		if err := p.upload(ctx, path); err != nil {
			return err
		}
	}
	p.logger.Info("Artifacts published", zap.Int("files", len(paths)), zap.String("bucket", p.bucket))
	return nil
}

func (p *Publisher) upload(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	contentType := "application/json"
	if filepath.Ext(name) == ".tsv" {
		contentType = "text/tab-separated-values"
	}

	_, err = p.client.PutObject(ctx, p.bucket, name, file, stat.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	p.logger.Debug("Uploaded artifact", zap.String("object", name), zap.Int64("bytes", stat.Size()))
	return nil
}
