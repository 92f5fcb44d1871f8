package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultFilename is used when no filename is given
const DefaultFilename = "resume.pdf"

// ContentTypePDF is the media type of exported documents
const ContentTypePDF = "application/pdf"

// Sink stores an exported PDF and returns where it ended up.
type Sink interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// CleanFilename reduces name to a bare file name ending in .pdf.
// Empty names become DefaultFilename.
func CleanFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		return DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// FileSink writes PDFs into a directory on disk.
type FileSink struct {
	Dir string
}

// Save writes data to Dir/filename, creating Dir if needed.
func (s FileSink) Save(_ context.Context, filename string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to create directory %s", dir), Cause: err}
	}

	path := filepath.Join(dir, CleanFilename(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return path, nil
}

// MinioConfig describes an S3-compatible bucket for exported PDFs.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Location        string
	UseSSL          bool
}

// MinioSink uploads PDFs to object storage.
type MinioSink struct {
	client *minio.Client
	bucket string
}

// NewMinioSink connects to the endpoint and makes sure the bucket exists.
func NewMinioSink(ctx context.Context, cfg MinioConfig) (*MinioSink, error) {
	if cfg.Endpoint == "" {
		return nil, &ExportError{Message: "minio endpoint is required"}
	}
	if cfg.Bucket == "" {
		return nil, &ExportError{Message: "minio bucket is required"}
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, &ExportError{Message: "failed to create minio client", Cause: err}
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, &ExportError{Message: fmt.Sprintf("failed to check bucket %s", cfg.Bucket), Cause: err}
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Location}); err != nil {
			return nil, &ExportError{Message: fmt.Sprintf("failed to create bucket %s", cfg.Bucket), Cause: err}
		}
	}

	return &MinioSink{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads data as bucket/filename.
func (s *MinioSink) Save(ctx context.Context, filename string, data []byte) (string, error) {
	name := CleanFilename(filename)
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: ContentTypePDF})
	if err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to upload %s", name), Cause: err}
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}
