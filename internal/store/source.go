package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ligandscope/core/internal/config"
)

// Source opens the serialized dataset.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	return f, nil
}

func (s FileSource) String() string { return s.Path }

// ObjectGetter is the subset of *minio.Client used to fetch the dataset.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// ObjectSource reads the dataset from an S3-compatible bucket.
type ObjectSource struct {
	Client ObjectGetter
	Bucket string
	Object string
}

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get dataset object %s: %w", s, err)
	}
	return obj, nil
}

func (s ObjectSource) String() string { return "s3://" + s.Bucket + "/" + s.Object }

// NewMinIOClient builds a client for the configured endpoint. No request is
// made until the first object is fetched.
func NewMinIOClient(cfg config.StorageConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

// ParseLocation turns a dataset location into a Source: "s3://bucket/key"
// selects object storage, anything else is a file path.
func ParseLocation(location string, storage config.StorageConfig) (Source, error) {
	if !strings.HasPrefix(location, "s3://") {
		return FileSource{Path: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse dataset location %q: %w", location, err)
	}
	object := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return nil, fmt.Errorf("dataset location %q must look like s3://bucket/key", location)
	}

	client, err := NewMinIOClient(storage)
	if err != nil {
		return nil, err
	}
	return ObjectSource{Client: client, Bucket: u.Host, Object: object}, nil
}
