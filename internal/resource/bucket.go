package resource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dbsmedya/goiconindex/internal/config"
)

const bucketScheme = "s3://"

// objectStore is the subset of bucket operations a BucketSource needs.
type objectStore interface {
	list(ctx context.Context, prefix string) <-chan minio.ObjectInfo
	get(ctx context.Context, key string) (io.ReadCloser, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func (m *minioStore) list(ctx context.Context, prefix string) <-chan minio.ObjectInfo {
	return m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
}

func (m *minioStore) get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// BucketSource enumerates object keys of an S3-compatible bucket.
// Paths are reported as s3://bucket/key.
type BucketSource struct {
	store  objectStore
	bucket string
	prefix string
}

// ParseBucketRoot splits s3://bucket/prefix into its bucket and key prefix.
func ParseBucketRoot(root string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(root, bucketScheme)
	if !ok {
		return "", "", fmt.Errorf("bucket root %q must start with %s", root, bucketScheme)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("bucket root %q has no bucket name", root)
	}
	return bucket, prefix, nil
}

// NewBucketSource connects to the bucket named by root using cfg credentials.
func NewBucketSource(root string, cfg config.BucketConfig) (*BucketSource, error) {
	bucket, prefix, err := ParseBucketRoot(root)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return newBucketSource(&minioStore{client: client, bucket: bucket}, bucket, prefix), nil
}

func newBucketSource(store objectStore, bucket, prefix string) *BucketSource {
	return &BucketSource{store: store, bucket: bucket, prefix: prefix}
}

func (s *BucketSource) Root() string {
	return bucketScheme + s.bucket + "/" + s.prefix
}

func (s *BucketSource) Walk(ctx context.Context, fn WalkFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	// cancelling stops the lister goroutine when fn ends the walk early
	defer cancel()

	for obj := range s.store.list(ctx, s.prefix) {
		if obj.Err != nil {
			return obj.Err
		}
		if obj.Key == "" || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if err := fn(s.keyPath(obj.Key), false); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *BucketSource) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, ok := strings.CutPrefix(p, bucketScheme+s.bucket+"/")
	if !ok {
		return nil, fmt.Errorf("path %q is outside bucket %q", p, s.bucket)
	}
	return s.store.get(ctx, key)
}

func (s *BucketSource) Close() error { return nil }

func (s *BucketSource) keyPath(key string) string {
	return bucketScheme + s.bucket + "/" + key
}
