package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// S3Client is the subset of the S3 API the checkpoint store needs.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository stores the checkpoint revision as a small S3 object, so that
// several hosts can share one delivery position.
type S3Repository struct {
	client S3Client
	bucket string
	key    string
}

var _ repositories.CheckpointRepository = (*S3Repository)(nil)

// NewS3Repository creates a checkpoint store for s3://bucket/key using client.
func NewS3Repository(client S3Client, bucket, key string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, key: key}
}

// NewS3RepositoryFromURL loads the default AWS configuration and creates a
// store for an s3://bucket/key location.
func NewS3RepositoryFromURL(ctx context.Context, location string) (*S3Repository, error) {
	bucket, key, err := ParseS3URL(location)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Repository(s3.NewFromConfig(cfg), bucket, key), nil
}

// ParseS3URL splits s3://bucket/key into its parts.
func ParseS3URL(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid checkpoint location %q: %w", location, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid checkpoint location %q: expected s3://bucket/key", location)
	}
	return u.Host, key, nil
}

// Read returns the stored revision. A missing object means no checkpoint.
func (r *S3Repository) Read(ctx context.Context) (string, bool, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get checkpoint s3://%s/%s: %w", r.bucket, r.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read checkpoint s3://%s/%s: %w", r.bucket, r.key, err)
	}
	rev := strings.TrimSpace(string(data))
	return rev, rev != "", nil
}

// Write replaces the checkpoint object.
func (r *S3Repository) Write(ctx context.Context, rev string) error {
	body := rev + "\n"
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key),
		Body:          strings.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("text/plain"),
	})
	if err != nil {
		return fmt.Errorf("failed to put checkpoint s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return nil
}
