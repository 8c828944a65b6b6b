package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures an S3Store.
type S3Config struct {
	Bucket string
	Region string
	// Prefix is prepended to every asset name to form the object key.
	Prefix string
	// Endpoint overrides the service endpoint (MinIO, LocalStack, R2).
	// Setting it also switches to path-style addressing.
	Endpoint string
	// Static credentials. When both are empty, requests are anonymous, which
	// works for public-read buckets.
	AccessKeyID     string
	SecretAccessKey string
}

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store serves assets from objects under a bucket prefix.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store builds an S3 client from cfg.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("assets: s3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, errors.New("assets: s3 region is required")
	}

	opts := s3.Options{Region: cfg.Region}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		creds := aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Source:          "homepage config",
		}
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return NewS3StoreWithClient(s3.New(opts), cfg.Bucket, cfg.Prefix), nil
}

// NewS3StoreWithClient returns a store that uses client.
func NewS3StoreWithClient(client S3API, bucket, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for an asset name.
func (s *S3Store) Key(name string) string {
	return s.prefix + name
}

// Open implements Store.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, Info, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, Info{}, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, fmt.Errorf("assets: s3 get %s: %w", s.Key(name), err)
	}

	info := Info{
		Name:        name,
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}
	if info.ContentType == "" || info.ContentType == "binary/octet-stream" {
		info.ContentType = contentType(name)
	}
	return out.Body, info, nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var resp *awshttp.ResponseError
	return errors.As(err, &resp) && resp.HTTPStatusCode() == http.StatusNotFound
}
