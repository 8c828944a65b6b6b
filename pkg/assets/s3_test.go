package assets

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("binary/octet-stream"),
		ETag:          aws.String(`"abc"`),
		LastModified:  aws.Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}, nil
}

func TestS3StoreOpen(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"site/homepage.css": "body{}"}}
	store := NewS3StoreWithClient(fake, "bucket", "site")

	rc, info, err := store.Open(context.Background(), "homepage.css")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if fake.keys[0] != "bucket/site/homepage.css" {
		t.Errorf("requested %q", fake.keys[0])
	}
	if info.Size != 6 || info.ETag != `"abc"` || info.ModTime.Year() != 2024 {
		t.Errorf("info = %+v", info)
	}
	if info.ContentType != "text/css; charset=utf-8" {
		t.Errorf("ContentType = %q, want guessed from extension", info.ContentType)
	}
}

func TestS3StoreNotFound(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{}, "bucket", "")
	if _, _, err := store.Open(context.Background(), "missing.css"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestNewS3StoreRequiresBucketAndRegion(t *testing.T) {
	if _, err := NewS3Store(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("missing bucket accepted")
	}
	if _, err := NewS3Store(S3Config{Bucket: "b"}); err == nil {
		t.Error("missing region accepted")
	}
	store, err := NewS3Store(S3Config{Bucket: "b", Region: "us-east-1", Prefix: "p", Endpoint: "http://localhost:9000"})
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	if store.Key("a.css") != "p/a.css" {
		t.Errorf("Key() = %q", store.Key("a.css"))
	}
}
