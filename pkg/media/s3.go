// Package media wraps the S3-backed media host. Content video, thumbnail
// and promo images live there; the store returns a public URL plus an
// opaque key usable for later deletion.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// s3API is the slice of the S3 client the store uses. Tests substitute a
// fake; production wires the real client.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store is an S3-backed media host.
type Store struct {
	client  s3API
	bucket  string
	baseURL string
}

// UploadResult is what callers persist: the public URL for display and
// the key for cleanup.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// NewStore builds a Store from AWS_* configuration.
func NewStore(ctx context.Context) (*Store, error) {
	region := viper.GetString("AWS_REGION")
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if ak := viper.GetString("AWS_ACCESS_KEY"); ak != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, viper.GetString("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	bucket := viper.GetString("S3_MEDIA_BUCKET")
	baseURL := viper.GetString("S3_MEDIA_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores an object under the folder hint and returns its public
// URL and deletion key. Keys are randomized so sellers cannot collide
// with or overwrite each other's objects.
func (s *Store) Upload(ctx context.Context, folder, filename string, body io.Reader, contentType string) (UploadResult, error) {
	key := path.Join(folder, uuid.New().String()+"-"+path.Base(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload media object: %w", err)
	}

	return UploadResult{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}

// Delete removes a single object by key.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete media object %s: %w", key, err)
	}
	return nil
}
