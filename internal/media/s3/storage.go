package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Config holds the connection settings for an S3-compatible object store.
// Endpoint is optional; leaving it empty targets AWS proper, setting it
// points at compatible services such as MinIO or DigitalOcean Spaces.
type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string

	// PublicBaseURL, when set, overrides the URL returned for stored
	// objects. Useful when a CDN fronts the bucket.
	PublicBaseURL string

	// PublicRead uploads objects with a public-read canned ACL.
	PublicRead bool
}

// Storage stores media objects in an S3 bucket.
type Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
	acl      types.ObjectCannedACL
}

var _ interfaces.ObjectStorage = (*Storage)(nil)

// New builds an S3 storage provider from the given config.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket required")
	}
	if cfg.Region == "" {
		return nil, errors.New("s3: region required")
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(creds),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.Region = cfg.Region
	})

	acl := types.ObjectCannedACLPrivate
	if cfg.PublicRead {
		acl = types.ObjectCannedACLPublicRead
	}

	return &Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		acl:      acl,
	}, nil
}

// Put streams the body into the bucket and returns the object's URL.
func (s *Storage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
		ACL:         s.acl,
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload %q: %w", key, err)
	}
	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return out.Location, nil
}

// Delete removes the object. Deleting a missing key is not an error, which
// matches S3's own semantics.
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %q: %w", key, err)
	}
	return nil
}
