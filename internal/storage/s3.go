package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"uploadapi/internal/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Storage implements BlobStore on AWS S3 or any S3-compatible endpoint.
type s3Storage struct {
	client    s3PutObjectAPI
	bucket    string
	publicURL string
}

// NewS3 creates an S3 client from cfg. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg config.S3Config) (BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 region is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		// The buildable client lets the loader apply AWS_CA_BUNDLE and other transport settings.
		awsconfig.WithHTTPClient(awshttp.NewBuildableClient()),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	httpClient := tracedHTTPClient(awsCfg.HTTPClient)
	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.HTTPClient = httpClient
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		// S3-compatible services often reject the default trailing checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	publicURL, err := s3PublicBase(cfg)
	if err != nil {
		return nil, err
	}

	return &s3Storage{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// tracedHTTPClient wraps the transport configured by the AWS loader with otelhttp.
// Clients of unknown shape are returned untouched.
func tracedHTTPClient(c aws.HTTPClient) aws.HTTPClient {
	bc, ok := c.(*awshttp.BuildableClient)
	if !ok {
		return c
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(bc.GetTransport()),
		Timeout:   bc.GetTimeout(),
	}
}

// Store uploads content under name, replacing any existing object with that key.
func (s *s3Storage) Store(ctx context.Context, name string, content []byte, contentType string) (Object, error) {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return Object{}, fmt.Errorf("put object: %w", err)
	}

	locator, err := joinURL(s.publicURL, name)
	if err != nil {
		return Object{}, fmt.Errorf("resolve public url: %w", err)
	}

	return Object{
		Key:     name,
		Locator: locator,
		Remote:  true,
		Size:    int64(len(content)),
	}, nil
}

// s3PublicBase returns the URL prefix objects are publicly reachable under.
func s3PublicBase(cfg config.S3Config) (string, error) {
	if cfg.PublicURL != "" {
		return cfg.PublicURL, nil
	}
	if cfg.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region), nil
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid s3 endpoint %q", cfg.Endpoint)
	}
	if cfg.UsePathStyle {
		return u.JoinPath(cfg.Bucket).String(), nil
	}
	u.Host = cfg.Bucket + "." + u.Host
	return u.String(), nil
}
