package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mcq-service/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3_config "github.com/aws/aws-sdk-go-v2/config"
	s3_credentials "github.com/aws/aws-sdk-go-v2/credentials"
	s3_provider "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// GetClient builds a client for the configured S3-compatible endpoint (MinIO in development).
func GetClient(ctx context.Context) (*s3_provider.Client, error) {
	s3cfg := config.Cfg.S3
	region := s3cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*s3_config.LoadOptions) error{
		s3_config.WithRegion(region),
	}
	if s3cfg.AccessKey != "" && s3cfg.SecretKey != "" {
		opts = append(opts, s3_config.WithCredentialsProvider(
			s3_credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKey,
				s3cfg.SecretKey,
				"",
			),
		))
	}

	cfg, err := s3_config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := s3cfg.Endpoint
	client := s3_provider.NewFromConfig(cfg, func(o *s3_provider.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return client, nil
}

// Download opens an object for reading. The caller closes the body.
func Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	client, err := GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	out, err := client.GetObject(ctx, &s3_provider.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// Upload creates the bucket when needed and stores body under key.
// It returns the s3:// URI of the object.
func Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	client, err := GetClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	if _, err := client.HeadBucket(ctx, &s3_provider.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		_, crtErr := client.CreateBucket(ctx, &s3_provider.CreateBucketInput{Bucket: aws.String(bucket)})
		if crtErr != nil {
			var owned *s3types.BucketAlreadyOwnedByYou
			if !errors.As(crtErr, &owned) {
				return "", fmt.Errorf("create bucket: %w", crtErr)
			}
		}
	}

	_, err = client.PutObject(ctx, &s3_provider.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
