package uploads

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"livelens/internal/shared/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store presigns PUT requests against a single bucket
type S3Store struct {
	presigner     *s3.PresignClient
	bucket        string
	region        string
	publicBaseURL string
	expiry        time.Duration
}

// NewS3Store builds a store from the AWS settings. Static credentials are used
// when both key parts are set, otherwise the default provider chain applies.
func NewS3Store(ctx context.Context, cfg config.AWSConfig, expiry time.Duration) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Store{
		presigner:     s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:        cfg.S3Bucket,
		region:        awsCfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		expiry:        expiry,
	}, nil
}

func (s *S3Store) Presign(ctx context.Context, key, contentType string, size int64) (*UploadTicket, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for name, values := range req.SignedHeader {
		if strings.EqualFold(name, "host") || len(values) == 0 {
			continue
		}
		headers[name] = values[0]
	}

	method := req.Method
	if method == "" {
		method = http.MethodPut
	}

	return &UploadTicket{
		Key:       key,
		Method:    method,
		URL:       req.URL,
		Headers:   headers,
		PublicURL: s.publicURL(key),
		ExpiresAt: time.Now().Add(s.expiry).UTC(),
	}, nil
}

func (s *S3Store) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
