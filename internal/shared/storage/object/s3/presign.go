package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrPresignUnsupported is returned when the store was built around a client
// that cannot presign.
var ErrPresignUnsupported = errors.New("s3 presign not supported by client")

// PresignPut returns a URL the browser can PUT the object to directly. key is
// the unprefixed object key; Open accepts the same key afterwards.
func (s *Store) PresignPut(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.presign == nil {
		return "", ErrPresignUnsupported
	}
	out, err := s.presign.PresignPutObject(ctx, presignInput(s.bucket, applyPrefix(s.prefix, key)), func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("s3 presign put bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return out.URL, nil
}

// presignInput leaves ContentLength and ContentType unsigned so the browser
// may send any size within the upload limit.
func presignInput(bucket, key string) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
}
