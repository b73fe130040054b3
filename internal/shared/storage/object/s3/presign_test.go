package s3

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestPresignSignedHeadersExcludeContentLength(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	store := NewWithClient(s3.NewFromConfig(cfg), "bucket", "uploads", "")

	raw, err := store.PresignPut(context.Background(), "resumes/user/file.pdf", 15*time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasSuffix(parsed.Path, "/uploads/resumes/user/file.pdf") {
		t.Fatalf("unexpected path: %s", parsed.Path)
	}

	signed := parsed.Query().Get("X-Amz-SignedHeaders")
	if signed == "" {
		t.Fatalf("expected X-Amz-SignedHeaders")
	}
	if strings.Contains(signed, "content-length") {
		t.Fatalf("unexpected content-length in signed headers: %s", signed)
	}
	if !strings.Contains(signed, "host") {
		t.Fatalf("expected host in signed headers: %s", signed)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "900" {
		t.Fatalf("X-Amz-Expires = %s, want 900", got)
	}
}

func TestPresignUnsupportedWithFakeClient(t *testing.T) {
	store := NewWithClient(&fakeAPI{}, "bucket", "", "")
	if _, err := store.PresignPut(context.Background(), "k", time.Minute); err != ErrPresignUnsupported {
		t.Fatalf("err = %v, want ErrPresignUnsupported", err)
	}
}
