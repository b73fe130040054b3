package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"wevolve-backend/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "resumes/file.pdf", want: "resumes/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "resumes/file.pdf", want: "root/resumes/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/resumes/file.pdf", want: "root/resumes/file.pdf"},
		{name: "empty key", prefix: "root", key: "", want: "root"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeAPI struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
}

func (f *fakeAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStoreRoundTrip(t *testing.T) {
	api := &fakeAPI{objects: map[string][]byte{}}
	store := NewWithClient(api, "bucket", "/env/", "kms-key")
	ctx := context.Background()

	obj, err := store.Put(ctx, "resumes", "user-1", "cv.txt", strings.NewReader("golang"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if obj.Size != 6 {
		t.Fatalf("expected size 6, got %d", obj.Size)
	}
	if !strings.HasPrefix(aws.ToString(api.lastPut.Key), "env/resumes/") {
		t.Fatalf("expected prefixed key, got %q", aws.ToString(api.lastPut.Key))
	}
	if api.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected kms encryption")
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "golang" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(ctx, obj.Key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
