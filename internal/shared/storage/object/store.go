package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"

	"wevolve-backend/internal/shared/util"
)

// ErrNotFound is returned by Open and Delete for an unknown key.
var ErrNotFound = errors.New("object not found")

// Object describes a stored blob.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Put(ctx context.Context, namespace, owner, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// BuildKey returns "<namespace>/<hashed owner>/<uuid>_<file name>". The owner
// id never appears in clear text.
func BuildKey(namespace, owner, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(namespace, util.HashUserKey(owner), uuid.NewString()+"_"+name), nil
}

// Sniff detects the content type from the first 512 bytes and returns a
// reader that still yields the whole stream.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	return http.DetectContentType(head[:n]), io.MultiReader(bytes.NewReader(head[:n]), r), nil
}
