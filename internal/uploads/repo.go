package uploads

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resume not found")

type Repo interface {
	Create(ctx context.Context, resume Resume) error
	LatestByUser(ctx context.Context, userID string) (Resume, error)
}
