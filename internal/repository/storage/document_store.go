package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// DocumentStore defines the object storage operations used for policy documents
type DocumentStore interface {
	Upload(ctx context.Context, objectKey string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectKey string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// DocumentObjectKey builds the key of one stored variant of a policy document:
// <workspace>/policies/<policy>/<document>_<variant>.jpg
func DocumentObjectKey(workspaceID int32, policyID int32, documentID uuid.UUID, variant string) string {
	filename := fmt.Sprintf("%s_%s.jpg", documentID.String(), variant)
	return path.Join(fmt.Sprintf("%d", workspaceID), "policies", fmt.Sprintf("%d", policyID), filename)
}
