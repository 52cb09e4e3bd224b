package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("policy document not found")

// PolicyDocument is an uploaded scan of a policy certificate. The object keys
// point at JPEG variants in the document bucket.
type PolicyDocument struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID int32      `json:"workspaceId"`
	PolicyID    int32      `json:"policyId"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	SizeBytes   int64      `json:"sizeBytes"`
	Width       int32      `json:"width"`
	Height      int32      `json:"height"`
	ThumbKey    string     `json:"-"`
	DisplayKey  string     `json:"-"`
	OriginalKey string     `json:"-"`
	UploadedBy  *uuid.UUID `json:"uploadedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Keys lists every object key of the document
func (d *PolicyDocument) Keys() []string {
	return []string{d.ThumbKey, d.DisplayKey, d.OriginalKey}
}

type PolicyDocumentRepository interface {
	Create(ctx context.Context, doc *PolicyDocument) (*PolicyDocument, error)
	GetByID(ctx context.Context, workspaceID int32, policyID int32, id uuid.UUID) (*PolicyDocument, error)
	ListByPolicy(ctx context.Context, workspaceID int32, policyID int32) ([]*PolicyDocument, error)
	SoftDelete(ctx context.Context, workspaceID int32, id uuid.UUID) error
}
