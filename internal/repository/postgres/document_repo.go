package postgres

import (
	"context"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, workspace_id, policy_id, file_name, content_type, size_bytes, width, height,
	thumb_key, display_key, original_key, uploaded_by, created_at, deleted_at`

// PolicyDocumentRepository implements domain.PolicyDocumentRepository using PostgreSQL
type PolicyDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewPolicyDocumentRepository(pool *pgxpool.Pool) *PolicyDocumentRepository {
	return &PolicyDocumentRepository{pool: pool}
}

// Create stores document metadata; the id is chosen by the caller because it names the stored objects
func (r *PolicyDocumentRepository) Create(ctx context.Context, doc *domain.PolicyDocument) (*domain.PolicyDocument, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO policy_documents (id, workspace_id, policy_id, file_name, content_type, size_bytes, width, height,
			thumb_key, display_key, original_key, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+documentColumns,
		pgtype.UUID{Bytes: doc.ID, Valid: true}, doc.WorkspaceID, doc.PolicyID, doc.FileName, doc.ContentType,
		doc.SizeBytes, doc.Width, doc.Height, doc.ThumbKey, doc.DisplayKey, doc.OriginalKey, uuidToPg(doc.UploadedBy),
	)
	return scanDocument(row)
}

func (r *PolicyDocumentRepository) GetByID(ctx context.Context, workspaceID int32, policyID int32, id uuid.UUID) (*domain.PolicyDocument, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+documentColumns+` FROM policy_documents
		WHERE workspace_id = $1 AND policy_id = $2 AND id = $3 AND deleted_at IS NULL`,
		workspaceID, policyID, pgtype.UUID{Bytes: id, Valid: true},
	)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, translateErr(err, domain.ErrDocumentNotFound, nil)
	}
	return doc, nil
}

func (r *PolicyDocumentRepository) ListByPolicy(ctx context.Context, workspaceID int32, policyID int32) ([]*domain.PolicyDocument, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+documentColumns+` FROM policy_documents
		WHERE workspace_id = $1 AND policy_id = $2 AND deleted_at IS NULL
		ORDER BY created_at DESC`,
		workspaceID, policyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*domain.PolicyDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *PolicyDocumentRepository) SoftDelete(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE policy_documents SET deleted_at = now()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, pgtype.UUID{Bytes: id, Valid: true},
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func scanDocument(row rowScanner) (*domain.PolicyDocument, error) {
	var (
		d          domain.PolicyDocument
		id         pgtype.UUID
		uploadedBy pgtype.UUID
		deletedAt  pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &d.WorkspaceID, &d.PolicyID, &d.FileName, &d.ContentType, &d.SizeBytes, &d.Width, &d.Height,
		&d.ThumbKey, &d.DisplayKey, &d.OriginalKey, &uploadedBy, &d.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.UploadedBy = pgToUUIDPtr(uploadedBy)
	d.DeletedAt = pgTimestampPtr(deletedAt)
	return &d, nil
}
