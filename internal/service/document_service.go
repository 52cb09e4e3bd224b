package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/repository/storage"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxDocumentSize   = 5 * 1024 * 1024 // 5MB
	MinDocumentWidth  = 50
	MinDocumentHeight = 50
	ThumbnailWidth    = 200
	DisplayWidth      = 800
	JPEGQuality       = 85
	// DocumentURLExpiry is how long presigned document links stay valid
	DocumentURLExpiry = 15 * time.Minute
)

var (
	ErrDocumentTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrDocumentInvalidFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrDocumentTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrDocumentInvalidData          = errors.New("invalid image data")
	ErrDocumentStorageNotConfigured = errors.New("document storage not configured")
)

// AllowedDocumentExtensions maps accepted file extensions to their content types
var AllowedDocumentExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type imageData struct {
	img    image.Image
	width  int
	height int
}

// DocumentView is a stored document with short-lived links to its variants
type DocumentView struct {
	*domain.PolicyDocument
	ThumbnailURL string    `json:"thumbnailUrl"`
	DisplayURL   string    `json:"displayUrl"`
	OriginalURL  string    `json:"originalUrl"`
	URLExpiresAt time.Time `json:"urlExpiresAt"`
}

// DocumentService stores scanned policy documents in object storage
type DocumentService struct {
	notifier
	store        storage.DocumentStore
	documentRepo domain.PolicyDocumentRepository
	policyRepo   domain.PolicyRepository
}

// NewDocumentService creates a new DocumentService. store may be nil when S3 is not configured.
func NewDocumentService(store storage.DocumentStore, documentRepo domain.PolicyDocumentRepository, policyRepo domain.PolicyRepository) *DocumentService {
	return &DocumentService{
		store:        store,
		documentRepo: documentRepo,
		policyRepo:   policyRepo,
	}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *DocumentService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// ValidateDocument checks size, extension, sniffed content type and dimensions
func (s *DocumentService) ValidateDocument(data []byte, filename string) error {
	_, _, err := s.validateAndDecode(data, filename)
	return err
}

func (s *DocumentService) validateAndDecode(data []byte, filename string) (imageData, string, error) {
	if len(data) > MaxDocumentSize {
		return imageData{}, "", ErrDocumentTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := AllowedDocumentExtensions[ext]
	if !ok {
		return imageData{}, "", ErrDocumentInvalidFormat
	}
	if sniffed := http.DetectContentType(data); sniffed != "image/jpeg" && sniffed != "image/png" {
		return imageData{}, "", ErrDocumentInvalidFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return imageData{}, "", ErrDocumentInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinDocumentWidth || bounds.Dy() < MinDocumentHeight {
		return imageData{}, "", ErrDocumentTooSmall
	}
	return imageData{img: img, width: bounds.Dx(), height: bounds.Dy()}, contentType, nil
}

// Upload validates an image, stores its thumb, display and original variants and records it
func (s *DocumentService) Upload(ctx context.Context, workspaceID int32, policyID int32, userID uuid.UUID, data []byte, filename string) (*DocumentView, error) {
	if !s.IsEnabled() {
		return nil, ErrDocumentStorageNotConfigured
	}
	if _, err := s.policyRepo.GetByID(workspaceID, policyID); err != nil {
		return nil, err
	}

	decoded, contentType, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	doc := &domain.PolicyDocument{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		PolicyID:    policyID,
		FileName:    filepath.Base(filename),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Width:       int32(decoded.width),
		Height:      int32(decoded.height),
		UploadedBy:  &userID,
	}

	variants := []struct {
		name     string
		maxWidth int
		key      *string
	}{
		{"thumb", ThumbnailWidth, &doc.ThumbKey},
		{"display", DisplayWidth, &doc.DisplayKey},
		{"original", 0, &doc.OriginalKey},
	}

	var uploaded []string
	for _, variant := range variants {
		processed := decoded.img
		if variant.maxWidth > 0 && decoded.width > variant.maxWidth {
			processed = imaging.Resize(decoded.img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, processed, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		key := storage.DocumentObjectKey(workspaceID, policyID, doc.ID, variant.name)
		if _, err := s.store.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		*variant.key = key
		uploaded = append(uploaded, key)
	}

	created, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		s.cleanup(ctx, uploaded)
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("policy_id", policyID).Msg("Failed to record policy document")
		return nil, err
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Int32("policy_id", policyID).
		Str("document_id", created.ID.String()).
		Msg("Policy document uploaded")

	view, err := s.view(ctx, created)
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.DocumentCreated(created))
	return view, nil
}

// List returns the documents of a policy with fresh presigned links
func (s *DocumentService) List(ctx context.Context, workspaceID int32, policyID int32) ([]*DocumentView, error) {
	if !s.IsEnabled() {
		return nil, ErrDocumentStorageNotConfigured
	}
	if _, err := s.policyRepo.GetByID(workspaceID, policyID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByPolicy(ctx, workspaceID, policyID)
	if err != nil {
		return nil, err
	}

	views := make([]*DocumentView, 0, len(docs))
	for _, doc := range docs {
		view, err := s.view(ctx, doc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Delete soft-deletes the record and then removes the stored objects
func (s *DocumentService) Delete(ctx context.Context, workspaceID int32, policyID int32, documentID uuid.UUID) error {
	if !s.IsEnabled() {
		return ErrDocumentStorageNotConfigured
	}

	doc, err := s.documentRepo.GetByID(ctx, workspaceID, policyID, documentID)
	if err != nil {
		return err
	}
	if err := s.documentRepo.SoftDelete(ctx, workspaceID, documentID); err != nil {
		return err
	}
	s.cleanup(ctx, doc.Keys())

	log.Info().
		Int32("workspace_id", workspaceID).
		Int32("policy_id", policyID).
		Str("document_id", documentID.String()).
		Msg("Policy document deleted")
	s.publishEvent(workspaceID, websocket.DocumentDeleted(doc))
	return nil
}

func (s *DocumentService) view(ctx context.Context, doc *domain.PolicyDocument) (*DocumentView, error) {
	view := &DocumentView{PolicyDocument: doc, URLExpiresAt: time.Now().Add(DocumentURLExpiry).UTC()}
	targets := []struct {
		key string
		url *string
	}{
		{doc.ThumbKey, &view.ThumbnailURL},
		{doc.DisplayKey, &view.DisplayURL},
		{doc.OriginalKey, &view.OriginalURL},
	}
	for _, t := range targets {
		url, err := s.store.GeneratePresignedURL(ctx, t.key, DocumentURLExpiry)
		if err != nil {
			return nil, err
		}
		*t.url = url
	}
	return view, nil
}

// cleanup removes stored objects, best effort
func (s *DocumentService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("object_key", key).Msg("Failed to delete stored document object")
		}
	}
}
