package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage renders a solid image of the given size as JPEG or PNG
func createTestImage(width, height int, format string) ([]byte, string) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 60, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if format == "png" {
		_ = png.Encode(&buf, img)
		return buf.Bytes(), "scan.png"
	}
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	return buf.Bytes(), "scan.jpg"
}

type documentFixture struct {
	svc       *DocumentService
	store     *testutil.MockDocumentStore
	docs      *testutil.MockPolicyDocumentRepository
	publisher *testutil.MockEventPublisher
}

func newDocumentFixture() *documentFixture {
	policies := testutil.NewMockPolicyRepository()
	policies.AddPolicy(seededPolicy(1, 1, 1, fixedNow, "100000"))

	f := &documentFixture{
		store:     testutil.NewMockDocumentStore(),
		docs:      testutil.NewMockPolicyDocumentRepository(),
		publisher: testutil.NewMockEventPublisher(),
	}
	f.svc = NewDocumentService(f.store, f.docs, policies)
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func TestValidateDocument(t *testing.T) {
	svc := NewDocumentService(nil, nil, nil)
	jpg, jpgName := createTestImage(100, 100, "jpeg")
	pngData, pngName := createTestImage(100, 100, "png")
	tiny, tinyName := createTestImage(40, 100, "png")

	tests := []struct {
		name     string
		data     []byte
		filename string
		want     error
	}{
		{"jpeg", jpg, jpgName, nil},
		{"png", pngData, pngName, nil},
		{"too large", make([]byte, MaxDocumentSize+1), "scan.jpg", ErrDocumentTooLarge},
		{"unsupported extension", jpg, "scan.gif", ErrDocumentInvalidFormat},
		{"png bytes named jpg still decode", pngData, "scan.jpg", nil},
		{"text renamed to jpg", []byte(strings.Repeat("policy ", 50)), "scan.jpg", ErrDocumentInvalidFormat},
		{"truncated jpeg", jpg[:len(jpg)/3], jpgName, ErrDocumentInvalidData},
		{"too small", tiny, tinyName, ErrDocumentTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateDocument(tt.data, tt.filename)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDocumentService_Upload(t *testing.T) {
	f := newDocumentFixture()
	data, filename := createTestImage(1600, 900, "png")
	uploader := uuid.New()

	view, err := f.svc.Upload(context.Background(), 1, 1, uploader, data, filename)
	require.NoError(t, err)

	assert.Equal(t, "image/png", view.ContentType)
	assert.Equal(t, int32(1600), view.Width)
	assert.Equal(t, uploader, *view.UploadedBy)
	assert.Len(t, f.store.Objects, 3)
	assert.Contains(t, view.ThumbnailURL, view.ThumbKey)
	assert.True(t, strings.HasPrefix(view.ThumbKey, "1/policies/1/"))

	thumb, err := imaging.Decode(bytes.NewReader(f.store.Objects[view.ThumbKey]))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, thumb.Bounds().Dx())
	display, err := imaging.Decode(bytes.NewReader(f.store.Objects[view.DisplayKey]))
	require.NoError(t, err)
	assert.Equal(t, DisplayWidth, display.Bounds().Dx())
	original, err := imaging.Decode(bytes.NewReader(f.store.Objects[view.OriginalKey]))
	require.NoError(t, err)
	assert.Equal(t, 1600, original.Bounds().Dx())

	last, ok := f.publisher.Last()
	require.True(t, ok)
	assert.Equal(t, "policy_document.created", last.Event.Type)
}

func TestDocumentService_UploadSmallImageKeepsWidth(t *testing.T) {
	f := newDocumentFixture()
	data, filename := createTestImage(120, 80, "jpeg")

	view, err := f.svc.Upload(context.Background(), 1, 1, uuid.New(), data, filename)
	require.NoError(t, err)

	display, err := imaging.Decode(bytes.NewReader(f.store.Objects[view.DisplayKey]))
	require.NoError(t, err)
	assert.Equal(t, 120, display.Bounds().Dx(), "images are never upscaled")
}

func TestDocumentService_UploadFailureCleansUp(t *testing.T) {
	f := newDocumentFixture()
	f.store.FailAfter = 3
	data, filename := createTestImage(100, 100, "jpeg")

	_, err := f.svc.Upload(context.Background(), 1, 1, uuid.New(), data, filename)
	require.Error(t, err)
	assert.Empty(t, f.store.Objects, "variants stored before the failure are removed")
	assert.Empty(t, f.docs.Documents)

	f = newDocumentFixture()
	f.docs.CreateErr = errors.New("database down")
	_, err = f.svc.Upload(context.Background(), 1, 1, uuid.New(), data, filename)
	require.Error(t, err)
	assert.Empty(t, f.store.Objects)
}

func TestDocumentService_UnknownPolicy(t *testing.T) {
	f := newDocumentFixture()
	data, filename := createTestImage(100, 100, "jpeg")

	_, err := f.svc.Upload(context.Background(), 2, 1, uuid.New(), data, filename)
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)

	_, err = f.svc.List(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
}

func TestDocumentService_ListAndDelete(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	data, filename := createTestImage(100, 100, "jpeg")

	view, err := f.svc.Upload(ctx, 1, 1, uuid.New(), data, filename)
	require.NoError(t, err)

	views, err := f.svc.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, view.ID, views[0].ID)
	assert.NotEmpty(t, views[0].OriginalURL)

	require.NoError(t, f.svc.Delete(ctx, 1, 1, view.ID))
	assert.Empty(t, f.store.Objects)

	views, err = f.svc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, views)

	assert.ErrorIs(t, f.svc.Delete(ctx, 1, 1, view.ID), domain.ErrDocumentNotFound)

	last, _ := f.publisher.Last()
	assert.Equal(t, "policy_document.deleted", last.Event.Type)
}

func TestDocumentService_StorageDisabled(t *testing.T) {
	svc := NewDocumentService(nil, testutil.NewMockPolicyDocumentRepository(), testutil.NewMockPolicyRepository())
	assert.False(t, svc.IsEnabled())

	data, filename := createTestImage(100, 100, "jpeg")
	_, err := svc.Upload(context.Background(), 1, 1, uuid.New(), data, filename)
	assert.ErrorIs(t, err, ErrDocumentStorageNotConfigured)

	_, err = svc.List(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrDocumentStorageNotConfigured)
}
