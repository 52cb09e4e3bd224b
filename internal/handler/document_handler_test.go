package handler

import (
	"bytes"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentRig struct {
	*brokerage
	store   *testutil.MockDocumentStore
	docs    *testutil.MockPolicyDocumentRepository
	handler *DocumentHandler
}

func newDocumentRig(t *testing.T, withStore bool) *documentRig {
	r := &documentRig{
		brokerage: newBrokerage(),
		store:     testutil.NewMockDocumentStore(),
		docs:      testutil.NewMockPolicyDocumentRepository(),
	}
	r.addPolicy(t, "POL-DOC", 10000, time.Now(), 365*24*time.Hour)

	var svc *service.DocumentService
	if withStore {
		svc = service.NewDocumentService(r.store, r.docs, r.policies)
	} else {
		svc = service.NewDocumentService(nil, r.docs, r.policies)
	}
	r.handler = NewDocumentHandler(svc)
	return r
}

func scanPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(width, height, color.NRGBA{R: 240, G: 240, B: 230, A: 255})
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func uploadContext(t *testing.T, e *echo.Echo, policyID, filename string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/policies/"+policyID+"/documents", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(policyID)
	setupPrincipal(c, subUserOf(1))
	return c, rec
}

func TestUploadDocument_Success(t *testing.T) {
	e := echo.New()
	r := newDocumentRig(t, true)

	c, rec := uploadContext(t, e, "1", "scan.png", scanPNG(t, 400, 300))
	require.NoError(t, r.handler.UploadDocument(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.NotEmpty(t, view["thumbnailUrl"])
	assert.NotEmpty(t, view["displayUrl"])
	assert.NotEmpty(t, view["originalUrl"])

	assert.Len(t, r.docs.Documents, 1)
	// thumb, display and original
	assert.Len(t, r.store.Objects, 3)
}

func TestUploadDocument_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		policyID string
		filename string
		data     func(t *testing.T) []byte
		status   int
	}{
		{"no file", "1", "", func(t *testing.T) []byte { return nil }, http.StatusBadRequest},
		{"not an image", "1", "scan.png", func(t *testing.T) []byte { return []byte("%PDF-1.4 not an image") }, http.StatusBadRequest},
		{"wrong extension", "1", "scan.gif", func(t *testing.T) []byte { return scanPNG(t, 100, 100) }, http.StatusBadRequest},
		{"too small", "1", "scan.png", func(t *testing.T) []byte { return scanPNG(t, 20, 20) }, http.StatusBadRequest},
		{"unknown policy", "99", "scan.png", func(t *testing.T) []byte { return scanPNG(t, 100, 100) }, http.StatusNotFound},
		{"invalid policy id", "abc", "scan.png", func(t *testing.T) []byte { return scanPNG(t, 100, 100) }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			r := newDocumentRig(t, true)

			c, rec := uploadContext(t, e, tt.policyID, tt.filename, tt.data(t))
			require.NoError(t, r.handler.UploadDocument(c))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Empty(t, r.store.Objects)
		})
	}
}

func TestUploadDocument_StorageDisabled(t *testing.T) {
	e := echo.New()
	r := newDocumentRig(t, false)

	c, rec := uploadContext(t, e, "1", "scan.png", scanPNG(t, 100, 100))
	require.NoError(t, r.handler.UploadDocument(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListAndDeleteDocuments(t *testing.T) {
	e := echo.New()
	r := newDocumentRig(t, true)

	c, rec := uploadContext(t, e, "1", "scan.png", scanPNG(t, 120, 80))
	require.NoError(t, r.handler.UploadDocument(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/policies/1/documents", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupPrincipal(c, subUserOf(1))
	require.NoError(t, r.handler.ListDocuments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0]["id"])

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/policies/1/documents/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id", "documentId")
	c.SetParamValues("1", created.ID)
	setupPrincipal(c, subUserOf(1))
	require.NoError(t, r.handler.DeleteDocument(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, r.store.Objects)
}

func TestDeleteDocument_InvalidID(t *testing.T) {
	e := echo.New()
	r := newDocumentRig(t, true)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/policies/1/documents/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "documentId")
	c.SetParamValues("1", "nope")
	setupPrincipal(c, subUserOf(1))

	require.NoError(t, r.handler.DeleteDocument(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
