package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fileName, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	router := newTestRouter(handlerDeps{})

	body, contentType := multipartBody(t, "photo.jpg", "image/jpeg",
		[]byte("jpeg-bytes"), map[string]string{"folder": "photos"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"url": "https://store.example.org/photos/stored"}`, w.Body.String())
}

func TestUploadImageDefaultFolder(t *testing.T) {
	router := newTestRouter(handlerDeps{})

	body, contentType := multipartBody(t, "photo.jpg", "image/jpeg", []byte("jpeg-bytes"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url": "https://store.example.org/uploads/stored"}`, w.Body.String())
}

func TestUploadImageMissingFile(t *testing.T) {
	router := newTestRouter(handlerDeps{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-image", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
}

func TestUploadImageStorageFailure(t *testing.T) {
	router := newTestRouter(handlerDeps{uploader: &stubUploader{err: errors.New("bucket unavailable")}})

	body, contentType := multipartBody(t, "photo.jpg", "image/jpeg", []byte("jpeg-bytes"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
