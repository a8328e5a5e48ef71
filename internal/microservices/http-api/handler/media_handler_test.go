package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"videohub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, kind, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if kind != "" {
		require.NoError(t, mw.WriteField("kind", kind))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	ts := setupRouter()
	ts.media.On("Save", mock.Anything, storage.KindThumbnail, "cover.jpg", "jpeg-bytes", int64(10), mock.Anything).
		Return("thumbnails/abc.jpg", nil)

	body, contentType := multipartUpload(t, "thumbnail", "cover.jpg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/videos/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"path":"thumbnails/abc.jpg"}`, w.Body.String())
}

func TestUploadMedia_Rejects(t *testing.T) {
	ts := setupRouter()
	ts.media.On("Save", mock.Anything, storage.KindVideo, "notes.txt", mock.Anything, mock.Anything, mock.Anything).
		Return("", storage.ErrUnsupportedFormat)

	tests := []struct {
		name     string
		kind     string
		filename string
		token    string
		want     int
	}{
		{"non admin", "video", "a.mp4", userToken, http.StatusForbidden},
		{"bad kind", "audio", "a.mp3", adminToken, http.StatusBadRequest},
		{"missing file", "video", "", adminToken, http.StatusBadRequest},
		{"bad format", "video", "notes.txt", adminToken, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.kind, tt.filename, "data")
			req := httptest.NewRequest(http.MethodPost, "/api/videos/media", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			ts.router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUploadMedia_TooLarge(t *testing.T) {
	ts := setupRouter()

	body, contentType := multipartUpload(t, "video", "big.mp4", string(make([]byte, 3<<19)))
	req := httptest.NewRequest(http.MethodPost, "/api/videos/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	ts.media.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
