package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/services"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func fakePNG(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

type uploadPart struct {
	name string
	data []byte
}

func (e *testEnv) postUpload(parts ...uploadPart) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile("files", p.name)
		require.NoError(e.t, err)
		_, err = fw.Write(p.data)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	return e.serve(req)
}

func TestUploadRejectsOversizedBatchBeforeUploading(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postUpload(
		uploadPart{"ok.png", fakePNG(1024)},
		uploadPart{"huge.png", fakePNG(6 * 1024 * 1024)},
	)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Details, `"huge.png" is too large (max 5MB)`)
	assert.Zero(t, env.uploader.calls())
}

func TestUploadWarnsOnLargeImage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postUpload(
		uploadPart{"big.png", fakePNG(3 * 1024 * 1024)},
		uploadPart{"small.png", fakePNG(2048)},
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeBody[services.UploadResult](t, rec)
	assert.Equal(t, []string{`File "big.png" is 3.0MB. Consider compressing for better performance.`}, result.Warnings)
	require.Len(t, result.Uploaded, 2)
	assert.Contains(t, result.Uploaded[0].URL, "https://cdn.example.com/projects/")
	assert.Equal(t, 2, env.uploader.calls())
}

func TestUploadRejectsNonImages(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postUpload(uploadPart{"notes.txt", []byte("just some text, not an image")})
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Zero(t, env.uploader.calls())
}

func TestUploadNeedsFiles(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postUpload()
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "files", decodeBody[ErrorResponse](t, rec).Field)
}
