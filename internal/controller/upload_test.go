package controller

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("thumbnail", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["thumbnail"][0]
}

func TestReadImageFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 300, 300))))
	pngData := buf.Bytes()

	t.Run("png", func(t *testing.T) {
		file, err := readImageFile(fileHeader(t, "thumb.png", pngData), 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "thumb.png", file.Filename)
		assert.Equal(t, "image/png", file.ContentType, "sniffed when the part has no image type")
		assert.Equal(t, pngData, file.Data)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := readImageFile(fileHeader(t, "thumb.png", pngData), int64(len(pngData)-1))
		assert.ErrorIs(t, err, errs.ErrFileSizeExceedingLimit)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := readImageFile(fileHeader(t, "notes.png", []byte("hello there")), 1<<20)
		assert.ErrorIs(t, err, errs.ErrNotAnImage)
	})
}

func TestImageFileOrUnreadable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 600))))
	pngData := buf.Bytes()

	testCases := []struct {
		Name       string
		Filename   string
		Data       []byte
		MaxBytes   int64
		ExpectData bool
	}{
		{Name: "image is read", Filename: "1.png", Data: pngData, MaxBytes: 1 << 20, ExpectData: true},
		{Name: "text file has no data", Filename: "notes.txt", Data: []byte("plain text"), MaxBytes: 1 << 20},
		{Name: "oversized file has no data", Filename: "big.png", Data: pngData, MaxBytes: 16},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			file := imageFileOrUnreadable(fileHeader(t, tc.Filename, tc.Data), tc.MaxBytes)
			assert.Equal(t, tc.Filename, file.Filename)
			if tc.ExpectData {
				assert.Equal(t, tc.Data, file.Data)
				return
			}

			assert.Empty(t, file.Data)
			_, err := productform.Inspect(file, productform.ImageDimensions, productform.ReasonImageSize)
			var rejection *productform.ImageRejection
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, productform.ReasonUnreadable, rejection.Reason)
		})
	}
}

func TestIsBodyTooLarge(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	e := echo.New().NewContext(req, rec)

	limitBody(e, 8)
	_, err := io.ReadAll(e.Request().Body)
	assert.True(t, isBodyTooLarge(err))
	assert.False(t, isBodyTooLarge(errs.ErrClient))
}
