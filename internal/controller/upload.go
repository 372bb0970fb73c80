package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// limitBody caps the whole multipart request. Individual files are checked
// against their own limit later.
func limitBody(e echo.Context, maxBytes int64) {
	if maxBytes <= 0 {
		return
	}
	req := e.Request()
	req.Body = http.MaxBytesReader(e.Response(), req.Body, maxBytes)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// readImageFile loads one uploaded file. Files over maxBytes are refused
// and so is anything that does not sniff as an image.
func readImageFile(fh *multipart.FileHeader, maxBytes int64) (productform.ImageFile, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return productform.ImageFile{}, errs.ErrFileSizeExceedingLimit
	}

	src, err := fh.Open()
	if err != nil {
		return productform.ImageFile{}, err
	}
	defer src.Close()

	limit := fh.Size
	if maxBytes > 0 {
		limit = maxBytes
	}
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return productform.ImageFile{}, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return productform.ImageFile{}, errs.ErrFileSizeExceedingLimit
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return productform.ImageFile{}, errs.ErrNotAnImage
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = sniffed
	}

	return productform.ImageFile{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// imageFileOrUnreadable hands every uploaded file to the form. A file that
// cannot be read as an image goes through without data, so the form rejects
// it as unreadable while the rest of the selection is still inspected.
func imageFileOrUnreadable(fh *multipart.FileHeader, maxBytes int64) productform.ImageFile {
	file, err := readImageFile(fh, maxBytes)
	if err != nil {
		log.Warn().Err(err).Str("component", "readImageFile").Str("filename", fh.Filename).Msg("")
		return productform.ImageFile{Filename: fh.Filename}
	}
	return file
}
