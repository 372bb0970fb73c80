package productform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

var (
	ThumbnailDimensions = Dimensions{Width: 300, Height: 300}
	ImageDimensions     = Dimensions{Width: 600, Height: 600}
)

const (
	ReasonThumbnailSize = "Thumbnail must be 300x300 pixels."
	ReasonImageSize     = "All additional images must be 600x600 pixels."
	ReasonUnreadable    = "Error loading image file."
)

// decodeLimit bounds how many images of one selection are decoded at once.
const decodeLimit = 4

type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ImageRejection struct {
	Filename string
	Reason   string
}

func (r *ImageRejection) Error() string {
	return r.Reason
}

// ImageAsset is an accepted image. The preview is a data URL that lives
// until Release is called.
type ImageAsset struct {
	Filename    string
	ContentType string
	Data        []byte
	Dimensions  Dimensions
	preview     string
	released    bool
}

func (a *ImageAsset) Preview() string {
	return a.preview
}

func (a *ImageAsset) Release() {
	a.preview = ""
	a.released = true
}

func (a *ImageAsset) Released() bool {
	return a.released
}

// Inspect decodes the image header and accepts the file only when its
// intrinsic size is exactly want.
func Inspect(file ImageFile, want Dimensions, mismatchReason string) (*ImageAsset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return nil, &ImageRejection{Filename: file.Filename, Reason: ReasonUnreadable}
	}

	if cfg.Width != want.Width || cfg.Height != want.Height {
		return nil, &ImageRejection{Filename: file.Filename, Reason: mismatchReason}
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "image/" + format
	}

	return &ImageAsset{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        file.Data,
		Dimensions:  Dimensions{Width: cfg.Width, Height: cfg.Height},
		preview:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data),
	}, nil
}

type Settlement struct {
	Asset *ImageAsset
	Err   error
}

// InspectAll decodes every file concurrently and waits for all of them.
// One failure never cancels the others. Results keep the input order.
func InspectAll(files []ImageFile, want Dimensions, mismatchReason string) []Settlement {
	results := make([]Settlement, len(files))

	var g errgroup.Group
	g.SetLimit(decodeLimit)
	for i, file := range files {
		g.Go(func() error {
			asset, err := Inspect(file, want, mismatchReason)
			results[i] = Settlement{Asset: asset, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}

// Partition splits settlements into the accepted assets and the first
// rejection reason, if any.
func Partition(settlements []Settlement) ([]*ImageAsset, string) {
	var (
		accepted []*ImageAsset
		reason   string
	)
	for _, s := range settlements {
		if s.Err != nil {
			if reason == "" {
				reason = s.Err.Error()
			}
			continue
		}
		accepted = append(accepted, s.Asset)
	}
	return accepted, reason
}
