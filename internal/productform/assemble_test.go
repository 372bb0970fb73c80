package productform

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	Name        string
	Filename    string
	ContentType string
	Body        string
}

func readParts(t *testing.T, p *Payload) []part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(p.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(p.Body), params["boundary"])
	var parts []part
	for {
		mp, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(mp)
		require.NoError(t, err)
		parts = append(parts, part{
			Name:        mp.FormName(),
			Filename:    mp.FileName(),
			ContentType: mp.Header.Get("Content-Type"),
			Body:        string(body),
		})
	}
	return parts
}

func TestAssembleShirtWithThumbnail(t *testing.T) {
	thumb, err := Inspect(pngFile(t, "thumb.png", 300, 300), ThumbnailDimensions, ReasonThumbnailSize)
	require.NoError(t, err)

	payload, err := Assemble(Submission{Draft: shirtDraft(), Thumbnail: thumb})
	require.NoError(t, err)

	parts := readParts(t, payload)
	require.Len(t, parts, 11)

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"Name", "Price", "SellingPrice", "Category", "Description", "Quantity", "Return",
		"Specifications", "Highlights", "CustomOptions", "thumbnail",
	}, names)

	assert.Equal(t, "Shirt", parts[0].Body)
	assert.Equal(t, "150", parts[2].Body)
	assert.Equal(t, "7 Days", parts[6].Body)
	assert.Equal(t, "[]", parts[7].Body)
	assert.Equal(t, "[]", parts[8].Body)
	assert.Equal(t, "[]", parts[9].Body)

	assert.Equal(t, "thumb.png", parts[10].Filename)
	assert.Equal(t, "image/png", parts[10].ContentType)
	assert.Equal(t, string(thumb.Data), parts[10].Body)
}

func TestAssembleCollectionsAndImages(t *testing.T) {
	img1, err := Inspect(pngFile(t, "1.png", 600, 600), ImageDimensions, ReasonImageSize)
	require.NoError(t, err)
	img2, err := Inspect(pngFile(t, "2.png", 600, 600), ImageDimensions, ReasonImageSize)
	require.NoError(t, err)

	payload, err := Assemble(Submission{
		Draft:          shirtDraft(),
		Specifications: []domain.SpecificationEntry{{Key: "Fabric", Value: "Cotton"}},
		Highlights:     []string{"Breathable"},
		CustomOptions:  []domain.CustomOption{{Name: "Size", Values: []string{"S", "M"}}},
		Images:         []*ImageAsset{img1, img2},
	})
	require.NoError(t, err)

	parts := readParts(t, payload)
	require.Len(t, parts, 12)

	assert.JSONEq(t, `[{"key":"Fabric","value":"Cotton"}]`, parts[7].Body)
	assert.JSONEq(t, `["Breathable"]`, parts[8].Body)
	assert.JSONEq(t, `[{"name":"Size","values":["S","M"]}]`, parts[9].Body)

	assert.Equal(t, "images", parts[10].Name)
	assert.Equal(t, "1.png", parts[10].Filename)
	assert.Equal(t, "images", parts[11].Name)
	assert.Equal(t, "2.png", parts[11].Filename)
}
