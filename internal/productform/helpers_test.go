package productform

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/stretchr/testify/require"
)

func pngFile(t testing.TB, name string, w, h int) ImageFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return ImageFile{Filename: name, ContentType: "image/png", Data: buf.Bytes()}
}

func jpegFile(t testing.TB, name string, w, h int) ImageFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return ImageFile{Filename: name, Data: buf.Bytes()}
}

func shirtDraft() domain.ProductDraft {
	return domain.ProductDraft{
		Name:         "Shirt",
		Price:        "100",
		SellingPrice: "150",
		Category:     "Apparel",
		Description:  "Cotton shirt",
		Quantity:     "10",
		ReturnPolicy: domain.ReturnSevenDays,
	}
}

func shirtSnapshot() domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ID:             "p-1",
		Name:           "Shirt",
		Price:          "100",
		SellingPrice:   "150",
		Category:       "Apparel",
		Description:    "Cotton shirt",
		Quantity:       "10",
		Return:         "7 Days",
		Specifications: []domain.SpecificationEntry{{Key: "Fabric", Value: "Cotton"}},
		Highlights:     []string{"Breathable"},
		CustomOptions:  []domain.CustomOption{{Name: "Size", Values: []string{"S", "M"}}},
		ThumbnailImage: "https://cdn.example.com/p-1/thumb.png",
		Images:         []string{"https://cdn.example.com/p-1/1.png"},
	}
}
