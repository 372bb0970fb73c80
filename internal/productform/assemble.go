package productform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/hainweb/merchant-console/internal/domain"
)

// Part names expected by the merchant API.
const (
	PartName           = "Name"
	PartPrice          = "Price"
	PartSellingPrice   = "SellingPrice"
	PartCategory       = "Category"
	PartDescription    = "Description"
	PartQuantity       = "Quantity"
	PartReturn         = "Return"
	PartSpecifications = "Specifications"
	PartHighlights     = "Highlights"
	PartCustomOptions  = "CustomOptions"
	PartThumbnail      = "thumbnail"
	PartImages         = "images"
)

type Submission struct {
	Draft          domain.ProductDraft
	Specifications []domain.SpecificationEntry
	Highlights     []string
	CustomOptions  []domain.CustomOption
	// Thumbnail is nil when the server-held thumbnail is kept.
	Thumbnail *ImageAsset
	Images    []*ImageAsset
}

type Payload struct {
	ContentType string
	Body        []byte
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Assemble encodes the submission as a single multipart/form-data body.
func Assemble(s Submission) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  string
		value string
	}{
		{PartName, s.Draft.Name},
		{PartPrice, strings.TrimSpace(s.Draft.Price)},
		{PartSellingPrice, strings.TrimSpace(s.Draft.SellingPrice)},
		{PartCategory, s.Draft.Category},
		{PartDescription, s.Draft.Description},
		{PartQuantity, strings.TrimSpace(s.Draft.Quantity)},
		{PartReturn, string(s.Draft.ReturnPolicy)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("error writing %s part: %w", f.name, err)
		}
	}

	specs := s.Specifications
	if specs == nil {
		specs = []domain.SpecificationEntry{}
	}
	highlights := s.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	options := s.CustomOptions
	if options == nil {
		options = []domain.CustomOption{}
	}

	collections := []struct {
		name  string
		value interface{}
	}{
		{PartSpecifications, specs},
		{PartHighlights, highlights},
		{PartCustomOptions, options},
	}
	for _, c := range collections {
		encoded, err := json.Marshal(c.value)
		if err != nil {
			return nil, fmt.Errorf("error marshalling %s: %w", c.name, err)
		}
		if err := w.WriteField(c.name, string(encoded)); err != nil {
			return nil, fmt.Errorf("error writing %s part: %w", c.name, err)
		}
	}

	if s.Thumbnail != nil {
		if err := writeFile(w, PartThumbnail, s.Thumbnail); err != nil {
			return nil, err
		}
	}

	for _, img := range s.Images {
		if err := writeFile(w, PartImages, img); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error closing multipart body: %w", err)
	}

	return &Payload{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

func writeFile(w *multipart.Writer, field string, asset *ImageAsset) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(asset.Filename)))
	h.Set("Content-Type", asset.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("error creating %s part: %w", field, err)
	}

	if _, err := part.Write(asset.Data); err != nil {
		return fmt.Errorf("error writing %s part: %w", field, err)
	}
	return nil
}
