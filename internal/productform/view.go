package productform

import (
	"github.com/hainweb/merchant-console/internal/domain"
)

type AssetView struct {
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Dimensions  Dimensions `json:"dimensions"`
	Preview     string     `json:"preview"`
}

type StagedView struct {
	Specification domain.SpecificationEntry `json:"specification"`
	Highlight     string                    `json:"highlight"`
	CustomOption  OptionInput               `json:"custom_option"`
}

// View is a point in time copy of the form, safe to serialize.
type View struct {
	ID                string                      `json:"id"`
	Mode              Mode                        `json:"mode"`
	ProductID         string                      `json:"product_id,omitempty"`
	State             State                       `json:"state"`
	Fields            domain.ProductDraft         `json:"fields"`
	Specifications    []domain.SpecificationEntry `json:"specifications"`
	Highlights        []string                    `json:"highlights"`
	CustomOptions     []domain.CustomOption       `json:"custom_options"`
	Staged            StagedView                  `json:"staged"`
	Thumbnail         *AssetView                  `json:"thumbnail"`
	ExistingThumbnail string                      `json:"existing_thumbnail,omitempty"`
	Images            []AssetView                 `json:"images"`
	ExistingImages    []string                    `json:"existing_images,omitempty"`
	Errors            ValidationErrors            `json:"errors"`
	Changed           bool                        `json:"changed"`
	CanSubmit         bool                        `json:"can_submit"`
}

func assetView(a *ImageAsset) AssetView {
	return AssetView{
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Dimensions:  a.Dimensions,
		Preview:     a.Preview(),
	}
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:             f.cfg.ID,
		Mode:           f.cfg.Mode,
		ProductID:      f.cfg.ProductID,
		State:          f.state,
		Fields:         f.draft,
		Specifications: f.specs.Items(),
		Highlights:     f.highlights.Items(),
		CustomOptions:  f.options.Items(),
		Staged: StagedView{
			Specification: f.specs.Staged(),
			Highlight:     f.highlights.Staged(),
			CustomOption:  f.options.Staged(),
		},
		Images:  make([]AssetView, 0, len(f.images)),
		Errors:  make(ValidationErrors, len(f.errors)),
		Changed: f.changed(),
	}

	if f.thumbnail != nil {
		tv := assetView(f.thumbnail)
		v.Thumbnail = &tv
	}
	for _, a := range f.images {
		v.Images = append(v.Images, assetView(a))
	}
	for k, msg := range f.errors {
		v.Errors[k] = msg
	}
	if f.tracker != nil {
		snapshot := f.tracker.Snapshot()
		v.ExistingThumbnail = snapshot.ThumbnailImage
		v.ExistingImages = snapshot.Images
	}

	v.CanSubmit = v.Changed && f.state == StateIdle && !f.closed

	return v
}
