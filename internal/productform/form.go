package productform

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/pkg/errs"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateNavigated  State = "navigated"
)

const (
	MsgCreated         = "Product Added Successfully"
	MsgUpdated         = "Product updated successfully"
	MsgRejected        = "Something went wrong"
	MsgCreateTransport = "Failed to Add product"
	MsgUpdateTransport = "Failed to update product"
)

// Ack is the merchant API answer to a product submission.
type Ack struct {
	Status  bool
	Message string
}

type Submitter interface {
	CreateProduct(ctx context.Context, payload *Payload) (Ack, error)
	UpdateProduct(ctx context.Context, productID string, payload *Payload) (Ack, error)
}

// SubmissionError is a failed submission after validation passed. The
// form keeps every value the merchant entered.
type SubmissionError struct {
	Transport bool
	Message   string
	Cause     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Is(target error) bool {
	if e.Transport {
		return target == errs.ErrBadGateway
	}
	return target == errs.ErrRejected
}

func (v ValidationErrors) Is(target error) bool {
	return target == errs.ErrValidation
}

func (r *ImageRejection) Is(target error) bool {
	return target == errs.ErrClient
}

type Outcome struct {
	Mode      Mode   `json:"mode"`
	ProductID string `json:"product_id,omitempty"`
	Message   string `json:"message"`
}

type Config struct {
	ID        string
	Owner     string
	Mode      Mode
	ProductID string
	// Snapshot is required in update mode.
	Snapshot *domain.ProductSnapshot
}

type FieldPatch struct {
	Name         *string
	Price        *string
	SellingPrice *string
	Category     *string
	Description  *string
	Quantity     *string
	ReturnPolicy *string
}

// Form is the product form shared by the create and edit flows. It is safe
// for concurrent use; only one submission may be in flight at a time.
type Form struct {
	mu sync.Mutex

	cfg        Config
	draft      domain.ProductDraft
	specs      *Specifications
	highlights *Highlights
	options    *CustomOptions
	thumbnail  *ImageAsset
	images     []*ImageAsset
	errors     ValidationErrors
	state      State
	tracker    *DirtyTracker
	closed     bool
}

func New(cfg Config) (*Form, error) {
	f := &Form{
		cfg:        cfg,
		specs:      NewSpecifications(),
		highlights: NewHighlights(),
		options:    NewCustomOptions(),
		errors:     ValidationErrors{},
		state:      StateIdle,
	}

	switch cfg.Mode {
	case ModeCreate:
	case ModeUpdate:
		if cfg.ProductID == "" || cfg.Snapshot == nil {
			return nil, fmt.Errorf("update form needs a product id and snapshot: %w", errs.ErrClient)
		}
		f.tracker = NewDirtyTracker(*cfg.Snapshot)
		f.draft = cfg.Snapshot.Draft()
		f.specs.Load(cfg.Snapshot.Specifications)
		f.highlights.Load(cfg.Snapshot.Highlights)
		f.options.Load(cfg.Snapshot.CustomOptions)
	default:
		return nil, fmt.Errorf("unknown form mode %q: %w", cfg.Mode, errs.ErrClient)
	}

	return f, nil
}

func (f *Form) ID() string {
	return f.cfg.ID
}

func (f *Form) Owner() string {
	return f.cfg.Owner
}

func (f *Form) Mode() Mode {
	return f.cfg.Mode
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// editable must be called with mu held.
func (f *Form) editable() error {
	switch {
	case f.closed || f.state == StateNavigated:
		return errs.ErrSubmissionClosed
	case f.state != StateIdle:
		return errs.ErrSubmissionInFlight
	}
	return nil
}

func (f *Form) SetFields(p FieldPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.draft.Name, p.Name)
	set(&f.draft.Price, p.Price)
	set(&f.draft.SellingPrice, p.SellingPrice)
	set(&f.draft.Category, p.Category)
	set(&f.draft.Description, p.Description)
	set(&f.draft.Quantity, p.Quantity)
	if p.ReturnPolicy != nil {
		f.draft.ReturnPolicy = domain.ReturnPolicy(*p.ReturnPolicy)
	}

	return nil
}

func (f *Form) AddSpecification(in domain.SpecificationEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return false, err
	}
	f.specs.Stage(in)
	return f.specs.Add(), nil
}

func (f *Form) RemoveSpecification(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	return f.specs.Remove(index)
}

func (f *Form) AddHighlight(in string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return false, err
	}
	f.highlights.Stage(in)
	return f.highlights.Add(), nil
}

func (f *Form) RemoveHighlight(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	return f.highlights.Remove(index)
}

func (f *Form) AddCustomOption(in OptionInput) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return false, err
	}
	f.options.Stage(in)
	return f.options.Add(), nil
}

func (f *Form) RemoveCustomOption(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	return f.options.Remove(index)
}

// SelectThumbnail stages a new thumbnail. Whatever was staged before is
// released, even when the new file is rejected.
func (f *Form) SelectThumbnail(file ImageFile) (string, error) {
	asset, rejectErr := Inspect(file, ThumbnailDimensions, ReasonThumbnailSize)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		if asset != nil {
			asset.Release()
		}
		return "", err
	}

	if f.thumbnail != nil {
		f.thumbnail.Release()
		f.thumbnail = nil
	}

	if rejectErr != nil {
		f.errors[FieldThumbnail] = rejectErr.Error()
		return rejectErr.Error(), nil
	}

	f.thumbnail = asset
	delete(f.errors, FieldThumbnail)
	return "", nil
}

func (f *Form) RemoveThumbnail() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if f.thumbnail != nil {
		f.thumbnail.Release()
		f.thumbnail = nil
	}
	return nil
}

// SelectImages stages additional images. Accepted files are kept and
// rejected ones dropped; the first rejection becomes the Images error.
// Create forms append to earlier selections, update forms replace them.
func (f *Form) SelectImages(files []ImageFile) (int, string, error) {
	accepted, reason := Partition(InspectAll(files, ImageDimensions, ReasonImageSize))

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		for _, a := range accepted {
			a.Release()
		}
		return 0, "", err
	}

	if f.cfg.Mode == ModeUpdate {
		for _, a := range f.images {
			a.Release()
		}
		f.images = nil
	}
	f.images = append(f.images, accepted...)

	if reason != "" {
		f.errors[FieldImages] = reason
	} else {
		delete(f.errors, FieldImages)
	}

	return len(accepted), reason, nil
}

func (f *Form) RemoveImage(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if index < 0 || index >= len(f.images) {
		return ErrIndexOutOfRange
	}

	f.images[index].Release()
	f.images = slices.Delete(slices.Clone(f.images), index, index+1)
	return nil
}

// changed must be called with mu held.
func (f *Form) changed() bool {
	if f.tracker == nil {
		return true
	}
	return f.tracker.Changed(DirtyState{
		Draft:           f.draft,
		Specifications:  f.specs.Items(),
		Highlights:      f.highlights.Items(),
		HasNewThumbnail: f.thumbnail != nil,
		NewImages:       len(f.images),
	})
}

func (f *Form) Changed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changed()
}

// hasThumbnail must be called with mu held.
func (f *Form) hasThumbnail() bool {
	if f.thumbnail != nil {
		return true
	}
	return f.tracker != nil && f.tracker.Snapshot().ThumbnailImage != ""
}

// Submit validates the form and, when valid, sends it through s. A second
// call while one is running returns errs.ErrSubmissionInFlight without side
// effects.
func (f *Form) Submit(ctx context.Context, s Submitter) (Outcome, error) {
	payload, err := f.beginSubmit()
	if err != nil {
		return Outcome{}, err
	}

	var ack Ack
	if f.cfg.Mode == ModeCreate {
		ack, err = s.CreateProduct(ctx, payload)
	} else {
		ack, err = s.UpdateProduct(ctx, f.cfg.ProductID, payload)
	}

	return f.finishSubmit(ack, err)
}

func (f *Form) beginSubmit() (*Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return nil, err
	}
	if !f.changed() {
		return nil, errs.ErrNoChanges
	}

	f.state = StateValidating
	verrs := Validate(f.draft, f.hasThumbnail())
	if len(verrs) > 0 {
		f.errors = verrs
		f.state = StateIdle
		return nil, verrs
	}
	f.errors = ValidationErrors{}

	payload, err := Assemble(Submission{
		Draft:          f.draft,
		Specifications: f.specs.Items(),
		Highlights:     f.highlights.Items(),
		CustomOptions:  f.options.Items(),
		Thumbnail:      f.thumbnail,
		Images:         slices.Clone(f.images),
	})
	if err != nil {
		f.state = StateIdle
		return nil, err
	}

	f.state = StateSubmitting
	return payload, nil
}

func (f *Form) finishSubmit(ack Ack, sendErr error) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	transportMsg, successMsg := MsgCreateTransport, MsgCreated
	if f.cfg.Mode == ModeUpdate {
		transportMsg, successMsg = MsgUpdateTransport, MsgUpdated
	}

	if sendErr != nil {
		f.state = StateIdle
		return Outcome{}, &SubmissionError{Transport: true, Message: transportMsg, Cause: sendErr}
	}

	if !ack.Status {
		f.state = StateIdle
		msg := ack.Message
		if msg == "" {
			msg = MsgRejected
		}
		return Outcome{}, &SubmissionError{Message: msg}
	}

	f.state = StateNavigated
	f.release()
	return Outcome{Mode: f.cfg.Mode, ProductID: f.cfg.ProductID, Message: successMsg}, nil
}

// release must be called with mu held.
func (f *Form) release() {
	if f.thumbnail != nil {
		f.thumbnail.Release()
	}
	for _, a := range f.images {
		a.Release()
	}
}

// Close tears the form down and releases every preview it holds.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.release()
	f.closed = true
}
