package productform

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	FieldName         = "Name"
	FieldPrice        = "Price"
	FieldSellingPrice = "SellingPrice"
	FieldCategory     = "Category"
	FieldDescription  = "Description"
	FieldQuantity     = "Quantity"
	FieldThumbnail    = "Thumbnail"
	FieldReturnPolicy = "ReturnPolicy"
	FieldImages       = "Images"
)

const (
	MsgNameRequired         = "Product Name is required"
	MsgPriceInvalid         = "Valid Price is required"
	MsgSellingPriceInvalid  = "Valid Selling Price is required"
	MsgSellingPriceTooLow   = "Selling price must be greater than price"
	MsgCategoryRequired     = "Category is required"
	MsgDescriptionRequired  = "Description is required"
	MsgQuantityInvalid      = "Valid Quantity is required"
	MsgThumbnailRequired    = "Thumbnail image is required"
	MsgReturnPolicyRequired = "Return option is required"
)

// fieldOrder is the order messages appear in the aggregate alert.
var fieldOrder = []string{
	FieldName,
	FieldPrice,
	FieldSellingPrice,
	FieldCategory,
	FieldDescription,
	FieldQuantity,
	FieldThumbnail,
	FieldReturnPolicy,
	FieldImages,
}

// ValidationErrors maps a field to its message. An empty map is a valid
// draft.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return v.Alert()
}

// Alert joins every message with a newline, in field order.
func (v ValidationErrors) Alert() string {
	messages := make([]string, 0, len(v))
	seen := make(map[string]bool, len(v))
	for _, field := range fieldOrder {
		if msg, ok := v[field]; ok {
			messages = append(messages, msg)
			seen[field] = true
		}
	}

	var rest []string
	for field := range v {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		messages = append(messages, v[field])
	}

	return strings.Join(messages, "\n")
}

// plainDecimal is unsigned decimal text. Exponent notation is refused so a
// short value cannot expand into a huge coefficient.
var plainDecimal = regexp.MustCompile(`^\d+(\.\d+)?$`)

const maxNumberLength = 32

func parseDecimal(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxNumberLength || !plainDecimal.MatchString(raw) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func validQuantity(raw string) bool {
	_, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	return err == nil
}

// Validate runs every rule over the draft and reports all violations.
// hasThumbnail is true when a new thumbnail is staged or the product
// already has one on the server.
func Validate(draft domain.ProductDraft, hasThumbnail bool) ValidationErrors {
	errs := ValidationErrors{}

	if blank(draft.Name) {
		errs[FieldName] = MsgNameRequired
	}

	price, priceOK := parseDecimal(draft.Price)
	priceOK = priceOK && price.IsPositive()
	if !priceOK {
		errs[FieldPrice] = MsgPriceInvalid
	}

	selling, sellingOK := parseDecimal(draft.SellingPrice)
	switch {
	case !sellingOK || !selling.IsPositive():
		errs[FieldSellingPrice] = MsgSellingPriceInvalid
	case priceOK && selling.LessThanOrEqual(price):
		errs[FieldSellingPrice] = MsgSellingPriceTooLow
	}

	if blank(draft.Category) {
		errs[FieldCategory] = MsgCategoryRequired
	}

	if blank(draft.Description) {
		errs[FieldDescription] = MsgDescriptionRequired
	}

	if !validQuantity(draft.Quantity) {
		errs[FieldQuantity] = MsgQuantityInvalid
	}

	if !hasThumbnail {
		errs[FieldThumbnail] = MsgThumbnailRequired
	}

	if !draft.ReturnPolicy.Valid() {
		errs[FieldReturnPolicy] = MsgReturnPolicyRequired
	}

	return errs
}
